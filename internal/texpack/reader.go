package texpack

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a stem is not stored in the pack.
var ErrNotFound = errors.New("texture not found")

// Reader reads textures from a pack.
type Reader struct {
	db   *sql.DB
	path string
}

// Open opens a pack for reading.
func Open(path string) (*Reader, error) {
	// Open in read-only mode with immutable flag
	db, err := sql.Open("sqlite", path+"?mode=ro&immutable=1")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='textures'").Scan(&count)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to verify schema: %w", err)
	}
	if count == 0 {
		db.Close()
		return nil, fmt.Errorf("database does not contain textures table")
	}

	return &Reader{
		db:   db,
		path: path,
	}, nil
}

// List returns every entry without its data, ordered by stem.
func (r *Reader) List() ([]Entry, error) {
	rows, err := r.db.Query("SELECT stem, channel, format, width, height, length(data) FROM textures ORDER BY stem")
	if err != nil {
		return nil, fmt.Errorf("failed to query textures: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Stem, &e.Channel, &e.Format, &e.Width, &e.Height, &e.Size); err != nil {
			return nil, fmt.Errorf("failed to scan texture row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating textures: %w", err)
	}

	return entries, nil
}

// ReadTexture returns the stored entry for stem, data included.
func (r *Reader) ReadTexture(stem string) (Entry, error) {
	e := Entry{Stem: stem}
	err := r.db.QueryRow(
		"SELECT channel, format, width, height, data FROM textures WHERE stem=?", stem,
	).Scan(&e.Channel, &e.Format, &e.Width, &e.Height, &e.Data)

	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, stem)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("failed to query texture: %w", err)
	}

	return e, nil
}

// Metadata reads metadata from the database.
func (r *Reader) Metadata() (Metadata, error) {
	rows, err := r.db.Query("SELECT name, value FROM metadata")
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to query metadata: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return Metadata{}, fmt.Errorf("failed to scan metadata row: %w", err)
		}
		values[name] = value
	}
	if err := rows.Err(); err != nil {
		return Metadata{}, fmt.Errorf("error iterating metadata: %w", err)
	}

	return metadataFromMap(values), nil
}

// Close closes the database connection.
func (r *Reader) Close() error {
	if err := r.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
