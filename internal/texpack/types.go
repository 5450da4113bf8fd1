// Package texpack stores encoded texture maps in a single SQLite file.
package texpack

import "time"

// Metadata describes a texture pack.
type Metadata struct {
	Name        string // Human-readable pack identifier
	Description string
	Generator   string // Tool and version that wrote the pack
	RunID       string // Unique id of the generation run
	Created     time.Time
}

// ToMap converts Metadata to a map for database insertion.
func (m Metadata) ToMap() map[string]string {
	result := make(map[string]string)

	if m.Name != "" {
		result["name"] = m.Name
	}
	if m.Description != "" {
		result["description"] = m.Description
	}
	if m.Generator != "" {
		result["generator"] = m.Generator
	}
	if m.RunID != "" {
		result["run_id"] = m.RunID
	}
	if !m.Created.IsZero() {
		result["created"] = m.Created.UTC().Format(time.RFC3339)
	}

	return result
}

func metadataFromMap(values map[string]string) Metadata {
	meta := Metadata{
		Name:        values["name"],
		Description: values["description"],
		Generator:   values["generator"],
		RunID:       values["run_id"],
	}
	if v, ok := values["created"]; ok {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			meta.Created = t
		}
	}
	return meta
}

// Entry is one encoded texture map.
type Entry struct {
	Stem    string // File stem, unique within a pack
	Channel string
	Format  string // Encoding: "png" or "jpg"
	Width   int
	Height  int
	Data    []byte
	Size    int // Encoded length; only set by Reader.List, which omits Data
}
