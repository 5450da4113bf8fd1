package worker

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Progress follows a generation run recipe by recipe. Each result is sorted
// into written, up to date (no outputs and no error) or failed.
type Progress struct {
	start   time.Time
	out     io.Writer
	total   int
	done    int
	written int
	current int
	files   int
	failed  []string
	last    string
	live    bool
	mu      sync.Mutex
}

// NewProgress creates a tracker for total recipes. A live tracker redraws a
// status line on stderr after every result.
func NewProgress(total int, live bool) *Progress {
	return &Progress{
		start: time.Now(),
		out:   os.Stderr,
		total: total,
		live:  live,
	}
}

// Record files one finished recipe.
func (p *Progress) Record(r Result, completed, total int) {
	p.mu.Lock()
	p.done = completed
	p.total = total
	p.last = r.Task.Name()
	switch {
	case r.Err != nil:
		p.failed = append(p.failed, p.last)
	case len(r.Outputs) == 0:
		p.current++
	default:
		p.written++
		p.files += len(r.Outputs)
	}
	p.mu.Unlock()

	if p.live {
		p.Print()
	}
}

// Callback returns Record as a pool progress hook.
func (p *Progress) Callback() ProgressFunc {
	return p.Record
}

// Print redraws the status line.
func (p *Progress) Print() {
	fmt.Fprint(p.out, "\r"+p.line()+"      ")
}

func (p *Progress) line() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	const width = 24
	filled := 0
	if p.total > 0 {
		filled = p.done * width / p.total
	}
	bar := strings.Repeat("#", filled) + strings.Repeat(".", width-filled)

	line := fmt.Sprintf("[%s] %d/%d materials", bar, p.done, p.total)
	if p.last != "" {
		line += " " + p.last
	}
	if n := len(p.failed); n > 0 {
		line += fmt.Sprintf(" (%d failed)", n)
	}

	elapsed := time.Since(p.start)
	if p.done >= p.total {
		return line + " - done in " + formatDuration(elapsed)
	}
	if p.done > 0 {
		eta := elapsed / time.Duration(p.done) * time.Duration(p.total-p.done)
		line += " - ETA " + formatDuration(eta)
	}
	return line
}

// Done ends the status line.
func (p *Progress) Done() {
	if p.live {
		p.Print()
		fmt.Fprintln(p.out)
	}
}

// Failed lists the recipes that failed, in the order they finished.
func (p *Progress) Failed() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.failed...)
}

// Summary describes the run in one line.
func (p *Progress) Summary() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := fmt.Sprintf("Materials: %d/%d done, %d written (%d files), %d up to date, %d failed",
		p.done, p.total, p.written, p.files, p.current, len(p.failed))
	if len(p.failed) > 0 {
		s += " [" + strings.Join(p.failed, ", ") + "]"
	}
	return s + " in " + formatDuration(time.Since(p.start))
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.0fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	}
}
