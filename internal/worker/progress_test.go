package worker

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func result(name string, outputs []string, err error) Result {
	return Result{Task: Task{Recipe: fakeRecipe{name: name}}, Outputs: outputs, Err: err}
}

func TestProgress_SortsOutcomes(t *testing.T) {
	p := NewProgress(4, false)

	p.Record(result("wall_lower", []string{"wall_lower_baseColor.jpg", "wall_lower_normal.jpg", "wall_lower_roughness.jpg"}, nil), 1, 4)
	p.Record(result("ceiling", nil, nil), 2, 4)
	p.Record(result("arch", nil, errors.New("boom")), 3, 4)
	p.Record(result("plaque", []string{"plaque_base.png"}, nil), 4, 4)

	summary := p.Summary()
	for _, want := range []string{
		"4/4 done",
		"2 written (4 files)",
		"1 up to date",
		"1 failed [arch]",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("Expected %q in summary, got: %s", want, summary)
		}
	}

	if got := p.Failed(); len(got) != 1 || got[0] != "arch" {
		t.Errorf("Failed() = %v, want [arch]", got)
	}
}

func TestProgress_LiveLineNamesLastRecipe(t *testing.T) {
	var buf bytes.Buffer

	p := NewProgress(3, true)
	p.out = &buf
	p.start = time.Now().Add(-6 * time.Second)

	p.Record(result("trim_strip", []string{"trim_strip.jpg"}, nil), 1, 3)
	p.Record(result("frame", nil, errors.New("boom")), 2, 3)

	out := buf.String()
	if !strings.HasPrefix(out, "\r[") {
		t.Errorf("Expected the line to be redrawn in place, got: %q", out)
	}
	last := out[strings.LastIndex(out, "\r"):]
	for _, want := range []string{"2/3 materials frame", "(1 failed)", "ETA"} {
		if !strings.Contains(last, want) {
			t.Errorf("Expected %q in %q", want, last)
		}
	}
}

func TestProgress_DoneEndsLine(t *testing.T) {
	var buf bytes.Buffer

	p := NewProgress(1, true)
	p.out = &buf
	p.Record(result("skylight_strip", nil, nil), 1, 1)
	buf.Reset()

	p.Done()

	out := buf.String()
	if !strings.Contains(out, "done in") {
		t.Errorf("Expected 'done in', got: %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("Expected output to end with newline")
	}
}

func TestProgress_QuietWhenNotLive(t *testing.T) {
	var buf bytes.Buffer

	p := NewProgress(2, false)
	p.out = &buf
	p.Record(result("column", []string{"column.jpg"}, nil), 1, 2)
	p.Done()

	if buf.Len() != 0 {
		t.Errorf("Expected no output, got: %q", buf.String())
	}
}

func TestProgress_FedByPool(t *testing.T) {
	p := NewProgress(0, false)
	pool := New(Config{
		Workers:    3,
		Generator:  &mockGenerator{fail: map[string]bool{"backboard": true}},
		OnProgress: p.Callback(),
	})

	pool.Run(t.Context(), tasksFor("wall_lower", "backboard", "frame"))

	summary := p.Summary()
	if !strings.Contains(summary, "3/3 done, 2 written (2 files), 0 up to date, 1 failed [backboard]") {
		t.Errorf("Unexpected summary: %s", summary)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		expected string
		duration time.Duration
	}{
		{duration: 30 * time.Second, expected: "30s"},
		{duration: 90 * time.Second, expected: "1m30s"},
		{duration: 65 * time.Minute, expected: "1h5m"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := formatDuration(tt.duration); got != tt.expected {
				t.Errorf("formatDuration(%v) = %s, want %s", tt.duration, got, tt.expected)
			}
		})
	}
}
