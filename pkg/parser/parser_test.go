package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zumikiti/claude-code-work-analysis/pkg/types"
)

const (
	validUser      = `{"type":"user","sessionId":"11111111-1111-1111-1111-111111111111","cwd":"/home/u/proj","timestamp":"2025-06-01T10:00:00Z","message":{"role":"user","content":"implement the feature"}}`
	validAssistant = `{"type":"assistant","sessionId":"11111111-1111-1111-1111-111111111111","cwd":"/home/u/proj","timestamp":"2025-06-01T10:01:00Z","message":{"role":"assistant","content":[{"type":"text","text":"done"}]}}`
	summaryLine    = `{"type":"summary","summary":"Session about parsers","leafUuid":"22222222-2222-2222-2222-222222222222"}`
	noSessionLine  = `{"type":"user","timestamp":"2025-06-01T10:00:00Z","message":{"role":"user","content":"hi"}}`
	laterUser      = `{"type":"user","sessionId":"33333333-3333-3333-3333-333333333333","cwd":"/home/u/proj","timestamp":"2025-06-02T08:00:00Z","message":{"role":"user","content":"later entry"}}`
)

func writeTranscript(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := ""
	for _, line := range lines {
		content += line + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTranscript(t, dir, "session.jsonl",
		validUser,
		"",
		"not json at all",
		summaryLine,
		noSessionLine,
		validAssistant,
	)

	entries, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("ParseFile() returned %d entries, want 2", len(entries))
	}
	if entries[0].Type != types.EntryTypeUser || entries[1].Type != types.EntryTypeAssistant {
		t.Errorf("entry types = %v, %v; file order not preserved", entries[0].Type, entries[1].Type)
	}
	if got := entries[1].Message.Content.Blocks[0].Text; got != "done" {
		t.Errorf("block text = %q, want %q", got, "done")
	}
}

func TestParseFileMissing(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "nope.jsonl")); err == nil {
		t.Error("ParseFile() on a missing file should fail")
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantErr bool
	}{
		{
			name: "valid user entry",
			line: validUser,
		},
		{
			name:    "summary record skipped",
			line:    summaryLine,
			wantErr: true,
		},
		{
			name:    "missing session id skipped",
			line:    noSessionLine,
			wantErr: true,
		},
		{
			name:    "malformed json",
			line:    "{broken",
			wantErr: true,
		},
		{
			name:    "zero timestamp skipped",
			line:    `{"type":"user","sessionId":"11111111-1111-1111-1111-111111111111","message":{"role":"user","content":"hi"}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLine(tt.line)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseLine() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseFilesSortsAndSkipsUnreadable(t *testing.T) {
	dir := t.TempDir()
	newer := writeTranscript(t, dir, "newer.jsonl", laterUser)
	older := writeTranscript(t, dir, "older.jsonl", validUser, validAssistant)

	entries := ParseFiles([]string{newer, older, filepath.Join(dir, "missing.jsonl")})

	if len(entries) != 3 {
		t.Fatalf("ParseFiles() returned %d entries, want 3", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Timestamp.Before(entries[i-1].Timestamp) {
			t.Fatalf("entries not sorted ascending at index %d", i)
		}
	}
}
