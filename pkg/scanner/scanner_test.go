package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestScanProjects(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "-Users-me-projects-my-app", "session1.jsonl"))
	touch(t, filepath.Join(dir, "-Users-me-projects-my-app", "agent-sidechain.jsonl"))
	touch(t, filepath.Join(dir, "-Users-me-projects-my-app", "notes.txt"))
	touch(t, filepath.Join(dir, ".hidden", "secret.jsonl"))

	files, err := ScanProjects(dir)
	if err != nil {
		t.Fatalf("ScanProjects() error = %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("ScanProjects() = %v, want only session1.jsonl", files)
	}
	if filepath.Base(files[0]) != "session1.jsonl" {
		t.Errorf("found %s, want session1.jsonl", files[0])
	}
}

func TestScanProjectsMissingDir(t *testing.T) {
	if _, err := ScanProjects(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("ScanProjects() on a missing directory should fail")
	}
}

func TestProjectDirectories(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "-Users-me-b", "s.jsonl"))
	touch(t, filepath.Join(dir, "-Users-me-a", "s.jsonl"))
	touch(t, filepath.Join(dir, ".git", "s.jsonl"))

	dirs, err := ProjectDirectories(dir)
	if err != nil {
		t.Fatalf("ProjectDirectories() error = %v", err)
	}
	if len(dirs) != 2 {
		t.Fatalf("ProjectDirectories() = %v, want 2 entries", dirs)
	}
	if filepath.Base(dirs[0]) != "-Users-me-a" {
		t.Errorf("dirs not sorted: %v", dirs)
	}
}

func TestProjectName(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "encoded claude directory",
			path: "/root/.claude/projects/-Users-me-projects-my-app",
			want: "projects/my/app",
		},
		{
			name: "plain path",
			path: "/home/u/code/myapp",
			want: "myapp",
		},
		{
			name: "short encoded name",
			path: "-a",
			want: "-a",
		},
		{
			name: "bare name",
			path: "myapp",
			want: "myapp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProjectName(tt.path)
			if got != tt.want {
				t.Errorf("ProjectName(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
