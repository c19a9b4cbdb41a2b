// Package scanner locates Claude Code transcript files under the projects
// directory (~/.claude/projects by default).
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zumikiti/claude-code-work-analysis/pkg/logger"
)

// ScanProjects walks the projects directory and returns every session
// transcript (*.jsonl), newest first by modification time. Sidechain agent
// files and hidden directories are skipped; unreadable paths are logged and
// skipped.
func ScanProjects(projectsDir string) ([]string, error) {
	if _, err := os.Stat(projectsDir); err != nil {
		return nil, fmt.Errorf("projects directory not accessible: %w", err)
	}

	type transcript struct {
		path    string
		modTime int64
	}
	var found []transcript

	err := filepath.WalkDir(projectsDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Skipping unreadable path %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			if name := d.Name(); strings.HasPrefix(name, ".") && path != projectsDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".jsonl") || strings.HasPrefix(d.Name(), "agent-") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			logger.Warn("Skipping unstattable file %s: %v", path, err)
			return nil
		}
		found = append(found, transcript{path: path, modTime: info.ModTime().UnixNano()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk projects directory: %w", err)
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].modTime > found[j].modTime
	})

	paths := make([]string, len(found))
	for i, t := range found {
		paths[i] = t.path
	}
	return paths, nil
}

// ProjectDirectories lists the per-project directories directly under the
// projects directory, sorted by name. Hidden directories are skipped.
func ProjectDirectories(projectsDir string) ([]string, error) {
	entries, err := os.ReadDir(projectsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read projects directory: %w", err)
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			dirs = append(dirs, filepath.Join(projectsDir, entry.Name()))
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// ProjectName turns a path into a readable project name. Claude encodes
// working directories into directory names like -Users-me-projects-my-app;
// for those the last three segments are joined into "projects/my/app"-style
// names. Plain paths resolve to their final component.
func ProjectName(path string) string {
	name := filepath.Base(path)
	if !strings.HasPrefix(name, "-") {
		return name
	}
	parts := strings.Split(name, "-")
	if len(parts) < 3 {
		return name
	}
	start := len(parts) - 3
	if start < 0 {
		start = 0
	}
	return strings.Join(parts[start:], "/")
}
