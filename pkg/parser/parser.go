// Package parser decodes Claude Code JSONL transcripts into log entries.
// Malformed, oversized and non-conversational lines are skipped with a
// logged summary; the entries handed to the analyzer are always
// structurally valid.
package parser

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/zumikiti/claude-code-work-analysis/pkg/logger"
	"github.com/zumikiti/claude-code-work-analysis/pkg/types"
)

// Transcript lines can carry large pasted content; 10MB covers everything
// seen in practice.
const maxLineBytes = 10 * 1024 * 1024

// errSkippable marks lines that are valid JSONL but not conversational
// entries (summary records, meta lines without session identity).
var errSkippable = errors.New("not a conversational entry")

// ParseFile reads one transcript and returns its valid entries in file
// order.
func ParseFile(path string) ([]types.LogEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript: %w", err)
	}
	defer file.Close()

	var entries []types.LogEntry
	skipped := 0
	lineNum := 0

	sc := bufio.NewScanner(file)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		entry, err := ParseLine(line)
		if err != nil {
			if !errors.Is(err, errSkippable) {
				skipped++
				if skipped <= 3 {
					logger.Warn("Failed to parse line %d in %s: %v", lineNum, path, err)
				}
			}
			continue
		}
		entries = append(entries, entry)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if skipped > 0 {
		logger.Info("%s: skipped %d unparseable line(s) out of %d", filepath.Base(path), skipped, lineNum)
	}
	return entries, nil
}

// ParseLine decodes a single JSONL line into a LogEntry.
func ParseLine(line string) (types.LogEntry, error) {
	var entry types.LogEntry
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		return types.LogEntry{}, fmt.Errorf("failed to decode entry: %w", err)
	}
	if entry.Type != types.EntryTypeUser && entry.Type != types.EntryTypeAssistant {
		return types.LogEntry{}, errSkippable
	}
	if entry.SessionID == uuid.Nil || entry.Timestamp.IsZero() {
		return types.LogEntry{}, errSkippable
	}
	return entry, nil
}

// ParseFiles reads several transcripts and returns the combined entries
// sorted by timestamp ascending, the ordering the analyzer requires.
// Unreadable files are skipped with a warning.
func ParseFiles(paths []string) []types.LogEntry {
	var all []types.LogEntry
	for _, path := range paths {
		entries, err := ParseFile(path)
		if err != nil {
			logger.Warn("Skipping transcript %s: %v", path, err)
			continue
		}
		all = append(all, entries...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Timestamp.Before(all[j].Timestamp)
	})
	return all
}
