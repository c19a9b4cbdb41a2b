package cmd

import (
	"testing"
	"time"
)

func TestBuildFilter(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		project string
		wantErr bool
	}{
		{
			name: "empty filter",
		},
		{
			name: "valid range",
			from: "2025-06-01",
			to:   "2025-06-30",
		},
		{
			name:    "project only",
			project: "myapp",
		},
		{
			name:    "bad from date",
			from:    "June 1st",
			wantErr: true,
		},
		{
			name:    "bad to date",
			to:      "2025-13-99",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := buildFilter(tt.from, tt.to, tt.project)
			if (err != nil) != tt.wantErr {
				t.Fatalf("buildFilter() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if f.Project != tt.project {
				t.Errorf("Project = %q, want %q", f.Project, tt.project)
			}
			if tt.from != "" && f.From == nil {
				t.Error("From not set")
			}
			if tt.to != "" && f.To == nil {
				t.Error("To not set")
			}
		})
	}
}

func TestBuildFilterInclusiveEnd(t *testing.T) {
	f, err := buildFilter("", "2025-06-15", "")
	if err != nil {
		t.Fatalf("buildFilter() error = %v", err)
	}

	lastMoment := time.Date(2025, 6, 15, 23, 59, 59, 0, time.Local)
	if f.To.Before(lastMoment) {
		t.Errorf("To = %v, should cover the whole end date", f.To)
	}
	nextDay := time.Date(2025, 6, 16, 0, 0, 0, 0, time.Local)
	if !f.To.Before(nextDay) {
		t.Errorf("To = %v, should not reach the next day", f.To)
	}
}
