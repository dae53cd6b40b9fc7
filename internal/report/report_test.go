package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/meeting-flow/internal/document"
)

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.docx")

	doc := document.SummaryDocument{
		MinuteSummaries: []document.MinuteSummary{
			{Minute: 0, Summary: "Kickoff and **agenda** review.\n- introductions\n- scope"},
			{Minute: 1, Summary: "Requirements walkthrough.", Topics: []string{"requirements", "scope"}},
		},
		Overall: document.Overall{Title: "Planning Session", Summary: "A planning session covering scope and requirements."},
	}

	if err := Write(path, doc); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("report file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("report file is empty")
	}
}

func TestWriteEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.docx")
	if err := Write(path, document.SummaryDocument{}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("report file missing: %v", err)
	}
}

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"**bold** text", "bold text"},
		{"`code` span", "code span"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		if got := stripMarkdown(tt.in); got != tt.want {
			t.Errorf("stripMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
