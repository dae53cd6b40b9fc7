package document

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestSummaryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")

	doc := SummaryDocument{
		MinuteSummaries: []MinuteSummary{
			{Minute: 0, Summary: "intro and agenda"},
			{Minute: 1, Summary: "requirements discussion", Topics: []string{"requirements"}},
		},
		Overall: Overall{Title: "Planning Meeting", Summary: "a planning session"},
	}

	if err := WriteSummary(path, doc); err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}

	got, err := LoadSummary(path)
	if err != nil {
		t.Fatalf("LoadSummary() error = %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Errorf("round trip = %+v, want %+v", got, doc)
	}
}

func TestLoadSummaryMissingFile(t *testing.T) {
	got, err := LoadSummary(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadSummary() error = %v, want nil for missing file", err)
	}
	if len(got.MinuteSummaries) != 0 {
		t.Errorf("missing file yielded %d entries, want 0", len(got.MinuteSummaries))
	}
}

func TestLoadSummaryMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadSummary(path)
	if err == nil {
		t.Error("LoadSummary() error = nil, want parse error for logging")
	}
	if len(got.MinuteSummaries) != 0 {
		t.Errorf("malformed file yielded %d entries, want empty document", len(got.MinuteSummaries))
	}
}

func TestWriteSummaryEmitsContract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")
	if err := WriteSummary(path, SummaryDocument{}); err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// Empty documents must still carry both top-level keys
	for _, key := range []string{`"minute_summaries"`, `"overall"`, `"title"`, `"summary"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("document missing %s: %s", key, data)
		}
	}
}

func TestLatestMinute(t *testing.T) {
	tests := []struct {
		name string
		doc  SummaryDocument
		want int
	}{
		{"empty", SummaryDocument{}, -1},
		{
			"single entry",
			SummaryDocument{MinuteSummaries: []MinuteSummary{{Minute: 4}}},
			4,
		},
		{
			"unordered entries",
			SummaryDocument{MinuteSummaries: []MinuteSummary{{Minute: 2}, {Minute: 7}, {Minute: 5}}},
			7,
		},
		{
			"duplicate minutes",
			SummaryDocument{MinuteSummaries: []MinuteSummary{{Minute: 3}, {Minute: 3}}},
			3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.doc.LatestMinute(); got != tt.want {
				t.Errorf("LatestMinute() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEnrichmentsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "course_suggestions.json")

	results := []EnrichmentResult{
		{
			Summary:            "requirements discussion",
			MeetingTime:        1,
			RetrievedDocsCount: 3,
			Suggestions: []Suggestion{
				{Name: "Software Engineering 101", Description: "covers requirements engineering basics"},
			},
			Timestamp: "2026-08-24T10:00:00Z",
		},
	}

	if err := WriteEnrichments(path, results); err != nil {
		t.Fatalf("WriteEnrichments() error = %v", err)
	}

	got, err := LoadEnrichments(path)
	if err != nil {
		t.Fatalf("LoadEnrichments() error = %v", err)
	}
	if !reflect.DeepEqual(got, results) {
		t.Errorf("round trip = %+v, want %+v", got, results)
	}
}

func TestLoadEnrichmentsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "course_suggestions.json")
	if err := os.WriteFile(path, []byte(`{"not": "a list"}`), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadEnrichments(path)
	if err == nil {
		t.Error("LoadEnrichments() error = nil, want parse error for logging")
	}
	if got != nil {
		t.Errorf("malformed file yielded %v, want nil", got)
	}
}

func TestLoadEnrichmentsMissing(t *testing.T) {
	got, err := LoadEnrichments(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadEnrichments() error = %v, want nil for missing file", err)
	}
	if got != nil {
		t.Errorf("missing file yielded %v, want nil", got)
	}
}
