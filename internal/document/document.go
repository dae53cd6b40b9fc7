// Package document defines the two persisted output documents shared
// with external readers: the minute-summary document and the course
// suggestion document. Both are plain UTF-8 JSON files rewritten whole
// on every update so a concurrent reader always observes a complete,
// structurally valid document.
package document

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// MinuteSummary is one summarized minute of the session. Created once
// when the minute is finalized, never mutated afterward.
type MinuteSummary struct {
	Minute  int      `json:"minute"`
	Summary string   `json:"summary"`
	Topics  []string `json:"topics,omitempty"`
}

// Overall is the whole-session title and summary written at finalization
type Overall struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// SummaryDocument is output document A
type SummaryDocument struct {
	MinuteSummaries []MinuteSummary `json:"minute_summaries"`
	Overall         Overall         `json:"overall"`
}

// LatestMinute returns the highest minute among the entries, or -1 if
// the document has none
func (d SummaryDocument) LatestMinute() int {
	latest := -1
	for _, ms := range d.MinuteSummaries {
		if ms.Minute > latest {
			latest = ms.Minute
		}
	}
	return latest
}

// Suggestion is a single recommended course
type Suggestion struct {
	Name        string `json:"course_name"`
	Description string `json:"description"`
}

// EnrichmentResult is one entry of output document B, produced per
// processed minute summary. Failures are encoded in Error rather than
// omitting the record.
type EnrichmentResult struct {
	Summary            string       `json:"summary"`
	MeetingTime        int          `json:"meeting_time"`
	RetrievedDocsCount int          `json:"retrieved_docs_count"`
	Suggestions        []Suggestion `json:"course_suggestions"`
	Error              string       `json:"error"`
	Timestamp          string       `json:"timestamp"`
}

// LoadSummary reads document A. A missing or malformed file yields an
// empty document; the error is returned for logging only.
func LoadSummary(path string) (SummaryDocument, error) {
	var doc SummaryDocument
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return doc, fmt.Errorf("read summary document: %w", err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return SummaryDocument{}, fmt.Errorf("parse summary document: %w", err)
	}
	return doc, nil
}

// WriteSummary replaces document A whole
func WriteSummary(path string, doc SummaryDocument) error {
	if doc.MinuteSummaries == nil {
		doc.MinuteSummaries = []MinuteSummary{}
	}
	return writeJSON(path, doc)
}

// LoadEnrichments reads document B. Missing or malformed files are
// treated as an empty list so a bad document never stops the pipeline.
func LoadEnrichments(path string) ([]EnrichmentResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read enrichment document: %w", err)
	}
	var results []EnrichmentResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("parse enrichment document: %w", err)
	}
	return results, nil
}

// WriteEnrichments replaces document B whole
func WriteEnrichments(path string, results []EnrichmentResult) error {
	if results == nil {
		results = []EnrichmentResult{}
	}
	return writeJSON(path, results)
}

// writeJSON marshals v and replaces path atomically via temp file and
// rename, so readers in other processes never see a torn write
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create document dir: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, ".doc-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace document: %w", err)
	}

	return nil
}
