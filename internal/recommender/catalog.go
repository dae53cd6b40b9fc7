package recommender

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// CatalogEntry is one course in the file-backed catalog
type CatalogEntry struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Subject string `json:"subject,omitempty"`
}

type fileCatalog struct {
	entries []CatalogEntry
}

var reToken = regexp.MustCompile(`[a-z0-9]+`)

// LoadCatalog reads a JSON array of courses from path. The returned
// Catalog ranks courses by term overlap with the query, a deliberately
// simple stand-in for the external vector retrieval service.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var entries []CatalogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	return &fileCatalog{entries: entries}, nil
}

func (c *fileCatalog) Search(query string, k int) []string {
	queryTerms := make(map[string]bool)
	for _, tok := range tokenize(query) {
		queryTerms[tok] = true
	}
	if len(queryTerms) == 0 || k <= 0 {
		return nil
	}

	type scored struct {
		idx   int
		score int
	}
	var ranked []scored
	for i, e := range c.entries {
		score := 0
		seen := make(map[string]bool)
		for _, tok := range tokenize(e.Title + " " + e.Summary + " " + e.Subject) {
			if queryTerms[tok] && !seen[tok] {
				score++
				seen[tok] = true
			}
		}
		if score > 0 {
			ranked = append(ranked, scored{idx: i, score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}

	docs := make([]string, 0, len(ranked))
	for _, s := range ranked {
		e := c.entries[s.idx]
		docs = append(docs, e.Title+": "+e.Summary)
	}
	return docs
}

func tokenize(text string) []string {
	return reToken.FindAllString(strings.ToLower(text), -1)
}
