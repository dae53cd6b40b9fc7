// Package report renders the finished summary document as a docx file
// for distribution outside the pipeline.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/meeting-flow/internal/document"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

var reBold = regexp.MustCompile(`\*\*(.+?)\*\*`)

// Write renders doc as a session report at path: title, overall
// summary, then one section per minute summary.
func Write(path string, doc document.SummaryDocument) error {
	out, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	heading := func(text string, size uint64) {
		p := out.AddParagraph("")
		p.AddText(stripMarkdown(text)).Font(fontName).Size(size).Color("000000").Bold(true)
	}

	// body writes one paragraph per line, rendering **bold** spans as
	// bold runs
	body := func(text string) {
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
				line = "• " + strings.TrimSpace(line[2:])
			}
			addRichText(out.AddParagraph(""), line)
		}
	}

	title := doc.Overall.Title
	if title == "" {
		title = "Session Report"
	}
	heading(title, 16)

	if doc.Overall.Summary != "" {
		heading("Overall Summary", 15)
		body(doc.Overall.Summary)
	}

	if len(doc.MinuteSummaries) > 0 {
		heading("Minute Summaries", 15)
		for _, ms := range doc.MinuteSummaries {
			heading(fmt.Sprintf("Minute %d", ms.Minute), 14)
			body(ms.Summary)
			if len(ms.Topics) > 0 {
				body("Topics: " + strings.Join(ms.Topics, ", "))
			}
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}

	if err := out.SaveTo(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(stripMarkdown(part)).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			p.AddText(stripMarkdown(matches[i][1])).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func stripMarkdown(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
