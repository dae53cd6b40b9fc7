package session

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/meeting-flow/internal/document"
	"github.com/nguyentantai21042004/meeting-flow/internal/logger"
	"github.com/nguyentantai21042004/meeting-flow/internal/summarizer"
)

// publisher owns output document A: it accumulates minute summaries in
// memory and rewrites the document whole on every append, so external
// readers always see a complete document. Only the ingestion path
// touches it.
type publisher struct {
	path       string
	summarizer summarizer.Summarizer
	timeout    time.Duration
	logger     logger.Logger

	doc   document.SummaryDocument
	prior []string
}

func newPublisher(path string, sum summarizer.Summarizer, timeout time.Duration, log logger.Logger) *publisher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &publisher{
		path:       path,
		summarizer: sum,
		timeout:    timeout,
		logger:     log.WithName("publisher"),
	}
}

// publishMinute summarizes one closed minute segment and appends the
// record. A failed or empty summarization drops the minute: it is
// logged, not retried, and no record is written.
func (p *publisher) publishMinute(ctx context.Context, minute int, segment string) {
	sctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	summary, err := p.summarizer.SummarizeMinute(sctx, segment, p.prior)
	if err != nil {
		p.logger.Error(ctx, "Summarization failed for minute %d: %v", minute, err)
		return
	}
	if summary == "" {
		p.logger.Warn(ctx, "Empty summary for minute %d, dropping", minute)
		return
	}

	p.logger.Info(ctx, "Minute %d summary: %s", minute, summary)
	p.prior = append(p.prior, summary)
	p.doc.MinuteSummaries = append(p.doc.MinuteSummaries, document.MinuteSummary{
		Minute:  minute,
		Summary: summary,
	})
	p.write(ctx)
}

// publishOverall generates the whole-session summary and title and
// rewrites the document with them
func (p *publisher) publishOverall(ctx context.Context, transcript string) {
	sctx, cancel := context.WithTimeout(ctx, p.timeout)
	summary, err := p.summarizer.SummarizeSession(sctx, transcript)
	cancel()
	if err != nil {
		p.logger.Error(ctx, "Overall summarization failed: %v", err)
		p.write(ctx)
		return
	}

	tctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	title, err := p.summarizer.TitleSession(tctx, transcript, summary)
	if err != nil {
		p.logger.Error(ctx, "Title generation failed: %v", err)
	}

	p.doc.Overall = document.Overall{Title: title, Summary: summary}
	p.write(ctx)
}

// write replaces document A whole; failures are logged and the next
// publish rewrites the full state anyway
func (p *publisher) write(ctx context.Context) {
	if err := document.WriteSummary(p.path, p.doc); err != nil {
		p.logger.Error(ctx, "Failed to write summary document: %v", err)
		return
	}
	p.logger.Debug(ctx, "Summary document updated: %s", p.path)
}

func (p *publisher) document() document.SummaryDocument {
	return p.doc
}
