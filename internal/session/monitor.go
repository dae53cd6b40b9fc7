package session

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/meeting-flow/internal/document"
	"github.com/nguyentantai21042004/meeting-flow/internal/logger"
	"github.com/nguyentantai21042004/meeting-flow/internal/recommender"
)

// monitor polls output document A for minute summaries it has not yet
// processed and appends an enrichment record to output document B for
// each. Coordination with the publisher happens only through the
// documents, never by direct calls, so either side can restart
// independently.
type monitor struct {
	summaryPath     string
	suggestionsPath string
	recommender     recommender.Recommender
	interval        time.Duration
	timeout         time.Duration
	logger          logger.Logger

	lastProcessed int
}

func newMonitor(summaryPath, suggestionsPath string, rec recommender.Recommender, interval, timeout time.Duration, log logger.Logger) *monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &monitor{
		summaryPath:     summaryPath,
		suggestionsPath: suggestionsPath,
		recommender:     rec,
		interval:        interval,
		timeout:         timeout,
		logger:          log.WithName("monitor"),
		lastProcessed:   -1,
	}
}

// run polls until ctx is cancelled. Cancellation is observed between
// cycles; a cycle already in flight completes its write before run
// returns, but a cycle interrupted mid-enrichment writes nothing.
func (m *monitor) run(ctx context.Context) {
	m.logger.Info(ctx, "Completion monitor started (interval %s)", m.interval)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	// First check runs immediately; summaries published during the
	// first interval must not wait a full period
	m.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			m.logger.Info(ctx, "Completion monitor stopped")
			return
		case <-ticker.C:
			m.poll(ctx)
		}
	}
}

// poll runs one monitor cycle. Every failure is logged and swallowed;
// no cycle failure is fatal to the monitor.
func (m *monitor) poll(ctx context.Context) {
	doc, err := document.LoadSummary(m.summaryPath)
	if err != nil {
		m.logger.Error(ctx, "Failed to read summary document: %v", err)
		return
	}

	latest := doc.LatestMinute()
	if latest < 0 || latest <= m.lastProcessed {
		return
	}

	m.logger.Info(ctx, "New minute summary detected: %d", latest)
	// Advance before enriching: if several minutes completed within one
	// poll interval, only the latest is enriched (latest-wins dedup)
	m.lastProcessed = latest

	ectx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	result, err := m.recommender.Enrich(ectx, m.summaryPath)
	if err != nil {
		if ctx.Err() != nil {
			m.logger.Info(ctx, "Cycle interrupted by cancellation, dropping result")
			return
		}
		m.logger.Error(ctx, "Enrichment failed for minute %d: %v", latest, err)
		result = document.EnrichmentResult{
			MeetingTime: latest,
			Error:       err.Error(),
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		}
	}

	m.appendResult(ctx, result)
}

// appendResult appends one record to output document B using the
// read-whole/replace-whole discipline. A malformed or absent document
// is treated as an empty list.
func (m *monitor) appendResult(ctx context.Context, result document.EnrichmentResult) {
	existing, err := document.LoadEnrichments(m.suggestionsPath)
	if err != nil {
		m.logger.Warn(ctx, "Enrichment document unreadable, starting fresh: %v", err)
		existing = nil
	}

	existing = append(existing, result)
	if err := document.WriteEnrichments(m.suggestionsPath, existing); err != nil {
		m.logger.Error(ctx, "Failed to write enrichment document: %v", err)
		return
	}
	m.logger.Info(ctx, "Enrichment recorded for minute %d (%d suggestions)", result.MeetingTime, len(result.Suggestions))
}
