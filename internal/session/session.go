// Package session wires a transcript source to the segment store, the
// minute-boundary summarization path and the completion monitor, and
// owns end-of-session finalization.
package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nguyentantai21042004/meeting-flow/internal/config"
	"github.com/nguyentantai21042004/meeting-flow/internal/logger"
	"github.com/nguyentantai21042004/meeting-flow/internal/recommender"
	"github.com/nguyentantai21042004/meeting-flow/internal/report"
	"github.com/nguyentantai21042004/meeting-flow/internal/source"
	"github.com/nguyentantai21042004/meeting-flow/internal/store"
	"github.com/nguyentantai21042004/meeting-flow/internal/summarizer"
)

// Phase is the orchestrator lifecycle state
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseStreaming
	PhaseDraining
	PhaseFinalizing
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseStreaming:
		return "streaming"
	case PhaseDraining:
		return "draining"
	case PhaseFinalizing:
		return "finalizing"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Session orchestrates one transcription session. The minute cursor
// lives here as explicit state: lastFinalized is initialized from the
// first fragment seen and only ever advances.
type Session struct {
	cfg    *config.Config
	store  *store.Store
	logger logger.Logger

	pub *publisher
	mon *monitor

	phase         Phase
	started       bool
	lastFinalized int
}

// New creates a Session with all collaborators injected
func New(cfg *config.Config, st *store.Store, sum summarizer.Summarizer, rec recommender.Recommender, log logger.Logger) *Session {
	pollInterval := time.Duration(cfg.Session.PollIntervalSeconds) * time.Second
	summarizeTimeout := time.Duration(cfg.Session.SummarizeTimeoutSeconds) * time.Second
	enrichTimeout := time.Duration(cfg.Session.EnrichTimeoutSeconds) * time.Second

	return &Session{
		cfg:    cfg,
		store:  st,
		logger: log.WithName("session"),
		pub:    newPublisher(cfg.Paths.Summary, sum, summarizeTimeout, log),
		mon:    newMonitor(cfg.Paths.Summary, cfg.Paths.Suggestions, rec, pollInterval, enrichTimeout, log),
		phase:  PhaseIdle,
	}
}

// Run drives the session through streaming, draining, finalizing and
// done. The monitor runs concurrently and is cancelled during draining.
// Finalization runs even when streaming ends with an error or the
// context is cancelled, so partial results are always flushed.
func (s *Session) Run(ctx context.Context, src source.Source) error {
	s.setPhase(ctx, PhaseStreaming)

	mctx, cancelMonitor := context.WithCancel(ctx)
	defer cancelMonitor()
	monitorDone := make(chan struct{})
	go func() {
		defer close(monitorDone)
		s.mon.run(mctx)
	}()

	streamErr := src.Stream(ctx, s.handleFragment)

	s.setPhase(ctx, PhaseDraining)
	cancelMonitor()
	grace := time.Duration(s.cfg.Session.MonitorStopGraceSeconds) * time.Second
	select {
	case <-monitorDone:
	case <-time.After(grace):
		s.logger.Error(ctx, "Completion monitor did not stop within %s", grace)
	}

	fctx := context.WithoutCancel(ctx)
	s.setPhase(fctx, PhaseFinalizing)
	s.finalize(fctx)
	s.setPhase(fctx, PhaseDone)

	if streamErr != nil && !errors.Is(streamErr, context.Canceled) {
		return streamErr
	}
	return nil
}

// handleFragment is the ingestion callback: store the fragment, then
// check whether its minute closes the previously open bucket. A minute
// is finalized only when the first fragment of a later minute arrives;
// silent minutes collapse without their own finalization events.
func (s *Session) handleFragment(ctx context.Context, frag store.Fragment) error {
	s.logger.Debug(ctx, "Fragment at %.2f: %q", frag.Timestamp, frag.Text)
	s.store.AddFragment(frag.Text, frag.Timestamp)

	current := frag.MinuteKey()
	if !s.started {
		s.started = true
		s.lastFinalized = current - 1
	}

	if current > s.lastFinalized {
		s.finalizeMinute(ctx, s.lastFinalized)
		s.lastFinalized = current
	}

	return nil
}

// finalizeMinute publishes one closed minute bucket. Empty buckets
// produce no record.
func (s *Session) finalizeMinute(ctx context.Context, minute int) {
	segment := s.store.MinuteSegment(minute)
	if segment == "" {
		return
	}
	s.logger.Info(ctx, "Finalizing minute %d", minute)
	s.pub.publishMinute(ctx, minute, segment)
}

func (s *Session) finalize(ctx context.Context) {
	if err := s.store.ExportWindow(s.cfg.Paths.Transcript); err != nil {
		s.logger.Error(ctx, "Failed to export transcript window: %v", err)
	}

	keys := s.store.MinuteKeys()
	if len(keys) == 0 {
		s.logger.Info(ctx, "No fragments ingested, nothing to finalize")
		return
	}

	// The last open minute never sees a later fragment, so close it
	// here. Re-publishing an already-published minute just appends a
	// duplicate record, which the monitor's max-based dedup tolerates.
	s.finalizeMinute(ctx, keys[len(keys)-1])

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if seg := s.store.MinuteSegment(k); seg != "" {
			parts = append(parts, seg)
		}
	}
	if full := strings.Join(parts, " "); full != "" {
		s.pub.publishOverall(ctx, full)
	}

	// Synchronous enrichment pass so the session's last minute gets a
	// matching record even if the monitor's final poll raced the write
	s.finalEnrichment(ctx)

	if s.cfg.Paths.Report != "" {
		if err := report.Write(s.cfg.Paths.Report, s.pub.document()); err != nil {
			s.logger.Error(ctx, "Failed to write session report: %v", err)
		} else {
			s.logger.Info(ctx, "Session report written to %s", s.cfg.Paths.Report)
		}
	}
}

func (s *Session) finalEnrichment(ctx context.Context) {
	timeout := time.Duration(s.cfg.Session.EnrichTimeoutSeconds) * time.Second
	ectx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := s.mon.recommender.Enrich(ectx, s.cfg.Paths.Summary)
	if err != nil {
		s.logger.Error(ctx, "Final enrichment pass failed: %v", err)
		return
	}
	s.mon.appendResult(ctx, result)
}

// Phase reports the current lifecycle phase
func (s *Session) Phase() Phase {
	return s.phase
}

func (s *Session) setPhase(ctx context.Context, p Phase) {
	s.phase = p
	s.logger.Info(ctx, "Phase: %s", p)
}
