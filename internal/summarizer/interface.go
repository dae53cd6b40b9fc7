package summarizer

import "context"

// Summarizer turns transcript text into LLM-generated summaries.
// Implementations may fail or return empty text; callers treat both as
// "no summary produced" and continue.
type Summarizer interface {
	// SummarizeMinute summarizes one minute segment, with up to the two
	// most recent prior summaries supplied for continuity
	SummarizeMinute(ctx context.Context, segment string, prior []string) (string, error)

	// SummarizeSession summarizes the whole-session transcript
	SummarizeSession(ctx context.Context, transcript string) (string, error)

	// TitleSession produces a short session title from the transcript
	// and its overall summary
	TitleSession(ctx context.Context, transcript, summary string) (string, error)
}
