package source

import (
	"context"

	"github.com/nguyentantai21042004/meeting-flow/internal/store"
)

// Handler receives one fragment from a source. A non-nil error stops
// the stream.
type Handler func(ctx context.Context, frag store.Fragment) error

// Source produces a possibly-infinite stream of transcript fragments.
// Stream blocks until the source is exhausted, fails, or ctx is
// cancelled; all three end the session's streaming phase.
type Source interface {
	Stream(ctx context.Context, handler Handler) error
}
