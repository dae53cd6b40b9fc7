package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nguyentantai21042004/meeting-flow/internal/logger"
	"github.com/nguyentantai21042004/meeting-flow/internal/store"
)

type replaySource struct {
	path     string
	realtime bool
	logger   logger.Logger
}

// NewReplay creates a Source that reads a JSON array of fragments from
// path and delivers them in file order. With realtime set, delivery is
// paced by the timestamp deltas between consecutive fragments.
func NewReplay(path string, realtime bool, log logger.Logger) Source {
	return &replaySource{
		path:     path,
		realtime: realtime,
		logger:   log.WithName("replay"),
	}
}

func (r *replaySource) Stream(ctx context.Context, handler Handler) error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return fmt.Errorf("read replay file: %w", err)
	}

	var fragments []store.Fragment
	if err := json.Unmarshal(data, &fragments); err != nil {
		return fmt.Errorf("parse replay file: %w", err)
	}

	r.logger.Info(ctx, "Replaying %d fragments from %s", len(fragments), r.path)

	for i, frag := range fragments {
		if r.realtime && i > 0 {
			delta := frag.Timestamp - fragments[i-1].Timestamp
			if delta > 0 {
				select {
				case <-time.After(time.Duration(delta * float64(time.Second))):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := handler(ctx, frag); err != nil {
			return fmt.Errorf("handle fragment %d: %w", i, err)
		}
	}

	return nil
}
