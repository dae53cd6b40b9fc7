package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nguyentantai21042004/meeting-flow/internal/logger"
	"github.com/nguyentantai21042004/meeting-flow/internal/store"
)

type gatewaySource struct {
	url    string
	logger logger.Logger
}

// NewGateway creates a Source that connects to an STT gateway over a
// websocket and reads fragment events until the gateway closes the
// connection or ctx is cancelled. Each message is one JSON fragment.
func NewGateway(url string, log logger.Logger) Source {
	return &gatewaySource{
		url:    url,
		logger: log.WithName("gateway"),
	}
}

func (g *gatewaySource) Stream(ctx context.Context, handler Handler) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, g.url, nil)
	if err != nil {
		return fmt.Errorf("dial gateway: %w", err)
	}
	defer conn.Close()

	g.logger.Info(ctx, "Connected to STT gateway at %s", g.url)

	// Unblock ReadJSON when the session is cancelled
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var frag store.Fragment
		if err := conn.ReadJSON(&frag); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) && closeErr.Code == websocket.CloseNormalClosure {
				g.logger.Info(ctx, "Gateway closed the stream")
				return nil
			}
			return fmt.Errorf("read gateway event: %w", err)
		}

		if err := handler(ctx, frag); err != nil {
			return fmt.Errorf("handle fragment: %w", err)
		}
	}
}
