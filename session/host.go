// Package session runs a transfer server in its own goroutine so the
// caller's control flow is never blocked by serving.
package session

import (
	"context"
	"fmt"

	"github.com/moyoez/airshare-go/api"
	"github.com/moyoez/airshare-go/api/models"
	"github.com/moyoez/airshare-go/discovery"
	"github.com/moyoez/airshare-go/types"
)

// Config describes one hosted share session.
type Config struct {
	Code     string
	Port     int
	Registry *discovery.Registry
	Session  *types.ShareSession
}

// Handle controls a running session.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// Start launches the server startup routine in an isolated goroutine and
// returns immediately. Startup failures (registration collision, bind
// failure) surface through Stop or Done/Err.
func Start(cfg Config) (*Handle, error) {
	if cfg.Session == nil {
		return nil, fmt.Errorf("no share session given: %w", types.ErrInvalidInput)
	}
	if cfg.Code == "" {
		return nil, fmt.Errorf("no service code given: %w", types.ErrInvalidInput)
	}
	if cfg.Registry == nil {
		cfg.Registry = discovery.NewRegistry()
	}

	models.SetShareSession(cfg.Session)
	srv := api.NewServer(cfg.Code, cfg.Port, cfg.Registry)

	ctx, cancel := context.WithCancel(context.Background())
	h := &Handle{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go func() {
		h.err = srv.Start(ctx)
		close(h.done)
	}()
	return h, nil
}

// Done is closed once the server has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Err reports the exit error. Only meaningful after Done is closed.
func (h *Handle) Err() error {
	return h.err
}

// Stop tears the session down and waits for the server to exit.
func (h *Handle) Stop() error {
	h.cancel()
	<-h.done
	return h.err
}
