// Package signal turns SIGINT and SIGTERM into context cancellation for
// postbuild commands.
//
// A finalize run checks its context once, before the first change to disk,
// and then runs to completion. An interrupt therefore stops a run that has
// not started yet and is otherwise reported after the run finishes; it never
// leaves a build half-renamed.
//
// Import rules:
//   - CAN import: std lib only
//   - MUST NOT import: internal packages (to avoid circular dependencies)
package signal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// ErrInterrupted is the cancellation cause recorded when a signal arrives.
// Retrieve it with context.Cause on the handler's context.
var ErrInterrupted = errors.New("interrupted")

// Handler cancels its context when SIGINT or SIGTERM is received.
type Handler struct {
	ctx         context.Context //nolint:containedctx // handler owns the context lifecycle
	cancel      context.CancelCauseFunc
	interrupted chan struct{}
	done        chan struct{}
	sigChan     chan os.Signal

	mu       sync.Mutex
	received os.Signal
	once     sync.Once
	stopOnce sync.Once
}

// NewHandler creates a signal handler derived from parent.
//
// Usage:
//
//	h := signal.NewHandler(ctx)
//	defer h.Stop()
//	err := run(h.Context())
//	if sig := h.Received(); sig != nil {
//	    // report the interruption
//	}
func NewHandler(parent context.Context) *Handler {
	ctx, cancel := context.WithCancelCause(parent)
	h := &Handler{
		ctx:         ctx,
		cancel:      cancel,
		interrupted: make(chan struct{}),
		done:        make(chan struct{}),
		// Buffer of 1 so signal.Notify never drops the first signal.
		sigChan: make(chan os.Signal, 1),
	}

	signal.Notify(h.sigChan, syscall.SIGINT, syscall.SIGTERM)
	go h.listen()

	return h
}

// Context returns the context canceled on the first signal.
func (h *Handler) Context() context.Context {
	return h.ctx
}

// Interrupted returns a channel closed when the first signal is received.
func (h *Handler) Interrupted() <-chan struct{} {
	return h.interrupted
}

// Received returns the first signal received, or nil if none arrived.
func (h *Handler) Received() os.Signal {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.received
}

// Stop stops listening for signals and releases the context.
// It is safe to call more than once.
func (h *Handler) Stop() {
	h.stopOnce.Do(func() {
		signal.Stop(h.sigChan)
		close(h.done)
		h.cancel(context.Canceled)
	})
}

// handleSignal records sig and cancels the context. Only the first call has
// any effect.
func (h *Handler) handleSignal(sig os.Signal) {
	h.once.Do(func() {
		h.mu.Lock()
		h.received = sig
		h.mu.Unlock()

		cause := ErrInterrupted
		if sig != nil {
			cause = fmt.Errorf("%w by %s", ErrInterrupted, sig)
		}
		h.cancel(cause)
		close(h.interrupted)
	})
}

// listen handles signals until Stop is called or the parent context ends.
// Signals after the first are drained and ignored.
func (h *Handler) listen() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case <-h.done:
			return
		case sig := <-h.sigChan:
			h.handleSignal(sig)
		}
	}
}
