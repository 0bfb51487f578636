// Package ctxutil provides context helpers shared by postbuild commands.
package ctxutil

import "context"

// Canceled returns nil while ctx is live. Once ctx is done it returns the
// cancellation cause when one was recorded (for example signal.ErrInterrupted
// wrapped with the signal name), and ctx.Err() otherwise.
//
// postbuild calls this once before the first change to disk; after that a
// run is never interrupted part way.
func Canceled(ctx context.Context) error {
	if ctx.Err() == nil {
		return nil
	}
	if cause := context.Cause(ctx); cause != nil {
		return cause
	}
	return ctx.Err()
}
