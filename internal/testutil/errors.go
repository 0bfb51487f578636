// Package testutil provides build-tree fixtures and helpers shared by
// postbuild tests. Only *_test.go files import it.
package testutil

import "errors"

// ErrSimulatedIO stands in for an OS failure that has no user-facing entry,
// for tests that check such errors pass through unchanged.
var ErrSimulatedIO = errors.New("simulated I/O failure")
