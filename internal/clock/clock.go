// Package clock supplies the timestamps recorded on a finalize result.
package clock

import "time"

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

// Now returns time.Now().
func (RealClock) Now() time.Time {
	return time.Now()
}

// Fixed always reports the same instant. Result timestamps produced with it
// are reproducible, which keeps JSON output stable in tests and golden files.
type Fixed time.Time

// Now returns the fixed instant.
func (f Fixed) Now() time.Time {
	return time.Time(f)
}

var (
	_ Clock = RealClock{}
	_ Clock = Fixed{}
)
