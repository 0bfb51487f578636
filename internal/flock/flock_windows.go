//go:build windows

package flock

import (
	"errors"

	"golang.org/x/sys/windows"
)

// LockFileEx byte range: the first byte of the file stands for the whole lock.
const (
	lockReserved  = 0
	lockBytesLow  = 1
	lockBytesHigh = 0
)

// exclusive takes a non-blocking exclusive LockFileEx lock on fd.
func exclusive(fd uintptr) error {
	return windows.LockFileEx(
		windows.Handle(fd),
		windows.LOCKFILE_EXCLUSIVE_LOCK|windows.LOCKFILE_FAIL_IMMEDIATELY,
		lockReserved,
		lockBytesLow,
		lockBytesHigh,
		&windows.Overlapped{},
	)
}

func unlock(fd uintptr) error {
	return windows.UnlockFileEx(
		windows.Handle(fd),
		lockReserved,
		lockBytesLow,
		lockBytesHigh,
		&windows.Overlapped{},
	)
}

// isContention reports whether err from exclusive means the lock is held
// elsewhere.
func isContention(err error) bool {
	return errors.Is(err, windows.ERROR_LOCK_VIOLATION)
}
