//go:build unix

package flock

import (
	"errors"
	"syscall"
)

// exclusive takes a non-blocking exclusive flock(2) on fd.
func exclusive(fd uintptr) error {
	return syscall.Flock(int(fd), syscall.LOCK_EX|syscall.LOCK_NB)
}

func unlock(fd uintptr) error {
	return syscall.Flock(int(fd), syscall.LOCK_UN)
}

// isContention reports whether err from exclusive means the lock is held
// elsewhere. EAGAIN and EWOULDBLOCK share a value on every unix Go supports.
func isContention(err error) bool {
	return errors.Is(err, syscall.EWOULDBLOCK)
}
