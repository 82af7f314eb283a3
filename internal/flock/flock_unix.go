//go:build unix

package flock

import (
	"os"

	"golang.org/x/sys/unix"
)

// TryExclusive takes an exclusive lock on f or fails immediately.
func TryExclusive(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
}

// Unlock releases a lock taken by TryExclusive or Lock.
func Unlock(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_UN)
}
