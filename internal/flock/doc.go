// Package flock provides advisory, exclusive file locks for files shared
// between taskrouter processes, such as the A/B log.
//
// Locks are taken on an already open file and never block the OS thread:
// TryExclusive fails at once when another process holds the lock, and Lock
// retries until the lock is free, the context ends, or the timeout passes.
//
//	f, _ := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
//	if err := flock.Lock(ctx, f, 2*time.Second, 20*time.Millisecond); err != nil {
//	    return err
//	}
//	defer func() { _ = flock.Unlock(f) }()
package flock
