package abtest

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mrz1836/taskrouter/internal/constants"
	"github.com/mrz1836/taskrouter/internal/domain"
	trerrors "github.com/mrz1836/taskrouter/internal/errors"
	"github.com/mrz1836/taskrouter/internal/flock"
)

// Recorder persists A/B records.
type Recorder interface {
	Record(ctx context.Context, rec domain.ABRecord) error
}

// FileSink appends records to a JSONL file. The file is opened, appended to
// and closed on every call, so nothing is held open between requests and
// another process may rotate the file at any time. Appends from concurrent
// taskrouter processes are serialized with an exclusive file lock.
type FileSink struct {
	path         string
	lockTimeout  time.Duration
	lockInterval time.Duration
	mu           sync.Mutex
}

// SinkOption configures a FileSink.
type SinkOption func(*FileSink)

// WithLockTimeout sets how long an append waits for another process's lock.
// Non-positive values are ignored.
func WithLockTimeout(d time.Duration) SinkOption {
	return func(s *FileSink) {
		if d > 0 {
			s.lockTimeout = d
		}
	}
}

// NewFileSink creates a sink writing to path. Parent directories are created
// on first write.
func NewFileSink(path string, opts ...SinkOption) *FileSink {
	s := &FileSink{
		path:         path,
		lockTimeout:  constants.ABLogLockTimeout,
		lockInterval: constants.ABLogLockRetryInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the log file path.
func (s *FileSink) Path() string {
	return s.path
}

// Record marshals rec and appends it as one line in a single write.
func (s *FileSink) Record(ctx context.Context, rec domain.ABRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return trerrors.Wrap(err, "marshal ab record")
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return trerrors.Wrap(err, "create ab log directory")
	}

	//nolint:gosec // Path comes from configuration
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return trerrors.Wrap(err, "open ab log")
	}
	if err := flock.Lock(ctx, f, s.lockTimeout, s.lockInterval); err != nil {
		_ = f.Close()
		return trerrors.Wrap(err, "lock ab log")
	}
	_, werr := f.Write(line)
	// Closing the file also drops the lock.
	_ = flock.Unlock(f)
	cerr := f.Close()
	if werr != nil {
		return trerrors.Wrap(werr, "append ab record")
	}
	return trerrors.Wrap(cerr, "close ab log")
}

// NopRecorder discards every record.
type NopRecorder struct{}

// Record does nothing.
func (NopRecorder) Record(context.Context, domain.ABRecord) error {
	return nil
}
