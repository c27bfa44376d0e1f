package runs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrProjectLocked indicates another process is generating the same
// identifier right now.
var ErrProjectLocked = errors.New("project locked by another run")

// ProjectLock enforces single-writer generation per project identifier. Two
// concurrent runs of the same identifier would race on the timeline file;
// different identifiers run freely in parallel.
type ProjectLock struct {
	path string
	lock *flock.Flock
}

// AcquireProjectLock takes the lock for an identifier, failing immediately if
// it is held elsewhere.
func AcquireProjectLock(lockDir, identifier string) (*ProjectLock, error) {
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	path := filepath.Join(lockDir, identifier+".lock")
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProjectLocked, path)
	}
	return &ProjectLock{path: path, lock: lock}, nil
}

// Release drops the lock and removes the lock file.
func (l *ProjectLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	_ = os.Remove(l.path)
	return nil
}

// Path returns the lock file location.
func (l *ProjectLock) Path() string {
	return l.path
}
