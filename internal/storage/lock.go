package storage

import (
	"fmt"
	"os"
	"syscall"
)

// lockStore acquires an exclusive flock on the store's companion lock
// file so concurrent invocations (a cron sweep racing an interactive
// add) cannot interleave their load/save cycles. It returns an unlock
// function that must be called to release the lock.
func lockStore(path string) (unlock func() error, err error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		f.Close()
		return nil, fmt.Errorf("acquiring file lock: %w", err)
	}

	return func() error {
		defer f.Close()
		return syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
	}, nil
}
