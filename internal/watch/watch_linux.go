//go:build linux

package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	pollInterval = 100 * time.Millisecond
	watchMask    = unix.IN_MODIFY | unix.IN_CLOSE_WRITE
)

// Watcher reports writes to files through inotify.
type Watcher struct {
	fd    int
	mu    sync.Mutex
	paths map[int]string
	deb   *debouncer
}

// New creates a Watcher. onChange runs on its own goroutine, once per path
// after delay has passed without further writes; a delay of zero means
// DefaultDelay.
func New(delay time.Duration, onChange func(path string)) (*Watcher, error) {
	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("inotify_init failed: %w", err)
	}
	return &Watcher{
		fd:    fd,
		paths: make(map[int]string),
		deb:   newDebouncer(delay, onChange),
	}, nil
}

// Add starts watching path. The callback receives the absolute path.
func (w *Watcher) Add(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	wd, err := unix.InotifyAddWatch(w.fd, absPath, watchMask)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", absPath, err)
	}

	w.mu.Lock()
	w.paths[wd] = absPath
	w.mu.Unlock()
	return nil
}

// Run reads events until ctx is cancelled, then returns nil.
func (w *Watcher) Run(ctx context.Context) error {
	buf := make([]byte, 16*(unix.SizeofInotifyEvent+unix.NAME_MAX+1))

	for {
		if ctx.Err() != nil {
			return nil
		}
		n, err := unix.Read(w.fd, buf)
		if err != nil {
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(pollInterval):
				}
				continue
			}
			return fmt.Errorf("reading inotify events: %w", err)
		}

		offset := 0
		for offset+unix.SizeofInotifyEvent <= n {
			event := (*unix.InotifyEvent)(unsafe.Pointer(&buf[offset]))
			offset += unix.SizeofInotifyEvent + int(event.Len)

			if event.Mask&watchMask == 0 {
				continue
			}
			w.mu.Lock()
			path := w.paths[int(event.Wd)]
			w.mu.Unlock()
			if path != "" {
				w.deb.trigger(path)
			}
		}
	}
}

// Close drops pending callbacks and releases the inotify descriptor.
func (w *Watcher) Close() error {
	w.deb.stop()
	return unix.Close(w.fd)
}
