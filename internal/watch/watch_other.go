//go:build !linux

package watch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"
)

// Watcher is only implemented on Linux.
type Watcher struct{}

// New reports errors.ErrUnsupported.
func New(time.Duration, func(path string)) (*Watcher, error) {
	return nil, fmt.Errorf("watch on %s: %w", runtime.GOOS, errors.ErrUnsupported)
}

// Add reports errors.ErrUnsupported.
func (w *Watcher) Add(string) error { return errors.ErrUnsupported }

// Run reports errors.ErrUnsupported.
func (w *Watcher) Run(context.Context) error { return errors.ErrUnsupported }

// Close does nothing.
func (w *Watcher) Close() error { return nil }
