// Package diag holds the toolkit's logger. Allocators log nothing by
// default; set ARENA_DEBUG for a development logger on stderr, or install
// one with SetLogger.
package diag

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.Mutex
	logger *zap.Logger
)

// L returns the toolkit's logger instance.
// It uses a no-op logger unless ARENA_DEBUG is set or SetLogger was called.
func L() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = defaultLogger()
	}
	return logger
}

// SetLogger installs l as the toolkit's logger. Passing nil restores the
// default.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

func defaultLogger() *zap.Logger {
	if os.Getenv("ARENA_DEBUG") == "" {
		return zap.NewNop()
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l
}
