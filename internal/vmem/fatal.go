package vmem

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync/atomic"
	"syscall"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// SetLogger replaces the logger that fatal diagnostics are written to.
// A nil logger restores the no-op default. Fatal conditions terminate the
// process regardless of the logger's level.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

// fatal reports an OS failure that leaves a reservation in an unknown
// state and terminates the process.
func fatal(message string, err error) {
	location := "unknown"
	if _, file, line, ok := runtime.Caller(1); ok {
		location = fmt.Sprintf("%s:%d", file, line)
	}

	code := 0
	var errno syscall.Errno
	if errors.As(err, &errno) {
		code = int(errno)
	}

	logger.Load().Fatal("vmem: fatal error",
		zap.String("location", location),
		zap.String("description", message),
		zap.Int("os_error_code", code),
		zap.Error(err),
	)
	// A custom fatal hook may return; the reservation can no longer be trusted.
	os.Exit(1)
}
