package commands

import (
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Verbose loggers are flushed once the executing command finishes, whether
// or not it failed.
var (
	loggersMu       sync.Mutex
	loggers         []*zap.Logger
	finalizeLoggers sync.Once
)

func newVerboseLogger() (*zap.Logger, error) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}

	finalizeLoggers.Do(func() {
		cobra.OnFinalize(syncLoggers)
	})

	loggersMu.Lock()
	loggers = append(loggers, logger)
	loggersMu.Unlock()

	return logger, nil
}

func syncLoggers() {
	loggersMu.Lock()
	pending := loggers
	loggers = nil
	loggersMu.Unlock()

	for _, logger := range pending {
		// Syncing a terminal stderr reports EINVAL on some platforms.
		_ = logger.Sync()
	}
}
