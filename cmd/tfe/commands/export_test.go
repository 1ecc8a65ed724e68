package commands

// PendingLoggers reports how many verbose loggers are still waiting for Sync.
func PendingLoggers() int {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	return len(loggers)
}
