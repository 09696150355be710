package isp

import "time"

// Progress contains information about a block transfer in flight.
// Passed to ProgressCallback after every accepted block.
type Progress struct {
	// Received is the number of bytes accumulated so far
	Received int

	// Total is the requested transfer size in bytes
	Total int

	// Blocks is the number of checksum-verified blocks accepted
	Blocks int

	// Resends is the number of blocks re-requested so far
	Resends int

	// Elapsed is the time since the transfer started
	Elapsed time.Duration
}

// ProgressCallback is called during a block transfer to report progress.
// Implementations should return quickly; the target keeps streaming lines
// while the callback runs.
type ProgressCallback func(Progress)

// Logger is an optional logging interface that can be provided to the device.
// This allows integration with any logging framework.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
