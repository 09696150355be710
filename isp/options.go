package isp

import "time"

// Config holds the device configuration.
type Config struct {
	// TargetClockKHz is the target crystal frequency in kHz, sent during
	// synchronization. Must be at least protocol.MinTargetClockKHz.
	TargetClockKHz int

	// Echo controls whether the target is assumed to echo every command
	// line before its real response. The boot ROM starts with echo on.
	Echo bool

	// ReadTimeout is the default per-line read timeout applied to the
	// Transport outside block transfers.
	ReadTimeout time.Duration

	// SyncTimeout bounds the whole synchronization handshake, across all
	// reset-and-retry attempts.
	SyncTimeout time.Duration

	// TransferTimeout bounds one block transfer operation wall-clock.
	TransferTimeout time.Duration

	// ResetHold is how long the control lines are held asserted during a
	// reset pulse, and the settle delay after release.
	ResetHold time.Duration

	// UnlockCode is the code sent with the "U" command.
	UnlockCode int

	// MaxBlockResends bounds how often one block may be re-requested
	// before the transfer is abandoned.
	MaxBlockResends int

	// ProgressCallback is called after each accepted block during a
	// transfer (optional)
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional)
	Logger Logger
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		TargetClockKHz:  12000,
		Echo:            true,
		ReadTimeout:     2 * time.Second,
		SyncTimeout:     10 * time.Second,
		TransferTimeout: 60 * time.Second,
		ResetHold:       500 * time.Millisecond,
		UnlockCode:      23130,
		MaxBlockResends: 10,
	}
}

// Option is a functional option for configuring the Device.
type Option func(*Config)

// WithTargetClock sets the target crystal frequency in kHz.
// Values below the boot ROM minimum of 10000 kHz are ignored.
func WithTargetClock(khz int) Option {
	return func(c *Config) {
		if khz >= 10000 {
			c.TargetClockKHz = khz
		}
	}
}

// WithEcho sets the assumed echo mode. Only change this if the target was
// left with echo off by a previous session.
func WithEcho(on bool) Option {
	return func(c *Config) {
		c.Echo = on
	}
}

// WithReadTimeout sets the default per-line read timeout.
func WithReadTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.ReadTimeout = timeout
		}
	}
}

// WithSyncTimeout bounds the synchronization handshake.
func WithSyncTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.SyncTimeout = timeout
		}
	}
}

// WithTransferTimeout bounds a single block transfer.
func WithTransferTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.TransferTimeout = timeout
		}
	}
}

// WithResetHold sets the reset pulse hold and settle delay.
func WithResetHold(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.ResetHold = d
		}
	}
}

// WithUnlockCode overrides the code sent with the "U" command.
func WithUnlockCode(code int) Option {
	return func(c *Config) {
		c.UnlockCode = code
	}
}

// WithMaxBlockResends bounds per-block resend attempts during a transfer.
func WithMaxBlockResends(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.MaxBlockResends = n
		}
	}
}

// WithProgressCallback sets a callback invoked after each accepted block
// during a block transfer.
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for device operations.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
