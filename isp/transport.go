package isp

import "time"

// Transport is the byte-oriented duplex connection the engine drives.
// Implementations provide line-buffered reads with a mutable timeout and the
// two control lines wired to the target's reset and bootloader-entry pins.
//
// The serialport package provides an implementation for serial ports; any
// other carrier (USB CDC, TCP-to-serial bridge, a mock for tests) works as
// long as it honors these semantics.
type Transport interface {
	// Write sends the given bytes.
	Write(p []byte) error

	// ReadLine reads up to and including a LF, honoring the current read
	// timeout. On timeout it returns whatever was accumulated along with
	// an error.
	ReadLine() ([]byte, error)

	// SetReadTimeout changes the timeout applied to ReadLine.
	// A zero duration disables the timeout entirely: reads block until a
	// line arrives.
	SetReadTimeout(d time.Duration) error

	// SetControlLines drives the DTR and RTS outputs, used to pulse the
	// target into its boot ROM.
	SetControlLines(dtr, rts bool) error
}
