package serialport

import (
	"errors"
	"fmt"
	"time"

	"go.bug.st/serial"
)

// ErrReadTimeout is returned by ReadLine when the read timeout expires
// before a full line arrived. The partial line read so far is returned
// alongside it.
var ErrReadTimeout = errors.New("serial read timeout")

// Port adapts a serial port to the line-oriented transport the ISP engine
// needs: terminator-bounded reads with a mutable timeout, and the DTR/RTS
// lines wired to the target's reset circuit.
type Port struct {
	port serial.Port
	name string
}

// config holds the port configuration.
type config struct {
	stopBits serial.StopBits
}

// Option is a functional option for configuring the port.
type Option func(*config)

// WithTwoStopBits opens the port with two stop bits instead of one. Some
// boards need this at high baud rates.
func WithTwoStopBits() Option {
	return func(c *config) {
		c.stopBits = serial.TwoStopBits
	}
}

// Open opens the named serial port at the given baud rate, 8 data bits, no
// parity.
//
// Example:
//
//	port, err := serialport.Open("/dev/ttyUSB0", 115200)
func Open(name string, baud int, opts ...Option) (*Port, error) {
	cfg := config{stopBits: serial.OneStopBit}
	for _, opt := range opts {
		opt(&cfg)
	}

	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: cfg.stopBits,
	}

	p, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}

	return &Port{port: p, name: name}, nil
}

// Write sends all of p, retrying partial writes.
func (p *Port) Write(b []byte) error {
	for len(b) > 0 {
		n, err := p.port.Write(b)
		if err != nil {
			return fmt.Errorf("serial write: %w", err)
		}
		b = b[n:]
	}
	return nil
}

// ReadLine reads bytes until a LF, honoring the current read timeout. On
// timeout it returns the bytes accumulated so far along with ErrReadTimeout.
func (p *Port) ReadLine() ([]byte, error) {
	var line []byte
	buf := make([]byte, 1)
	for {
		n, err := p.port.Read(buf)
		if err != nil {
			return line, fmt.Errorf("serial read: %w", err)
		}
		if n == 0 {
			// A zero-byte read means the timeout expired.
			return line, ErrReadTimeout
		}
		line = append(line, buf[0])
		if buf[0] == '\n' {
			return line, nil
		}
	}
}

// SetReadTimeout changes the per-read timeout. A zero duration disables the
// timeout entirely so reads block until data arrives.
func (p *Port) SetReadTimeout(d time.Duration) error {
	if d <= 0 {
		return p.port.SetReadTimeout(serial.NoTimeout)
	}
	return p.port.SetReadTimeout(d)
}

// SetControlLines drives the DTR and RTS outputs.
func (p *Port) SetControlLines(dtr, rts bool) error {
	if err := p.port.SetDTR(dtr); err != nil {
		return fmt.Errorf("set DTR: %w", err)
	}
	if err := p.port.SetRTS(rts); err != nil {
		return fmt.Errorf("set RTS: %w", err)
	}
	return nil
}

// SetMode reconfigures baud rate and stop bits on the open port, used after
// a successful baud rate change command.
func (p *Port) SetMode(baud, stopBits int) error {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	if stopBits == 2 {
		mode.StopBits = serial.TwoStopBits
	}
	if err := p.port.SetMode(mode); err != nil {
		return fmt.Errorf("set mode: %w", err)
	}
	return nil
}

// Close closes the underlying serial port.
func (p *Port) Close() error {
	return p.port.Close()
}
