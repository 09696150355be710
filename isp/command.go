package isp

import (
	"fmt"
	"strings"
	"time"

	"github.com/moffa90/go-lpcisp/protocol"
)

// untilTimeout as a line count makes exec drain response lines until a read
// times out, used for open-ended listing commands.
const untilTimeout = -1

// cancelEchoTimeout bounds the read that swallows the echoed cancel byte.
// The echo is a bare ESC with no terminator, so the read can only end by
// timing out.
const cancelEchoTimeout = 250 * time.Millisecond

// request describes one command/response exchange on the wire.
type request struct {
	// line is the command without terminator
	line string

	// bare suppresses the line terminator (sync byte, acknowledgments
	// during the handshake are still terminated; only '?' is bare)
	bare bool

	// status makes exec parse a return code line after the echo
	status bool

	// lines is the number of further response lines, or untilTimeout
	lines int

	// timeout temporarily overrides the read timeout for this exchange
	timeout time.Duration
}

// exec performs one command/response exchange: write the line, optionally
// strip the echoed copy, optionally parse the return code, then collect the
// remaining response lines. A non-success return code cancels the in-flight
// command before the error is returned.
func (d *Device) exec(req request) ([]string, error) {
	wire := req.line
	if !req.bare {
		wire += protocol.LineTerminator
	}

	if req.timeout > 0 {
		if err := d.t.SetReadTimeout(req.timeout); err != nil {
			return nil, fmt.Errorf("override read timeout: %w", err)
		}
		defer d.t.SetReadTimeout(d.config.ReadTimeout)
	}

	if err := d.t.Write([]byte(wire)); err != nil {
		return nil, fmt.Errorf("write command: %w", err)
	}

	remaining := req.lines
	var collected []string

	// The first line read back may be an echo of the command. A mismatch
	// is not an error: it is the start of the actual response and counts
	// toward the expected line budget.
	if d.config.Echo {
		echoed, err := d.t.ReadLine()
		if err != nil {
			return nil, fmt.Errorf("read echo of %q: %w", req.line, err)
		}
		if line := stripEOL(echoed); line != req.line {
			collected = append(collected, line)
			if remaining > 0 {
				remaining--
			}
		}
	}

	if req.status {
		line, err := d.t.ReadLine()
		if err != nil {
			return nil, fmt.Errorf("read return code of %q: %w", req.line, err)
		}
		collected = append(collected, stripEOL(line))
	}

	if remaining == untilTimeout {
		for {
			line, err := d.t.ReadLine()
			if err != nil {
				break
			}
			collected = append(collected, stripEOL(line))
		}
	} else {
		for i := 0; i < remaining; i++ {
			line, err := d.t.ReadLine()
			if err != nil {
				return nil, fmt.Errorf("read response of %q: %w", req.line, err)
			}
			collected = append(collected, stripEOL(line))
		}
	}

	if req.status {
		if len(collected) == 0 {
			d.cancel()
			return nil, &protocol.MalformedLineError{Line: "", Reason: "missing return code line"}
		}
		code, err := protocol.ParseReturnCode(collected[0])
		if err != nil {
			d.cancel()
			return nil, err
		}
		if code != protocol.CmdSuccess {
			d.cancel()
			d.logDebug("command failed", "command", req.line, "code", code.String())
			return nil, &CommandError{Op: req.line, Code: code}
		}
		collected = collected[1:]
	}

	return collected, nil
}

// cancel aborts whatever command state the target is in by sending the bare
// cancel byte. When echo mode is on, the echoed byte is swallowed so it does
// not pollute the next response.
func (d *Device) cancel() {
	_ = d.t.Write([]byte{protocol.CancelByte})
	if d.config.Echo {
		_ = d.t.SetReadTimeout(cancelEchoTimeout)
		_, _ = d.t.ReadLine()
		_ = d.t.SetReadTimeout(d.config.ReadTimeout)
	}
}

// stripEOL drops the trailing terminator of a received line.
func stripEOL(line []byte) string {
	return strings.TrimRight(string(line), "\r\n")
}
