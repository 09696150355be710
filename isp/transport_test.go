package isp

import (
	"bytes"
	"errors"
	"time"
)

// errMockTimeout stands in for a transport read timeout.
var errMockTimeout = errors.New("mock read timeout")

// mockTransport simulates an ISP target for testing. Lines queued with
// addLine are handed out by ReadLine in order; when echo is on, every
// terminated Write inserts its own echo ahead of the pending lines, the way
// a real target answers on a half-duplex link.
type mockTransport struct {
	echo     bool
	queue    [][]byte
	writes   []string
	timeouts []time.Duration
	controls [][2]bool
	writeErr error
}

func newMockTransport(echo bool) *mockTransport {
	return &mockTransport{echo: echo}
}

func (m *mockTransport) addLine(s string) {
	m.queue = append(m.queue, []byte(s+"\r\n"))
}

func (m *mockTransport) addRaw(b []byte) {
	m.queue = append(m.queue, b)
}

func (m *mockTransport) Write(p []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes = append(m.writes, string(p))
	if m.echo && bytes.HasSuffix(p, []byte("\r\n")) {
		echoed := make([]byte, len(p))
		copy(echoed, p)
		m.queue = append([][]byte{echoed}, m.queue...)
	}
	return nil
}

func (m *mockTransport) ReadLine() ([]byte, error) {
	if len(m.queue) == 0 {
		return nil, errMockTimeout
	}
	line := m.queue[0]
	m.queue = m.queue[1:]
	return line, nil
}

func (m *mockTransport) SetReadTimeout(d time.Duration) error {
	m.timeouts = append(m.timeouts, d)
	return nil
}

func (m *mockTransport) SetControlLines(dtr, rts bool) error {
	m.controls = append(m.controls, [2]bool{dtr, rts})
	return nil
}

// wrote reports whether any write matches s exactly.
func (m *mockTransport) wrote(s string) bool {
	for _, w := range m.writes {
		if w == s {
			return true
		}
	}
	return false
}

// countWrites counts writes matching s exactly.
func (m *mockTransport) countWrites(s string) int {
	n := 0
	for _, w := range m.writes {
		if w == s {
			n++
		}
	}
	return n
}
