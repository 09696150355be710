package isp

import (
	"errors"
	"testing"
	"time"
)

func TestSynchronize(t *testing.T) {
	m := newMockTransport(true)
	m.addLine("Synchronized")
	m.addLine("OK")
	m.addLine("OK")

	dev := New(m, WithResetHold(time.Millisecond))
	if err := dev.Synchronize(); err != nil {
		t.Fatalf("Synchronize: %v", err)
	}

	// Reset pulse: both lines asserted, then DTR released with RTS held.
	if len(m.controls) != 2 {
		t.Fatalf("control line transitions = %v, want 2", m.controls)
	}
	if m.controls[0] != [2]bool{true, true} || m.controls[1] != [2]bool{false, true} {
		t.Errorf("reset pulse = %v, want assert both then release DTR", m.controls)
	}

	// The sync byte goes out bare; the phrase and the clock are terminated.
	if m.writes[0] != "?" {
		t.Errorf("first write = %q, want bare sync byte", m.writes[0])
	}
	if !m.wrote("Synchronized\r\n") {
		t.Errorf("handshake phrase not echoed back; writes = %q", m.writes)
	}
	if !m.wrote("12000\r\n") {
		t.Errorf("clock frequency not sent; writes = %q", m.writes)
	}
}

func TestSynchronizeRetriesAfterBadPhrase(t *testing.T) {
	m := newMockTransport(true)
	// First attempt: garbage instead of the handshake phrase.
	m.addLine("?\x00\x12garbage")
	// Second attempt succeeds.
	m.addLine("Synchronized")
	m.addLine("OK")
	m.addLine("OK")

	dev := New(m, WithResetHold(time.Millisecond))
	if err := dev.Synchronize(); err != nil {
		t.Fatalf("Synchronize: %v", err)
	}

	// A failed step restarts the full sequence including a fresh reset
	// pulse: two attempts mean four control line transitions.
	if len(m.controls) != 4 {
		t.Errorf("control line transitions = %d, want 4 (two reset pulses)", len(m.controls))
	}
	if got := m.countWrites("?"); got != 2 {
		t.Errorf("sync byte sent %d times, want 2", got)
	}
}

func TestSynchronizeRetriesAfterBadAck(t *testing.T) {
	m := newMockTransport(true)
	// First attempt: phrase arrives but the echo acknowledgment is wrong.
	m.addLine("Synchronized")
	m.addLine("NAK")
	// Second attempt succeeds.
	m.addLine("Synchronized")
	m.addLine("OK")
	m.addLine("OK")

	dev := New(m, WithResetHold(time.Millisecond))
	if err := dev.Synchronize(); err != nil {
		t.Fatalf("Synchronize: %v", err)
	}

	if got := m.countWrites("Synchronized\r\n"); got != 2 {
		t.Errorf("handshake phrase sent %d times, want 2", got)
	}
}

func TestSynchronizeTimeout(t *testing.T) {
	m := newMockTransport(true) // nothing queued: every attempt times out

	dev := New(m,
		WithResetHold(time.Millisecond),
		WithSyncTimeout(50*time.Millisecond),
	)
	err := dev.Synchronize()

	var ste *SyncTimeoutError
	if !errors.As(err, &ste) {
		t.Fatalf("error = %v, want *SyncTimeoutError", err)
	}
	if ste.Attempts == 0 {
		t.Error("expected at least one attempt before the deadline")
	}
}

func TestSynchronizeWithoutEcho(t *testing.T) {
	m := newMockTransport(false)
	m.addLine("Synchronized")
	m.addLine("OK")
	m.addLine("OK")

	dev := New(m, WithEcho(false), WithResetHold(time.Millisecond))
	if err := dev.Synchronize(); err != nil {
		t.Fatalf("Synchronize: %v", err)
	}
}
