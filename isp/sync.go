package isp

import (
	"fmt"
	"strconv"
	"time"

	"github.com/moffa90/go-lpcisp/protocol"
)

// Synchronize establishes the handshake with the boot ROM. It repeatedly
// pulses the target into its boot ROM and runs the three-step exchange:
//
//  1. Send the bare sync byte, expect the fixed handshake phrase.
//  2. Echo the phrase back, expect "OK".
//  3. Send the target clock frequency in kHz, expect "OK".
//
// Any mismatch restarts the whole sequence with a fresh reset pulse. The
// loop is bounded by the configured sync timeout; exceeding it returns a
// *SyncTimeoutError and the session stays unusable.
func (d *Device) Synchronize() error {
	start := time.Now()
	attempts := 0

	for {
		if time.Since(start) > d.config.SyncTimeout {
			err := &SyncTimeoutError{Elapsed: time.Since(start), Attempts: attempts}
			d.logError("synchronization failed", "attempts", attempts)
			return err
		}
		attempts++

		if err := d.resetTarget(); err != nil {
			return fmt.Errorf("reset target: %w", err)
		}

		if !d.syncStep(request{line: string(rune(protocol.SyncByte)), bare: true, lines: 1}, protocol.SyncString) {
			d.logDebug("sync attempt failed", "attempt", attempts, "step", "autobaud")
			continue
		}
		if !d.syncStep(request{line: protocol.SyncString, lines: 1}, protocol.Ack) {
			d.logDebug("sync attempt failed", "attempt", attempts, "step", "phrase echo")
			continue
		}
		if !d.syncStep(request{line: strconv.Itoa(d.config.TargetClockKHz), lines: 1}, protocol.Ack) {
			d.logDebug("sync attempt failed", "attempt", attempts, "step", "clock")
			continue
		}

		d.logInfo("synchronized", "attempts", attempts, "clock_khz", d.config.TargetClockKHz)
		return nil
	}
}

// syncStep runs one handshake exchange and reports whether the single
// response line matched. Read failures and stray content are failed
// attempts, not fatal errors.
func (d *Device) syncStep(req request, want string) bool {
	lines, err := d.exec(req)
	return err == nil && len(lines) == 1 && lines[0] == want
}

// resetTarget pulses the control lines to force the target into its boot
// ROM: assert both, hold, release DTR with RTS still asserted, settle.
func (d *Device) resetTarget() error {
	if err := d.t.SetControlLines(true, true); err != nil {
		return err
	}
	time.Sleep(d.config.ResetHold)
	if err := d.t.SetControlLines(false, true); err != nil {
		return err
	}
	time.Sleep(d.config.ResetHold)
	return nil
}
