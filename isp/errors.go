package isp

import (
	"errors"
	"fmt"
	"time"

	"github.com/moffa90/go-lpcisp/protocol"
)

// ErrNotSupported is returned by operations the engine deliberately does not
// implement: the flash erase, sector protection and RAM-to-flash programming
// commands.
var ErrNotSupported = errors.New("operation not supported")

// SyncTimeoutError indicates the synchronization handshake did not complete
// within the configured deadline. The session is unusable; the caller may
// retry by calling Synchronize again.
type SyncTimeoutError struct {
	// Elapsed is the wall-clock time spent attempting to synchronize
	Elapsed time.Duration

	// Attempts is the number of reset-and-handshake attempts made
	Attempts int
}

func (e *SyncTimeoutError) Error() string {
	return fmt.Sprintf("unable to synchronize after %d attempts in %s", e.Attempts, e.Elapsed.Round(time.Millisecond))
}

// CommandError indicates the target answered a command with a non-success
// return code. The cancel byte has already been sent by the time the error
// surfaces.
type CommandError struct {
	// Op is the command line that failed
	Op string

	// Code is the return code reported by the target
	Code protocol.ReturnCode
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q failed: %s (%d)", e.Op, e.Code, int(e.Code))
}

// IsCommandError returns the embedded *CommandError if err carries one.
func IsCommandError(err error) (*CommandError, bool) {
	var ce *CommandError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// TransferTimeoutError indicates a block transfer did not complete within its
// deadline. Partial data is discarded and the cancel byte has been sent.
type TransferTimeoutError struct {
	// Received is the number of bytes accumulated before the deadline
	Received int

	// Want is the requested transfer size
	Want int
}

func (e *TransferTimeoutError) Error() string {
	return fmt.Sprintf("block transfer timed out after %d of %d bytes", e.Received, e.Want)
}

// ResendLimitError indicates one block kept failing its checksum past the
// configured resend bound. The cancel byte has been sent.
type ResendLimitError struct {
	// Block is the index of the offending block
	Block int

	// Resends is how many times it was re-requested
	Resends int
}

func (e *ResendLimitError) Error() string {
	return fmt.Sprintf("block %d failed checksum after %d resends", e.Block, e.Resends)
}
