package isp

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/moffa90/go-lpcisp/protocol"
)

// partRevisionAddr is the flash location holding the part revision word.
const partRevisionAddr = 0x0007E070

// ExecMode selects the processor state the target starts in after a Go
// command.
type ExecMode string

const (
	// ExecARM starts execution in ARM state
	ExecARM ExecMode = "A"

	// ExecThumb starts execution in Thumb state
	ExecThumb ExecMode = "T"
)

// Device drives the ISP boot ROM of one LPC2xxx target over a Transport.
//
// The wire protocol is strictly half-duplex request/response: a Device owns
// its Transport exclusively and is not safe for concurrent use. Callers
// needing concurrency must serialize access externally.
type Device struct {
	t      Transport
	config Config
}

// New creates a Device for the given transport and options. The target is
// not touched until Synchronize is called.
//
// Example:
//
//	port, _ := serialport.Open("/dev/ttyUSB0", 115200)
//	dev := isp.New(port,
//	    isp.WithTargetClock(14746),
//	    isp.WithSyncTimeout(10*time.Second),
//	)
//	if err := dev.Synchronize(); err != nil {
//	    log.Fatal(err)
//	}
func New(t Transport, opts ...Option) *Device {
	if t == nil {
		panic("transport cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Device{
		t:      t,
		config: cfg,
	}
}

// Unlock enables the flash write, erase and go commands with the configured
// unlock code.
func (d *Device) Unlock() error {
	_, err := d.exec(request{line: fmt.Sprintf("U %d", d.config.UnlockCode), status: true})
	return err
}

// SetBaudRate asks the target to switch to a new baud rate and stop bit
// count. The caller must reconfigure the Transport to match after success.
func (d *Device) SetBaudRate(baud, stopBits int) error {
	if stopBits != 1 && stopBits != 2 {
		return fmt.Errorf("stop bits must be 1 or 2, got %d", stopBits)
	}
	_, err := d.exec(request{line: fmt.Sprintf("B %d %d", baud, stopBits), status: true})
	return err
}

// SetEcho turns the target's command echo on or off. The session
// configuration follows the target on success so later exchanges parse
// correctly.
func (d *Device) SetEcho(on bool) error {
	arg := protocol.EchoOff
	if on {
		arg = protocol.EchoOn
	}
	if _, err := d.exec(request{line: fmt.Sprintf("A %d", arg), status: true}); err != nil {
		return err
	}
	d.config.Echo = on
	return nil
}

// ReadMemory reads size bytes starting at addr using the block transfer
// sub-protocol. Both addr and size must be word-aligned.
func (d *Device) ReadMemory(addr, size uint32) ([]byte, error) {
	if addr%4 != 0 {
		return nil, fmt.Errorf("address 0x%08X is not word-aligned", addr)
	}
	if size%4 != 0 {
		return nil, fmt.Errorf("size %d is not a multiple of 4", size)
	}

	if _, err := d.exec(request{line: fmt.Sprintf("R %d %d", addr, size), status: true}); err != nil {
		return nil, err
	}
	return d.readData(int(size), d.config.TransferTimeout)
}

// Go transfers control to the program at addr in the given processor state.
// The address must be word-aligned. On success the target leaves the boot
// ROM and the session is over.
func (d *Device) Go(addr uint32, mode ExecMode) error {
	if addr%4 != 0 {
		return fmt.Errorf("address 0x%08X is not word-aligned", addr)
	}
	if mode != ExecARM && mode != ExecThumb {
		return fmt.Errorf("execution mode must be %q or %q, got %q", ExecARM, ExecThumb, mode)
	}
	_, err := d.exec(request{line: fmt.Sprintf("G %d %s", addr, mode), status: true})
	return err
}

// BlankCheckSectors checks that the given sector range is blank. A non-blank
// range surfaces as a *CommandError with code SECTOR_NOT_BLANK.
func (d *Device) BlankCheckSectors(start, end int) error {
	if end < start {
		return fmt.Errorf("end sector %d before start sector %d", end, start)
	}
	_, err := d.exec(request{line: fmt.Sprintf("I %d %d", start, end), status: true})
	return err
}

// Compare compares two memory ranges on the target. Differing ranges surface
// as a *CommandError with code COMPARE_ERROR.
func (d *Device) Compare(addr1, addr2, size uint32) error {
	_, err := d.exec(request{line: fmt.Sprintf("M %d %d %d", addr1, addr2, size), status: true})
	return err
}

// ReadPartID reads the part identification word.
func (d *Device) ReadPartID() (uint32, error) {
	lines, err := d.exec(request{line: "J", status: true, lines: 1})
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(strings.TrimSpace(lines[0]), 10, 32)
	if err != nil {
		return 0, &protocol.MalformedLineError{Line: lines[0], Reason: "expected decimal part identification"}
	}
	return uint32(id), nil
}

// ReadPartName reads the part identification word and maps it to a
// human-readable part name. Unknown identifiers yield an explicit
// "UNKNOWN (0x...)" name, not an error.
func (d *Device) ReadPartName() (string, error) {
	id, err := d.ReadPartID()
	if err != nil {
		return "", err
	}
	return PartName(id), nil
}

// ReadBootCodeVersion reads the boot code version. The target reports the
// minor number first, then the major number.
func (d *Device) ReadBootCodeVersion() (string, error) {
	lines, err := d.exec(request{line: "K", status: true, lines: 2})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s.%s", strings.TrimSpace(lines[1]), strings.TrimSpace(lines[0])), nil
}

// ReadPartRevision reads the part revision word from flash. Revision zero
// reads as "-"; values 1 through 26 map to revision letters.
func (d *Device) ReadPartRevision() (string, error) {
	raw, err := d.ReadMemory(partRevisionAddr, 4)
	if err != nil {
		return "", err
	}
	rev := binary.LittleEndian.Uint32(raw)
	switch {
	case rev == 0:
		return "-", nil
	case rev >= 1 && rev <= 26:
		return string(rune('A' + rev - 1)), nil
	default:
		return fmt.Sprintf("UNKNOWN (0x%08X)", rev), nil
	}
}

// WriteToRAM is not implemented.
func (d *Device) WriteToRAM(addr uint32, data []byte) error {
	return ErrNotSupported
}

// CopyRAMToFlash is not implemented. Arguments are still validated so
// callers fail fast on bad geometry.
func (d *Device) CopyRAMToFlash(flashAddr, ramAddr uint32, size int) error {
	if flashAddr%256 != 0 {
		return fmt.Errorf("flash address 0x%08X is not 256-byte aligned", flashAddr)
	}
	switch size {
	case 256, 512, 1024, 4096:
	default:
		return fmt.Errorf("copy size must be 256, 512, 1024 or 4096, got %d", size)
	}
	return ErrNotSupported
}

// EraseSectors is not implemented.
func (d *Device) EraseSectors(start, end int) error {
	return ErrNotSupported
}

// UnprotectSectors is not implemented.
func (d *Device) UnprotectSectors(start, end int) error {
	return ErrNotSupported
}

// reportProgress calls the progress callback if configured.
func (d *Device) reportProgress(progress Progress) {
	if d.config.ProgressCallback != nil {
		d.config.ProgressCallback(progress)
	}
}

// logDebug logs a debug message if a logger is configured.
func (d *Device) logDebug(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (d *Device) logInfo(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (d *Device) logError(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Error(msg, keysAndValues...)
	}
}
