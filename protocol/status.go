package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// ReturnCode is the numeric outcome reported by the target after a command.
// The boot ROM sends it as a bare ASCII decimal line immediately after the
// command echo.
type ReturnCode int

// Return codes per NXP ISP specification (UM10211 table 300).
const (
	// CmdSuccess indicates the command was executed successfully
	CmdSuccess ReturnCode = 0

	// InvalidCommand indicates an invalid command code
	InvalidCommand ReturnCode = 1

	// SrcAddrError indicates the source address is not word-aligned
	SrcAddrError ReturnCode = 2

	// DstAddrError indicates the destination address is not correctly aligned
	DstAddrError ReturnCode = 3

	// SrcAddrNotMapped indicates the source address is not mapped in memory
	SrcAddrNotMapped ReturnCode = 4

	// DstAddrNotMapped indicates the destination address is not mapped in memory
	DstAddrNotMapped ReturnCode = 5

	// CountError indicates the byte count is not a permitted value
	CountError ReturnCode = 6

	// InvalidSector indicates the sector number does not exist
	InvalidSector ReturnCode = 7

	// SectorNotBlank indicates a blank check found programmed words
	SectorNotBlank ReturnCode = 8

	// SectorNotPrepared indicates the sector was not prepared for a write operation
	SectorNotPrepared ReturnCode = 9

	// CompareError indicates the compared memory ranges differ
	CompareError ReturnCode = 10

	// Busy indicates the flash hardware interface is busy
	Busy ReturnCode = 11

	// ParamError indicates insufficient or invalid command parameters
	ParamError ReturnCode = 12

	// AddrError indicates the address is not word-aligned
	AddrError ReturnCode = 13

	// AddrNotMapped indicates the address is not mapped in memory
	AddrNotMapped ReturnCode = 14

	// CmdLocked indicates the command is locked (unlock code not given)
	CmdLocked ReturnCode = 15

	// InvalidCode indicates the unlock code is invalid
	InvalidCode ReturnCode = 16

	// InvalidBaudRate indicates the requested baud rate cannot be set
	InvalidBaudRate ReturnCode = 17

	// InvalidStopBit indicates the requested stop bit setting is invalid
	InvalidStopBit ReturnCode = 18

	// CodeReadProtection indicates code read protection is enabled
	CodeReadProtection ReturnCode = 19

	// InvalidFlashUnit indicates an invalid flash unit was addressed
	InvalidFlashUnit ReturnCode = 20

	// UserCodeChecksum indicates the user code vector checksum is invalid
	UserCodeChecksum ReturnCode = 21

	// SetActivePartitionError indicates the active partition could not be set
	SetActivePartitionError ReturnCode = 22
)

// maxReturnCode is the highest code the boot ROM can report. Anything above
// it on the wire is a protocol violation, not a new failure reason.
const maxReturnCode = SetActivePartitionError

var returnCodeNames = map[ReturnCode]string{
	CmdSuccess:              "CMD_SUCCESS",
	InvalidCommand:          "INVALID_COMMAND",
	SrcAddrError:            "SRC_ADDR_ERROR",
	DstAddrError:            "DST_ADDR_ERROR",
	SrcAddrNotMapped:        "SRC_ADDR_NOT_MAPPED",
	DstAddrNotMapped:        "DST_ADDR_NOT_MAPPED",
	CountError:              "COUNT_ERROR",
	InvalidSector:           "INVALID_SECTOR",
	SectorNotBlank:          "SECTOR_NOT_BLANK",
	SectorNotPrepared:       "SECTOR_NOT_PREPARED_FOR_WRITE_OPERATION",
	CompareError:            "COMPARE_ERROR",
	Busy:                    "BUSY",
	ParamError:              "PARAM_ERROR",
	AddrError:               "ADDR_ERROR",
	AddrNotMapped:           "ADDR_NOT_MAPPED",
	CmdLocked:               "CMD_LOCKED",
	InvalidCode:             "INVALID_CODE",
	InvalidBaudRate:         "INVALID_BAUD_RATE",
	InvalidStopBit:          "INVALID_STOP_BIT",
	CodeReadProtection:      "CODE_READ_PROTECTION_ENABLED",
	InvalidFlashUnit:        "INVALID_FLASH_UNIT",
	UserCodeChecksum:        "USER_CODE_CHECKSUM",
	SetActivePartitionError: "ERROR_SETTING_ACTIVE_PARTITION",
}

// String returns the symbolic name of the return code as used in the NXP
// documentation, or a numeric fallback for out-of-range values.
func (c ReturnCode) String() string {
	if name, ok := returnCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("RETURN_CODE(%d)", int(c))
}

// ParseReturnCode parses a status line into a ReturnCode.
// An unparseable line or an integer outside the defined range is a protocol
// violation and reported as a *MalformedLineError.
func ParseReturnCode(line string) (ReturnCode, error) {
	s := strings.TrimSpace(line)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &MalformedLineError{Line: line, Reason: "expected decimal return code"}
	}
	code := ReturnCode(n)
	if code < CmdSuccess || code > maxReturnCode {
		return 0, &MalformedLineError{Line: line, Reason: fmt.Sprintf("return code %d out of range", n)}
	}
	return code, nil
}
