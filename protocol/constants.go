package protocol

// Wire framing constants per NXP LPC2xxx ISP specification (UM10211 chapter 30).
const (
	// LineTerminator ends every command and response line
	LineTerminator = "\r\n"

	// SyncByte is the single byte sent to start auto-baud detection.
	// It is sent bare, with no line terminator.
	SyncByte = '?'

	// SyncString is the handshake phrase emitted by the boot ROM after
	// auto-baud lock, and echoed back by the host to confirm it.
	SyncString = "Synchronized"

	// Ack is the acknowledgment sent by both sides during the handshake
	// and by the host after a verified data block.
	Ack = "OK"

	// Resend is sent by the host to request retransmission of a data
	// block whose checksum did not match.
	Resend = "RESEND"

	// CancelByte aborts whatever command state the target is in.
	// It is sent bare; the target echoes it back when echo mode is on.
	CancelByte = 0x1B

	// EchoOn and EchoOff are the arguments of the "A" command.
	EchoOn  = 1
	EchoOff = 0
)

// Block line encoding constants. Data block lines use the classic uuencode
// character set: the first character declares the payload length, the rest
// carry 6 bits per character.
const (
	// LengthBias is added to a line's payload length to form its first
	// character (uuencode length character, biased by space).
	LengthBias = 0x20

	// MaxLineBytes is the maximum raw payload carried by one encoded line.
	MaxLineBytes = 45

	// encGroupBytes raw bytes are packed into encGroupChars characters.
	encGroupBytes = 3
	encGroupChars = 4
)

// DefaultUnlockCode is the code accepted by the "U" command to unlock the
// flash write, erase and go commands.
const DefaultUnlockCode = 23130

// MinTargetClockKHz is the lowest target clock frequency, in kHz, accepted
// during synchronization. The boot ROM requires a crystal above 10 MHz for
// reliable auto-baud.
const MinTargetClockKHz = 10000
