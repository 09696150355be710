// Package protocol implements the wire-level pieces of the NXP LPC2xxx ISP
// bootloader protocol.
//
// The ISP protocol is line oriented ASCII over a half-duplex serial link:
//
//	Command:  "R 1073741824 4096" CR LF
//	Echo:     "R 1073741824 4096" CR LF   (optional, echo mode)
//	Status:   "0" CR LF                   (decimal ReturnCode)
//	Data:     "-<encoded bytes...>" CR LF (uuencoded block lines)
//	Checksum: "12345" CR LF               (decimal sum of block bytes)
//	Ack:      "OK" CR LF or "RESEND" CR LF
//
// This package is stateless. It provides:
//
//   - The closed ReturnCode taxonomy and ParseReturnCode
//   - DecodeLine / EncodeLine for the 6-bit block line format, including the
//     repeated-last-byte padding quirk of the boot ROM
//   - BlockChecksum, the modulo 2^32 byte sum declared after each block
//
// The stateful protocol engine (handshake, command channel, block transfer)
// lives in the isp package.
//
// # Reference
//
// UM10211, LPC23xx User manual, chapter 30: Flash memory programming firmware.
package protocol
