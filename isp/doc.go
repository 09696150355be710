// Package isp drives the In-System Programming boot ROM of NXP LPC2xxx
// microcontrollers over a serial link.
//
// # Overview
//
// The package implements the stateful half of the ISP protocol:
//   - The synchronization handshake, including the reset pulse and the
//     bounded retry loop
//   - The command channel: echo stripping, return code discipline, fixed or
//     open-ended response collection, and the cancel byte on failure
//   - The block transfer receiver: uuencoded lines, per-block checksums, and
//     OK/RESEND negotiation
//
// Wire-level pieces (return codes, line codec, block checksum) live in the
// protocol package; serial port plumbing lives in serialport.
//
// # Basic Usage
//
//	port, err := serialport.Open("/dev/ttyUSB0", 115200)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	dev := isp.New(port, isp.WithTargetClock(14746))
//	if err := dev.Synchronize(); err != nil {
//	    log.Fatal(err)
//	}
//
//	name, err := dev.ReadPartName()
//	data, err := dev.ReadMemory(0x0, 4096)
//
// # Configuration Options
//
//	dev := isp.New(port,
//	    isp.WithTargetClock(12000),
//	    isp.WithReadTimeout(2*time.Second),
//	    isp.WithSyncTimeout(10*time.Second),
//	    isp.WithTransferTimeout(60*time.Second),
//	    isp.WithLogger(myLogger),
//	    isp.WithProgressCallback(func(p isp.Progress) {
//	        fmt.Printf("%d/%d bytes\n", p.Received, p.Total)
//	    }),
//	)
//
// # Error Handling
//
// The package reports structured error types:
//   - *SyncTimeoutError: the handshake never completed; session unusable
//   - *CommandError: the target answered with a non-success return code;
//     the cancel byte has already been sent
//   - *TransferTimeoutError: a block transfer missed its deadline
//   - *ResendLimitError: one block kept failing its checksum
//   - protocol.MalformedLineError: a line did not parse where a specific
//     format was required
//
// Checksum mismatches during a transfer are not errors: they are recovered
// through the resend protocol and only surface if resends never converge.
//
// All fatal errors leave the Transport cancelled but open; recovery means
// calling Synchronize again. There is no retry above the handshake's own
// bounded loop; retry policy belongs to the caller.
//
// # Concurrency
//
// The wire protocol is strictly half-duplex and cannot be pipelined. A
// Device owns its Transport exclusively and must not be used from multiple
// goroutines without external mutual exclusion.
package isp
