package isp

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/moffa90/go-lpcisp/protocol"
)

// readData receives size bytes as a sequence of checksummed blocks.
//
// Each block arrives as one or more encoded lines followed by a bare decimal
// checksum line. A matching checksum is acknowledged with "OK" and the block
// is appended exactly once; a mismatch answers "RESEND" and discards the
// block so the target retransmits it.
//
// The per-line read timeout is disabled for the whole transfer; only the
// wall-clock deadline bounds the loop. The timeout is restored on every exit
// path so a disabled timeout never leaks into subsequent commands.
func (d *Device) readData(size int, deadline time.Duration) ([]byte, error) {
	if err := d.t.SetReadTimeout(0); err != nil {
		return nil, fmt.Errorf("disable read timeout: %w", err)
	}
	defer d.t.SetReadTimeout(d.config.ReadTimeout)

	start := time.Now()
	data := make([]byte, 0, size)
	var block []byte
	blocks := 0
	resends := 0
	totalResends := 0

	for len(data) < size {
		if time.Since(start) > deadline {
			d.cancel()
			return nil, &TransferTimeoutError{Received: len(data), Want: size}
		}

		line, err := d.t.ReadLine()
		if err != nil {
			d.cancel()
			return nil, fmt.Errorf("read block line: %w", err)
		}

		text := strings.TrimSpace(string(line))
		declared, perr := strconv.ParseUint(text, 10, 32)
		if perr != nil {
			// Not a checksum line: decode and accumulate.
			decoded, derr := protocol.DecodeLine(line)
			if derr != nil {
				d.cancel()
				return nil, fmt.Errorf("decode block line: %w", derr)
			}
			block = append(block, decoded...)
			continue
		}

		// Checksum line terminates the block in progress.
		if uint32(declared) == protocol.BlockChecksum(block) {
			if _, err := d.exec(request{line: protocol.Ack, lines: 0}); err != nil {
				d.cancel()
				return nil, fmt.Errorf("acknowledge block %d: %w", blocks, err)
			}
			data = append(data, block...)
			blocks++
			resends = 0
			d.reportProgress(Progress{
				Received: len(data),
				Total:    size,
				Blocks:   blocks,
				Resends:  totalResends,
				Elapsed:  time.Since(start),
			})
		} else {
			resends++
			totalResends++
			d.logDebug("block checksum mismatch",
				"block", blocks,
				"declared", declared,
				"computed", protocol.BlockChecksum(block),
				"resend", resends,
			)
			if resends > d.config.MaxBlockResends {
				d.cancel()
				return nil, &ResendLimitError{Block: blocks, Resends: resends - 1}
			}
			if _, err := d.exec(request{line: protocol.Resend, lines: 0}); err != nil {
				d.cancel()
				return nil, fmt.Errorf("request resend of block %d: %w", blocks, err)
			}
		}
		block = block[:0]
	}

	d.logDebug("block transfer complete", "bytes", len(data), "blocks", blocks, "resends", totalResends)
	return data, nil
}
