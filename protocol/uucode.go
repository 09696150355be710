package protocol

import "fmt"

// DecodeLine converts one encoded data block line into its raw bytes.
//
// The first character declares the payload length (biased by LengthBias).
// The boot ROM pads the final 3-byte group by repeating the last data byte,
// so the declared length is rounded up to the next multiple of 3 before the
// standard 6-bit decode is applied; the result is then truncated back to the
// declared length, dropping the padding.
//
// The line may carry its terminator; it is ignored. Both the space and
// backtick encodings of the zero value are accepted.
func DecodeLine(line []byte) ([]byte, error) {
	raw := trimEOL(line)
	if len(raw) == 0 {
		return nil, &MalformedLineError{Line: string(line), Reason: "empty data line"}
	}

	length := int(raw[0]) - LengthBias
	if length < 0 || length > MaxLineBytes {
		return nil, &MalformedLineError{
			Line:   string(line),
			Reason: fmt.Sprintf("length character 0x%02X out of range", raw[0]),
		}
	}

	// Round the declared length up to a whole number of 3-byte groups so
	// the repeated-last-byte padding decodes cleanly.
	padded := length
	if rem := length % encGroupBytes; rem != 0 {
		padded += encGroupBytes - rem
	}

	wantChars := padded / encGroupBytes * encGroupChars
	data := raw[1:]
	if len(data) < wantChars {
		return nil, &MalformedLineError{
			Line:   string(line),
			Reason: fmt.Sprintf("declared %d bytes but line carries only %d characters", length, len(data)),
		}
	}

	decoded := make([]byte, 0, padded)
	for i := 0; i < wantChars; i += encGroupChars {
		var g [encGroupChars]byte
		for j := 0; j < encGroupChars; j++ {
			c := data[i+j]
			if c < LengthBias || c > LengthBias+0x40 {
				return nil, &MalformedLineError{
					Line:   string(line),
					Reason: fmt.Sprintf("character 0x%02X outside encoding alphabet", c),
				}
			}
			g[j] = (c - LengthBias) & 0x3F
		}
		decoded = append(decoded,
			g[0]<<2|g[1]>>4,
			g[1]<<4|g[2]>>2,
			g[2]<<6|g[3],
		)
	}

	return decoded[:length], nil
}

// EncodeLine converts up to MaxLineBytes raw bytes into one encoded data
// block line, without terminator. The final group is zero padded; a decoder
// drops the padding via the declared length.
func EncodeLine(data []byte) ([]byte, error) {
	if len(data) > MaxLineBytes {
		return nil, fmt.Errorf("line payload %d exceeds maximum %d bytes", len(data), MaxLineBytes)
	}

	padded := data
	if rem := len(data) % encGroupBytes; rem != 0 {
		padded = make([]byte, len(data)+encGroupBytes-rem)
		copy(padded, data)
	}

	line := make([]byte, 0, 1+len(padded)/encGroupBytes*encGroupChars)
	line = append(line, byte(len(data))+LengthBias)
	for i := 0; i < len(padded); i += encGroupBytes {
		b0, b1, b2 := padded[i], padded[i+1], padded[i+2]
		line = append(line,
			(b0>>2)+LengthBias,
			((b0&0x03)<<4|b1>>4)+LengthBias,
			((b1&0x0F)<<2|b2>>6)+LengthBias,
			(b2&0x3F)+LengthBias,
		)
	}

	return line, nil
}

// trimEOL strips a trailing CR, LF or CR LF pair.
func trimEOL(line []byte) []byte {
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line
}
