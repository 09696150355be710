package protocol

// BlockChecksum computes the checksum the target declares after each data
// block: the arithmetic sum of the decoded bytes, modulo 2^32. It is sent on
// the wire as a bare ASCII decimal line.
func BlockChecksum(data []byte) uint32 {
	var sum uint32
	for _, b := range data {
		sum += uint32(b)
	}
	return sum
}
