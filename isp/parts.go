package isp

import "fmt"

// partNames maps part identification words to part names for the LPC23xx
// family.
var partNames = map[uint32]string{
	0x1600F701: "LPC2361",
	0x1600FF22: "LPC2362",
	0x1600F902: "LPC2364",
	0x1600E823: "LPC2365",
	0x1600F923: "LPC2366",
	0x1600E825: "LPC2367",
	0x1600F925: "LPC2368",
	0x1700E825: "LPC2377",
	0x1700FD25: "LPC2378",
	0x1700FF35: "LPC2387",
	0x1800F935: "LPC2387 (older)",
	0x1800FF35: "LPC2388",
}

// PartName maps a part identification word to its part name. Unknown
// identifiers yield "UNKNOWN (0x...)" rather than an error.
func PartName(id uint32) string {
	if name, ok := partNames[id]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN (0x%08X)", id)
}
