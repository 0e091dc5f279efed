// Package conv formats integers into caller-provided buffers without fmt or
// strconv, so error strings stay allocation-light on TinyGo targets.
package conv

const hexDigits = "0123456789ABCDEF"

// hexN writes the low n nibbles of v, uppercase and zero-padded, at the end
// of buf. It returns buf[:0] when buf is too short.
func hexN(buf []byte, v uint64, n int) []byte {
	if len(buf) < n {
		return buf[:0]
	}
	i := len(buf)
	for ; n > 0; n-- {
		i--
		buf[i] = hexDigits[v&0xF]
		v >>= 4
	}
	return buf[i:]
}

// Hex8 writes two hex digits (no 0x prefix).
func Hex8(buf []byte, b byte) []byte { return hexN(buf, uint64(b), 2) }

// Hex16 writes four hex digits, the width of a sensor register address.
func Hex16(buf []byte, n uint16) []byte { return hexN(buf, uint64(n), 4) }

// Hex32 writes eight hex digits.
func Hex32(buf []byte, n uint32) []byte { return hexN(buf, uint64(n), 8) }
