package utils

import (
	"os"
	"unsafe"
)

///////////////////////////////////////////////////////////////////////////////
// Conversion Utilities — Zero-Alloc Casts
///////////////////////////////////////////////////////////////////////////////

// B2s converts a []byte to a string **without** allocation.
// ⚠️ Caller must ensure the input slice remains valid and unchanged.
// Used for human-readable print paths.
//
//go:nosplit
//go:inline
func B2s(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

// S2b converts a string to a []byte **without** allocation.
// ⚠️ The returned slice must never be mutated.
//
//go:nosplit
//go:inline
func S2b(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

///////////////////////////////////////////////////////////////////////////////
// Append Formatters — No fmt, No Intermediate Strings
///////////////////////////////////////////////////////////////////////////////

// Utoa appends the decimal form of u to dst and returns the extended slice.
//
//go:nosplit
//go:inline
func Utoa(dst []byte, u uint64) []byte {
	if u == 0 {
		return append(dst, '0')
	}
	var tmp [20]byte
	i := len(tmp)
	for u > 0 {
		i--
		tmp[i] = byte('0' + u%10)
		u /= 10
	}
	return append(dst, tmp[i:]...)
}

// Itoa appends the decimal form of n to dst and returns the extended slice.
//
//go:nosplit
//go:inline
func Itoa(dst []byte, n int64) []byte {
	if n < 0 {
		dst = append(dst, '-')
		// Negating math.MinInt64 overflows; the cast below handles it.
		return Utoa(dst, uint64(-(n+1))+1)
	}
	return Utoa(dst, uint64(n))
}

// Ftoa3 appends n as a fixed three-decimal value, treating n as thousandths.
// Used for millisecond and nanos-per-op columns in the report.
//
//go:nosplit
//go:inline
func Ftoa3(dst []byte, thousandths int64) []byte {
	neg := thousandths < 0
	var u uint64
	if neg {
		dst = append(dst, '-')
		u = uint64(-(thousandths + 1)) + 1
	} else {
		u = uint64(thousandths)
	}
	dst = Utoa(dst, u/1000)
	dst = append(dst, '.')
	frac := u % 1000
	dst = append(dst, byte('0'+frac/100), byte('0'+frac/10%10), byte('0'+frac%10))
	return dst
}

// PadLeft appends s to dst left-padded with spaces to at least width bytes.
func PadLeft(dst []byte, s string, width int) []byte {
	for i := len(s); i < width; i++ {
		dst = append(dst, ' ')
	}
	return append(dst, s...)
}

// Hex appends the lowercase hex form of b to dst.
func Hex(dst []byte, b []byte) []byte {
	const digits = "0123456789abcdef"
	for _, c := range b {
		dst = append(dst, digits[c>>4], digits[c&0xf])
	}
	return dst
}

///////////////////////////////////////////////////////////////////////////////
// Console Writers — Direct FD Writes, No log Package
///////////////////////////////////////////////////////////////////////////////

// PrintWarning writes msg to stderr. Diagnostics and phase notices go here so
// stdout stays reserved for the report itself.
func PrintWarning(msg string) {
	os.Stderr.WriteString(msg)
}

// PrintInfo writes msg to stdout. Report lines only.
func PrintInfo(msg string) {
	os.Stdout.WriteString(msg)
}

///////////////////////////////////////////////////////////////////////////////
// Hash & Mixers — Checksum Folding
///////////////////////////////////////////////////////////////////////////////

// Mix64 applies a Murmur3-style avalanche to a 64-bit value.
// Used to fold scenario checksums so layout divergence cannot cancel out.
//
//go:nosplit
//go:inline
func Mix64(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}
