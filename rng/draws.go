package rng

import "time"

// MaxStringLen bounds the length of drawn strings.
const MaxStringLen = 16

// MaxSeqLen bounds the length of drawn slices and maps.
const MaxSeqLen = 16

const charsetPrintable = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789" +
	" !\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Bool draws a boolean with equal probability for each value.
func Bool(r Source) bool {
	return r.Uint64()&1 == 1
}

// Int draws an int from the full range of the type.
func Int(r Source) int {
	return int(r.Uint64())
}

// Int8 draws an int8 from the full range of the type.
func Int8(r Source) int8 {
	return int8(r.Uint64())
}

// Int16 draws an int16 from the full range of the type.
func Int16(r Source) int16 {
	return int16(r.Uint64())
}

// Int32 draws an int32 from the full range of the type.
func Int32(r Source) int32 {
	return int32(r.Uint64())
}

// Int64 draws an int64 from the full range of the type.
func Int64(r Source) int64 {
	return int64(r.Uint64())
}

// Uint draws a uint from the full range of the type.
func Uint(r Source) uint {
	return uint(r.Uint64())
}

// Uint8 draws a uint8 from the full range of the type.
func Uint8(r Source) uint8 {
	return uint8(r.Uint64())
}

// Uint16 draws a uint16 from the full range of the type.
func Uint16(r Source) uint16 {
	return uint16(r.Uint64())
}

// Uint32 draws a uint32 from the full range of the type.
func Uint32(r Source) uint32 {
	return uint32(r.Uint64())
}

// Uint64 draws a uint64.
func Uint64(r Source) uint64 {
	return r.Uint64()
}

// Uintptr draws a uintptr from the full range of the type.
func Uintptr(r Source) uintptr {
	return uintptr(r.Uint64())
}

// Float64 draws a float64 uniformly from [0.0, 1.0).
func Float64(r Source) float64 {
	return float64(r.Uint64()>>11) / (1 << 53)
}

// Float32 draws a float32 uniformly from [0.0, 1.0).
func Float32(r Source) float32 {
	return float32(r.Uint64()>>40) / (1 << 24)
}

// Rune draws a Unicode scalar value, rejecting the surrogate range.
func Rune(r Source) rune {
	for {
		v := Uint64n(r, 0x110000)
		if v < 0xD800 || v > 0xDFFF {
			return rune(v)
		}
	}
}

// String draws a printable ASCII string of length [0, MaxStringLen].
func String(r Source) string {
	n := IntN(r, MaxStringLen+1)
	if n == 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = charsetPrintable[IntN(r, len(charsetPrintable))]
	}
	return string(b)
}

// Bytes draws a byte slice of length [0, MaxSeqLen].
func Bytes(r Source) []byte {
	n := IntN(r, MaxSeqLen+1)
	if n == 0 {
		return nil
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(r.Uint64())
	}
	return b
}

// Duration draws a time.Duration from the full int64 range.
func Duration(r Source) time.Duration {
	return time.Duration(r.Uint64())
}
