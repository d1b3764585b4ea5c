package scanner

import "math/bits"

// ParseDecimalUint64 parses a complete, non-empty run of decimal
// digits (as a Content-Length value arrives, already known-complete
// once the header block has been located) into a uint64, rejecting
// overflow rather than wrapping.
func ParseDecimalUint64(data []byte) (value uint64, ok bool) {
	if len(data) == 0 {
		return 0, false
	}

	for _, c := range data {
		if c < '0' || c > '9' {
			return 0, false
		}

		hi, lo := bits.Mul64(value, 10)
		if hi != 0 {
			return 0, false
		}

		sum, carry := bits.Add64(lo, uint64(c-'0'), 0)
		if carry != 0 {
			return 0, false
		}

		value = sum
	}

	return value, true
}

// HexAccumulator accumulates a chunk-size's hex digits one at a time,
// rejecting 64-bit overflow. Reset between chunk-size lines.
type HexAccumulator struct {
	Value  uint64
	digits int
}

// Add folds one more hex digit into the accumulator. It returns false
// on a non-hex byte or on overflow.
func (h *HexAccumulator) Add(c byte) (ok bool) {
	if !IsHex(c) {
		return false
	}

	if h.digits > 0 && h.Value&0xF000000000000000 != 0 {
		// the top nibble is about to be shifted out; a left-shift by 4
		// bits from here always overflows, regardless of what the
		// resulting (truncated) value happens to look like.
		return false
	}

	next := (h.Value << 4) | uint64(Halfbyte(c))

	h.Value = next
	h.digits++

	return true
}

// Digits returns how many hex digits have been accumulated so far.
func (h *HexAccumulator) Digits() int { return h.digits }

// Reset clears the accumulator for the next chunk-size line.
func (h *HexAccumulator) Reset() {
	h.Value = 0
	h.digits = 0
}
