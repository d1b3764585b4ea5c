package scanner

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDecimalUint64(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		v, ok := ParseDecimalUint64([]byte("12345"))
		require.True(t, ok)
		require.EqualValues(t, 12345, v)
	})

	t.Run("empty", func(t *testing.T) {
		_, ok := ParseDecimalUint64(nil)
		require.False(t, ok)
	})

	t.Run("non-digit", func(t *testing.T) {
		_, ok := ParseDecimalUint64([]byte("12a45"))
		require.False(t, ok)
	})

	t.Run("overflow", func(t *testing.T) {
		_, ok := ParseDecimalUint64([]byte("99999999999999999999999999"))
		require.False(t, ok)
	})

	t.Run("exactly maxuint64", func(t *testing.T) {
		v, ok := ParseDecimalUint64([]byte("18446744073709551615"))
		require.True(t, ok)
		require.EqualValues(t, uint64(18446744073709551615), v)
	})

	t.Run("one past maxuint64", func(t *testing.T) {
		_, ok := ParseDecimalUint64([]byte("18446744073709551616"))
		require.False(t, ok)
	})
}

func TestHexAccumulator(t *testing.T) {
	t.Run("repeated leading zeros do not overflow", func(t *testing.T) {
		var h HexAccumulator
		for _, c := range "000a" {
			require.True(t, h.Add(byte(c)))
		}
		require.EqualValues(t, 0x0a, h.Value)
		require.Equal(t, 4, h.Digits())
	})

	t.Run("rejects non-hex byte", func(t *testing.T) {
		var h HexAccumulator
		require.False(t, h.Add('g'))
	})

	t.Run("detects overflow", func(t *testing.T) {
		var h HexAccumulator
		for _, c := range "ffffffffffffffff" {
			require.True(t, h.Add(byte(c)))
		}
		// one more hex digit must wrap the accumulator past 64 bits
		require.False(t, h.Add('f'))
	})

	t.Run("reset clears state", func(t *testing.T) {
		var h HexAccumulator
		h.Add('f')
		h.Reset()
		require.Zero(t, h.Value)
		require.Zero(t, h.Digits())
	})
}
