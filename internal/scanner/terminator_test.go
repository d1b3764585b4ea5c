package scanner

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindCRLFCRLF(t *testing.T) {
	t.Run("found whole", func(t *testing.T) {
		data := []byte("GET / HTTP/1.1\r\nHost: x\r\n\r\nbody")
		at, past, _, found := FindCRLFCRLF(data, 0)
		require.True(t, found)
		require.Equal(t, "GET / HTTP/1.1\r\nHost: x", string(data[:at]))
		require.Equal(t, "body", string(data[past:]))
	})

	t.Run("not yet present", func(t *testing.T) {
		data := []byte("GET / HTTP/1.1\r\nHost: x\r\n")
		_, _, next, found := FindCRLFCRLF(data, 0)
		require.False(t, found)
		require.LessOrEqual(t, int(next), len(data))
	})

	t.Run("resumed scan catches a split terminator", func(t *testing.T) {
		first := []byte("GET / HTTP/1.1\r\nHost: x\r\n\r")
		_, _, skip, found := FindCRLFCRLF(first, 0)
		require.False(t, found)

		grown := append(first, '\n')
		at, past, _, found := FindCRLFCRLF(grown, skip)
		require.True(t, found)
		require.Equal(t, len(grown), past)
		require.Equal(t, "GET / HTTP/1.1\r\nHost: x", string(grown[:at]))
	})

	t.Run("skip never rescans a known-clean prefix", func(t *testing.T) {
		// a terminator planted only within the already-skipped prefix must
		// not be (re)discovered once skip has moved past it
		data := []byte("\r\n\r\nGET / HTTP/1.1\r\nHost: x\r\n\r\n")
		_, past1, _, found1 := FindCRLFCRLF(data, 0)
		require.True(t, found1)
		require.Equal(t, 4, past1)

		at2, _, _, found2 := FindCRLFCRLF(data, 4)
		require.True(t, found2)
		require.Equal(t, len(data)-4, at2)
	})
}

func TestFindCRLF(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		at, past, _, found := FindCRLF([]byte("abc\r\ndef"), 0)
		require.True(t, found)
		require.Equal(t, 3, at)
		require.Equal(t, 5, past)
	})

	t.Run("not found", func(t *testing.T) {
		_, _, _, found := FindCRLF([]byte("abcdef"), 0)
		require.False(t, found)
	})
}
