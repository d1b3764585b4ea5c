package httpparser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scottschurr/Beast/config"
	"github.com/scottschurr/Beast/httpparser"
)

func TestParser_ChunkExtensionForwarded(t *testing.T) {
	rec := &recorder{}
	p := httpparser.New(httpparser.Response, rec.callbacks(), config.Default())

	raw := "HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n" +
		"4;foo=bar\r\ndata\r\n" +
		"0\r\n\r\n"

	rest := feedHeader(t, p, []byte(raw), 1024)
	body := drainChunked(t, p, rest)

	// the final chunk carries no extension, so only the first is
	// reported through OnChunk.
	require.Len(t, rec.chunks, 1)
	require.Equal(t, "foo=bar", rec.chunks[0].ext)
	require.Equal(t, "data", string(body.data))
}

func TestParser_ChunkSizeTooManyHexDigitsRejected(t *testing.T) {
	rec := &recorder{}
	cfg := config.Default()
	cfg.Chunked.MaxSizeHexDigits = 4
	p := httpparser.New(httpparser.Response, rec.callbacks(), cfg)

	raw := "HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n" + "000000001\r\n"
	rest := feedHeader(t, p, []byte(raw), 1024)

	_, err := p.Write(rest)
	require.ErrorIs(t, err, httpparser.ErrBadChunk)
}

func TestParser_ChunkSizeInvalidHexDigitRejected(t *testing.T) {
	rec := &recorder{}
	p := httpparser.New(httpparser.Response, rec.callbacks(), config.Default())

	raw := "HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n" + "xyz\r\n"
	rest := feedHeader(t, p, []byte(raw), 1024)

	_, err := p.Write(rest)
	require.ErrorIs(t, err, httpparser.ErrBadChunk)
}

func TestParser_ChunkGapMissingCRLFRejected(t *testing.T) {
	rec := &recorder{}
	p := httpparser.New(httpparser.Response, rec.callbacks(), config.Default())

	raw := "HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n" +
		"3\r\nabcXX\r\n0\r\n\r\n"

	rest := feedHeader(t, p, []byte(raw), 1024)
	reader := &sliceReader{data: rest}
	body := &growBuffer{}

	// first parse the chunk-size line ("3\r\n")
	n, err := p.Write(reader.data)
	require.NoError(t, err)
	reader.data = reader.data[n:]

	// drain the 3-byte chunk body ("abc"); the two stray bytes ("XX")
	// that follow are left for the gap scan to reject, not consumed as
	// body.
	_, err = p.WriteBody(reader, body)
	require.NoError(t, err)
	require.Equal(t, "abc", string(body.data))

	_, err = p.Write(reader.data)
	require.ErrorIs(t, err, httpparser.ErrBadChunk)
}

func TestParser_ChunkExtensionTooLongRejected(t *testing.T) {
	rec := &recorder{}
	cfg := config.Default()
	cfg.Chunked.MaxExtensionSize = 4
	p := httpparser.New(httpparser.Response, rec.callbacks(), cfg)

	raw := "HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n" +
		"0;verylongextension\r\n\r\n"

	rest := feedHeader(t, p, []byte(raw), 1024)

	_, err := p.Write(rest)
	require.ErrorIs(t, err, httpparser.ErrBadChunk)
}

func TestParser_ChunkTrailerFieldCountLimit(t *testing.T) {
	rec := &recorder{}
	cfg := config.Default()
	cfg.Chunked.MaxTrailerCount = 1
	p := httpparser.New(httpparser.Response, rec.callbacks(), cfg)

	raw := "HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n" +
		"0\r\n" +
		"X-One: a\r\n" +
		"X-Two: b\r\n" +
		"\r\n"

	rest := feedHeader(t, p, []byte(raw), 1024)

	_, err := p.Write(rest)
	require.ErrorIs(t, err, httpparser.ErrBadField)
}
