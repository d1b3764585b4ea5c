package httpparser

import (
	"github.com/indigo-web/utils/uf"

	"github.com/scottschurr/Beast/internal/scanner"
)

// parseChunked drives the chunked transfer-coding decoder. It is the
// one part of this parser that genuinely streams across Write calls —
// grounded on the teacher's goto-label chunked state machine
// (internal/protocol/http1/chunked.go's eChunkLength/eChunkLengthCR/
// eChunkBody/eChunkBodyDone/eChunkBodyCRLF/eChunkTrailer... labels) —
// expressed here over the same skip/scratch/length fields the header
// phase uses, rather than a separate state enum.
//
// Body octets themselves are not consumed here: once a chunk's size
// line has been parsed, the driver pulls exactly that many octets via
// WriteBody (see body.go), the same split used for Content-Length
// framing.
func (p *Parser) parseChunked(data []byte) (int, error) {
	if p.f.has(flagSawFinalChunk) {
		return p.parseTrailer(data)
	}

	if p.f.has(flagExpectTrailingCRLF) {
		return p.parseChunkGap(data)
	}

	return p.parseChunkSize(data)
}

// parseChunkGap consumes the bare CRLF that follows a chunk's data,
// before the next chunk-size line.
func (p *Parser) parseChunkGap(data []byte) (int, error) {
	at, past, nextSkip, found := scanner.FindCRLF(data, p.skip)
	if !found {
		p.skip = nextSkip
		return 0, ErrNeedMore
	}

	if at != 0 {
		return 0, ErrBadChunk
	}

	p.skip = 0
	p.f &^= flagExpectTrailingCRLF

	return past, nil
}

// parseChunkSize parses a complete chunk-size line: 1*HEXDIG
// [ chunk-ext ] CRLF. Because the line is short and the terminator
// search already guarantees it is complete once found, the hex value
// and extension text are decoded in one pass rather than digit by
// digit across calls.
func (p *Parser) parseChunkSize(data []byte) (int, error) {
	at, past, nextSkip, found := scanner.FindCRLF(data, p.skip)
	if !found {
		p.skip = nextSkip
		return 0, ErrNeedMore
	}

	line := data[:at]
	p.skip = 0

	hex := line
	var ext []byte
	if semi := indexByte(line, ';'); semi != -1 {
		hex, ext = line[:semi], line[semi+1:]
	}

	if len(hex) == 0 || len(hex) > p.cfg.Chunked.MaxSizeHexDigits {
		return 0, ErrBadChunk
	}

	p.chunkHex.Reset()
	for _, c := range hex {
		if !p.chunkHex.Add(c) {
			return 0, ErrBadChunk
		}
	}

	if len(ext) > p.cfg.Chunked.MaxExtensionSize {
		return 0, ErrBadChunk
	}
	for _, c := range ext {
		if !scanner.FieldVChar[c] {
			return 0, ErrBadChunk
		}
	}

	size := p.chunkHex.Value

	if size == 0 {
		if len(ext) > 0 {
			if err := p.cb.onChunk(0, uf.B2S(ext)); err != nil {
				return 0, err
			}
		}

		p.f |= flagSawFinalChunk
		p.scratch = uint32(past)
		p.skip = 0

		return p.parseTrailer(data)
	}

	// length is drained by WriteBody, which sets flagExpectTrailingCRLF
	// itself once it reaches zero — parseChunkSize must not set it here,
	// since the chunk's data octets have not been consumed yet.
	p.length = size

	if len(ext) > 0 {
		if err := p.cb.onChunk(size, uf.B2S(ext)); err != nil {
			return 0, err
		}
	}

	return past, nil
}

// parseTrailer handles everything from the final chunk's size line
// onward: the trailer field block (if any) and the CRLF terminating
// it, reusing the same CRLFCRLF scan and header-field parser as the
// main header block (RFC 7230 §4.1.2 — a trailer is grammatically
// just another header-field block).
func (p *Parser) parseTrailer(data []byte) (int, error) {
	rest := data[p.scratch:]

	if len(rest) >= 2 && rest[0] == '\r' && rest[1] == '\n' {
		// Empty trailer-part: the last-chunk line's own CRLF is
		// immediately followed by the terminating blank line, so there
		// is no CRLFCRLF pair to scan for — just the one.
		p.f |= flagMessageDone
		return int(p.scratch) + 2, nil
	}

	if len(rest) < 2 {
		return 0, ErrNeedMore
	}

	at, past, nextSkip, found := scanner.FindCRLFCRLF(rest, p.skip)
	if !found {
		p.skip = nextSkip
		return 0, ErrNeedMore
	}

	fieldsEnd := at + 2
	if err := p.parseFields(rest[:fieldsEnd], p.cfg.Chunked.MaxTrailerCount, false); err != nil {
		return 0, err
	}

	p.f |= flagMessageDone

	return int(p.scratch) + past, nil
}
