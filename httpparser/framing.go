package httpparser

import "github.com/scottschurr/Beast/internal/scanner"

// parseHeader implements the two-phase header algorithm: first a
// resumable scan for the CRLFCRLF terminator over the accumulated
// view (data grows across calls; skip never re-examines a prefix
// already shown not to contain it), then — only once the terminator
// has been found, so the whole header block is known-complete and
// contiguous — a single, non-suspending pass of the start-line and
// header-field grammar over it.
//
// This is a deliberate departure from token-by-token streaming: once
// skip has done its job, nothing below this function needs to be
// resumable at all.
func (p *Parser) parseHeader(data []byte) (int, error) {
	at, past, nextSkip, found := scanner.FindCRLFCRLF(data, p.skip)
	if !found {
		p.skip = nextSkip
		return 0, ErrNeedMore
	}

	p.skip = 0

	// fieldsEnd includes the terminating CRLF of the last header field
	// (the first CRLF of the matched CRLFCRLF); the blank line itself
	// (the second CRLF) is not part of the grammar below.
	fieldsEnd := at + 2

	startAt, startPast, _, ok := scanner.FindCRLF(data[:fieldsEnd], 0)
	if !ok {
		return 0, ErrBadField
	}

	startLine := data[:startAt]
	fieldsBlock := data[startPast:fieldsEnd]

	var err error
	switch p.kind {
	case Request:
		err = p.parseRequestLine(startLine)
	case Response:
		err = p.parseStatusLine(startLine)
	default:
		err = ErrBadVersion
	}
	if err != nil {
		return 0, err
	}

	if err := p.parseFields(fieldsBlock, p.cfg.Headers.MaxCount, true); err != nil {
		return 0, err
	}

	p.f |= flagHeaderDone

	if p.f.has(flagSkipBody) {
		p.f |= flagMessageDone
	}

	// A Content-Length: 0 message carries no body octets at all, so
	// there is nothing left for WriteBody to drain — without this, its
	// own "nothing open to read" guard (framed && p.length == 0) would
	// return (0, nil) on every call and Done() would never become true.
	if p.f.has(flagContentLengthSeen) && p.length == 0 {
		p.f |= flagMessageDone
	}

	if err := p.cb.onHeader(); err != nil {
		return 0, err
	}

	return past, nil
}
