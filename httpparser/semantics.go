package httpparser

import (
	"strings"

	"github.com/indigo-web/utils/uf"

	"github.com/scottschurr/Beast/internal/scanner"
)

// applyFieldSemantics inspects a header field as it is parsed and
// updates the framing state it bears on: Content-Length,
// Transfer-Encoding, Upgrade, Connection and Proxy-Connection. Every
// other field passes straight through to Callbacks.OnField untouched.
//
// Grounded on the teacher's header-key switch-on-length dispatch
// (internal/protocol/http1/parser.go's headerKey/headerValue labels),
// narrowed to the stricter conflict rules this parser enforces: a
// second Content-Length, or any Transfer-Encoding once a
// Content-Length has been seen, is rejected outright rather than
// silently preferring the latest value.
func (p *Parser) applyFieldSemantics(name, value []byte) error {
	switch len(name) {
	case 10:
		if equalFoldASCII(name, "Connection") {
			p.f |= flagConnectionSeen
		}
	case 14:
		if equalFoldASCII(name, "Content-Length") {
			return p.applyContentLength(value)
		}
	case 16:
		if equalFoldASCII(name, "Proxy-Connection") {
			p.f |= flagProxyConnectionSeen
		}
	case 17:
		if equalFoldASCII(name, "Transfer-Encoding") {
			return p.applyTransferEncoding(value)
		}
	case 7:
		if equalFoldASCII(name, "Upgrade") {
			p.f |= flagUpgrade
		}
	}

	return nil
}

func (p *Parser) applyContentLength(value []byte) error {
	if p.f.has(flagTransferEncodingSeen) {
		return ErrBadContentLength
	}

	if p.f.has(flagContentLengthSeen) {
		return ErrBadContentLength
	}

	n, ok := scanner.ParseDecimalUint64(value)
	if !ok {
		return ErrBadContentLength
	}

	p.f |= flagContentLengthSeen
	p.length = n

	return nil
}

func (p *Parser) applyTransferEncoding(value []byte) error {
	if p.f.has(flagContentLengthSeen) || p.f.has(flagTransferEncodingSeen) {
		return ErrBadTransferEncoding
	}

	p.f |= flagTransferEncodingSeen

	var toks []string
	p.encodings, toks = splitTokens(p.encodings, uf.B2S(value))

	if len(toks) == 0 {
		return ErrBadTransferEncoding
	}

	last := toks[len(toks)-1]

	for _, tok := range toks[:len(toks)-1] {
		if tok == "chunked" {
			// chunked anywhere but last leaves no way to know where the
			// message actually ends — the request-smuggling-relevant
			// case this parser rejects outright rather than guessing.
			return ErrBadTransferEncoding
		}
	}

	if last != "chunked" {
		// Any coding other than chunked as the final one leaves the
		// message framed only by EOF (Non-goals: this parser does not
		// implement gzip/deflate/compress itself).
		return nil
	}

	p.f |= flagChunked
	p.length = 0

	return nil
}

// splitTokens splits a comma-separated Transfer-Encoding field value
// into its coding tokens, trimming OWS and any ";parameter" qualifier
// from each, and discarding "identity" as a no-op coding. Grounded on
// the teacher's splitTokens/trimQualifier/trimSpaces helpers in
// internal/protocol/http1/parser.go, reused near-verbatim.
func splitTokens(buf []string, value string) (alteredBuf, toks []string) {
	offset := len(buf)

	for len(value) > 0 {
		var token string

		comma := strings.IndexByte(value, ',')
		if comma == -1 {
			token, value = value, ""
		} else {
			token, value = value[:comma], value[comma+1:]
		}

		token = strings.TrimSpace(trimQualifier(token))
		if len(token) == 0 {
			continue
		}

		if strings.EqualFold(token, "identity") {
			continue
		}

		buf = append(buf, token)
	}

	return buf, buf[offset:]
}

func trimQualifier(s string) string {
	if q := strings.IndexByte(s, ';'); q != -1 {
		return s[:q]
	}

	return s
}
