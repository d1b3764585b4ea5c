package httpparser

import (
	"github.com/indigo-web/utils/uf"

	"github.com/scottschurr/Beast/internal/scanner"
)

// parseStatusLine parses a complete status-line (without its trailing
// CRLF): HTTP-version SP 3DIGIT SP reason-phrase. Unlike the teacher's
// original request-only parser, a reason-phrase is permitted to be
// empty (RFC 7230 §3.1.2 allows it), but if present every octet must
// be a TEXT octet (no CTLs besides HTAB).
func (p *Parser) parseStatusLine(line []byte) error {
	sp1 := indexByte(line, ' ')
	if sp1 <= 0 {
		return ErrBadVersion
	}

	version, err := parseHTTPVersion(line[:sp1])
	if err != nil {
		return err
	}

	rest := line[sp1+1:]
	if len(rest) < 3 {
		return ErrBadStatus
	}

	d0, d1, d2 := rest[0], rest[1], rest[2]
	if d0 < '0' || d0 > '9' || d1 < '0' || d1 > '9' || d2 < '0' || d2 > '9' {
		return ErrBadStatus
	}

	status := int(d0-'0')*100 + int(d1-'0')*10 + int(d2-'0')

	var reason []byte
	switch {
	case len(rest) == 3:
		reason = rest[3:3]
	case rest[3] == ' ':
		reason = rest[4:]
	default:
		return ErrBadStatus
	}

	for _, c := range reason {
		if !scanner.Text[c] {
			return ErrBadReason
		}
	}

	return p.cb.onResponse(status, uf.B2S(reason), version)
}
