package httpparser

import (
	"github.com/indigo-web/utils/uf"

	"github.com/scottschurr/Beast/internal/scanner"
)

// parseRequestLine parses a complete request-line (without its
// trailing CRLF): method SP request-target SP HTTP-version.
//
// The request-target is taken as an opaque tchar/pathchar run and
// handed to the caller unmodified: this parser performs no
// percent-decoding, no normalization, and no interpretation of its
// form (origin, absolute, authority or asterisk) — that belongs to
// whatever layer routes the request.
func (p *Parser) parseRequestLine(line []byte) error {
	sp1 := indexByte(line, ' ')
	if sp1 <= 0 {
		return ErrBadMethod
	}

	method := line[:sp1]
	for _, c := range method {
		if !scanner.Token[c] {
			return ErrBadMethod
		}
	}

	rest := line[sp1+1:]
	sp2 := indexByte(rest, ' ')
	if sp2 <= 0 {
		return ErrBadPath
	}

	target := rest[:sp2]
	for _, c := range target {
		if !scanner.PathChar[c] {
			return ErrBadPath
		}
	}

	version, err := parseHTTPVersion(rest[sp2+1:])
	if err != nil {
		return err
	}

	return p.cb.onRequest(uf.B2S(method), uf.B2S(target), version)
}

// indexByte is a tiny local byte search shared by the start-line,
// header-field and chunk-size parsers, kept instead of importing bytes.
func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}

	return -1
}

// parseHTTPVersion parses "HTTP/"DIGIT"."DIGIT, returning
// 10*major+minor, as found in both the request-line and status-line.
func parseHTTPVersion(b []byte) (int, error) {
	const prefix = "HTTP/"

	if len(b) != len(prefix)+3 {
		return 0, ErrBadVersion
	}

	for i := 0; i < len(prefix); i++ {
		if b[i] != prefix[i] {
			return 0, ErrBadVersion
		}
	}

	major, dot, minor := b[len(prefix)], b[len(prefix)+1], b[len(prefix)+2]
	if major < '0' || major > '9' || dot != '.' || minor < '0' || minor > '9' {
		return 0, ErrBadVersion
	}

	return int(major-'0')*10 + int(minor-'0'), nil
}
