package httpparser

import (
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"

	"github.com/scottschurr/Beast/internal/scanner"
)

// parseFields walks a complete header-field block (every line, the last
// included, ends in its own CRLF; the blank line that terminates the
// block is not part of it — the caller has already located both ends)
// line by line, handling obs-fold continuations, trimming OWS
// from values, invoking OnField for each, and — when applySemantics is
// set — feeding Content-Length/Transfer-Encoding/Connection/Upgrade
// fields to the framing logic in semantics.go. An obs-folded value's
// internal CRLFs and continuation whitespace are preserved verbatim,
// not canonicalized to a single space — only the value's own leading
// and trailing OWS is trimmed. The same routine serves the main
// header-field block and a chunked trailer; a trailer never carries
// framing semantics of its own (RFC 7230 §4.1.2), so the caller passes
// applySemantics=false for it.
func (p *Parser) parseFields(block []byte, maxCount int, applySemantics bool) error {
	count := 0

	for len(block) > 0 {
		rem := block

		at, past, _, found := scanner.FindCRLF(block, 0)
		if !found {
			return ErrBadField
		}

		lineEnd := at
		block = block[past:]

		// obs-fold: a line beginning with SP/HTAB is a continuation of
		// the previous field's value, not a new field. The fold's CRLF
		// and the continuation's leading whitespace stay in the value
		// verbatim — rem is one contiguous span of the already-complete
		// header block, so extending lineEnd is all that is needed, no
		// reassembly buffer required.
		for len(block) > 0 && (block[0] == ' ' || block[0] == '\t') {
			at2, past2, _, found2 := scanner.FindCRLF(block, 0)
			if !found2 {
				return ErrBadField
			}

			lineEnd = (len(rem) - len(block)) + at2
			block = block[past2:]
		}

		line := rem[:lineEnd]

		count++
		if count > maxCount {
			return ErrBadField
		}

		colon := indexByte(line, ':')
		if colon <= 0 {
			return ErrBadField
		}

		name := line[:colon]
		for _, c := range name {
			if !scanner.Token[c] {
				return ErrBadField
			}
		}

		value := trimOWS(line[colon+1:])
		for _, c := range value {
			// '\r'/'\n' only ever appear here as an obs-fold's own
			// verbatim-preserved CRLF, never as a raw line break — any
			// other occurrence would already have ended the line in the
			// FindCRLF scan above.
			if !scanner.FieldVChar[c] && c != ' ' && c != '\t' && c != '\r' && c != '\n' {
				return ErrBadValue
			}
		}

		if applySemantics {
			if err := p.applyFieldSemantics(name, value); err != nil {
				return err
			}
		}

		if err := p.cb.onField(uf.B2S(name), uf.B2S(value)); err != nil {
			return err
		}
	}

	return nil
}

// trimOWS strips leading and trailing optional whitespace (SP/HTAB),
// per RFC 7230 §3.2's OWS production.
func trimOWS(b []byte) []byte {
	for len(b) > 0 && (b[0] == ' ' || b[0] == '\t') {
		b = b[1:]
	}

	for len(b) > 0 && (b[len(b)-1] == ' ' || b[len(b)-1] == '\t') {
		b = b[:len(b)-1]
	}

	return b
}

// equalFoldASCII reports whether name matches s ignoring ASCII case,
// the teacher's strcomp.EqualFold used throughout for header-name
// comparison instead of a strings.EqualFold + allocation round trip.
func equalFoldASCII(name []byte, s string) bool {
	return strcomp.EqualFold(uf.B2S(name), s)
}
