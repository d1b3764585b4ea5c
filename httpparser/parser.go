// Package httpparser implements an incremental HTTP/1.x message parser:
// a single state machine, bound at construction to a Kind (request or
// response) and a set of Callbacks, that is fed octets as they arrive
// from a transport and reports progress, a need for more input, or a
// protocol error. It never buffers a whole message, never blocks, and
// never rescans a prefix it has already classified as not containing
// the terminator it was searching for.
//
// The driver owns all I/O and all suspension: read some bytes, call
// Write, inspect the result, repeat. See SPEC_FULL.md for the full
// design this package implements.
package httpparser

import (
	"math"

	"github.com/indigo-web/utils/buffer"

	"github.com/scottschurr/Beast/config"
	"github.com/scottschurr/Beast/internal/scanner"
)

// flags is the bitset of what the parser has observed so far. Bits are
// only ever set, except flagExpectTrailingCRLF, which is cleared once the
// CRLF following a chunk's data has been consumed.
type flags uint16

const (
	flagHeaderDone flags = 1 << iota
	flagContentLengthSeen
	flagChunked
	flagUpgrade
	flagMessageDone
	flagExpectTrailingCRLF
	flagSawFinalChunk
	flagSkipBody
	flagTransferEncodingSeen
	flagConnectionSeen
	flagProxyConnectionSeen
)

func (f flags) has(bit flags) bool { return f&bit != 0 }

// unknownLength is the sentinel "len" value meaning "unknown, until EOF".
const unknownLength = math.MaxUint64

// remainUnknownHint is returned by Remain when neither Content-Length nor
// chunked framing applies; it bounds a single read, it is not a real
// remaining length (spec.md §6, §9 "Open questions").
const remainUnknownHint = 65536

// Parser is the incremental HTTP/1.x engine. It is bound to exactly one
// message for its lifetime: construct one, drive it with Write/WriteEOF
// until Done() or an error, then discard it.
type Parser struct {
	kind Kind
	cb   Callbacks
	cfg  config.Config

	f flags

	// length is "len" in the specification's data model: remaining body
	// octets (Content-Length framing) or remaining octets in the current
	// chunk (chunked framing).
	length uint64
	// skip is the resumable scan offset: leading bytes of the current
	// view already shown not to contain the terminator being sought.
	skip uint32
	// scratch holds, during final-chunk parsing, the offset of the CRLF
	// ending the size line, so trailer scanning can resume from it.
	scratch uint32

	// scratchBuf flattens multi-segment input into one contiguous view.
	// Grown on demand, never shrunk mid-parse.
	scratchBuf *buffer.Buffer[byte]

	// encodings backs the token slice returned by splitTokens for
	// Transfer-Encoding, reused across calls the way the teacher reuses
	// p.encodings across requests.
	encodings []string

	// chunkHex accumulates the hex digits of a chunk-size line. It is
	// reset and refilled in a single call once the whole line (through
	// its CRLF) is present.
	chunkHex scanner.HexAccumulator

	// err latches the parser in a terminal state once set.
	err error

	log Logger
}

// scratchBufMax is the ceiling handed to buffer.Buffer: effectively
// unbounded, since the parser has no "line too long" error of its own
// to report (config.Headers.MaxLineSize only sizes the initial
// preallocation). A genuinely exhausted host runs out of memory before
// this is ever reached.
const scratchBufMax = math.MaxInt32

// New constructs a Parser for the given Kind, bound to cb. A zero Config
// is replaced with config.Default().
func New(kind Kind, cb Callbacks, cfg config.Config) *Parser {
	if cfg == (config.Config{}) {
		cfg = config.Default()
	}

	buf := buffer.New[byte](cfg.Headers.MaxLineSize, scratchBufMax)

	return &Parser{
		kind:       kind,
		cb:         cb,
		cfg:        cfg,
		length:     unknownLength,
		scratchBuf: &buf,
		log:        discardLogger{},
	}
}

// SetLogger installs l as the parser's diagnostic sink, used to log
// the reason a message was rejected. A freshly constructed Parser
// discards log output until this is called.
func (p *Parser) SetLogger(l Logger) {
	if l != nil {
		p.log = l
	}
}

// Done reports whether a complete message has been received.
func (p *Parser) Done() bool { return p.f.has(flagMessageDone) }

// HaveHeader reports whether the header block (start-line and fields)
// has been fully parsed.
func (p *Parser) HaveHeader() bool { return p.f.has(flagHeaderDone) }

// IsChunked reports whether Transfer-Encoding named chunked as its final
// coding. Undefined before HaveHeader.
func (p *Parser) IsChunked() bool { return p.f.has(flagChunked) }

// ContentLength returns the Content-Length octets not yet drained by
// WriteBody (the declared value until draining begins) and whether a
// Content-Length was present. Undefined before HaveHeader.
func (p *Parser) ContentLength() (uint64, bool) {
	if !p.f.has(flagContentLengthSeen) {
		return 0, false
	}

	return p.length, true
}

// HasUpgrade reports whether an Upgrade header field was present. Its
// value is not interpreted by this parser (spec.md §4.4, §1 Non-goals).
func (p *Parser) HasUpgrade() bool { return p.f.has(flagUpgrade) }

// HasConnection reports whether a Connection header field was present.
// Its value is not interpreted beyond this — the caller decides what,
// if anything, "close" or a connection-option token means to it.
func (p *Parser) HasConnection() bool { return p.f.has(flagConnectionSeen) }

// HasProxyConnection reports whether a Proxy-Connection header field
// was present. Same caveat as HasConnection.
func (p *Parser) HasProxyConnection() bool { return p.f.has(flagProxyConnectionSeen) }

// NeedsEOF reports whether the message's end can only be determined by
// transport closure (no Content-Length, no chunked framing).
func (p *Parser) NeedsEOF() bool {
	return !p.f.has(flagContentLengthSeen) && !p.f.has(flagChunked)
}

// Remain returns the number of octets remaining in the current chunk or
// declared Content-Length. When neither framing signal applies, it
// returns a caller-visible hint bounding a single read, not a real
// length (spec.md §6, §9).
func (p *Parser) Remain() uint64 {
	if p.f.has(flagContentLengthSeen) || p.f.has(flagChunked) {
		return p.length
	}

	return remainUnknownHint
}

// SkipBody tells the parser that this message carries no body
// regardless of any Content-Length or Transfer-Encoding framing it
// observes — the RFC 7230 §3.3.3 rule for responses to HEAD, and for
// 1xx/204/304 responses. Hosts call it from within OnRequest/OnResponse,
// before the header-field block (and thus HaveHeader) has finished
// parsing; calling it afterwards has no effect.
func (p *Parser) SkipBody() { p.f |= flagSkipBody }

// Write advances parsing by consuming octets from buffers. When buffers
// holds more than one segment, they are first flattened into a single
// contiguous view (see flatten.go); a single segment is parsed in place.
// It returns the number of bytes consumed; a return of (0, ErrNeedMore)
// means the view did not yet contain a complete structural unit. Once an
// error has been reported, every subsequent call returns (0, that same
// error) without examining buffers.
func (p *Parser) Write(buffers ...[]byte) (consumed int, err error) {
	if p.err != nil {
		return 0, p.err
	}

	if p.f.has(flagMessageDone) {
		return 0, nil
	}

	data := p.flatten(buffers)

	n, err := p.write(data)
	if err != nil && err != ErrNeedMore {
		p.err = err
		p.log.Printf("httpparser: rejecting %s message: %s", p.kind, err)
	}

	return n, err
}

func (p *Parser) write(data []byte) (int, error) {
	if !p.f.has(flagHeaderDone) {
		return p.parseHeader(data)
	}

	if p.f.has(flagChunked) {
		if p.length > 0 {
			// An open chunk's data octets are pending; WriteBody drains
			// them and flips flagExpectTrailingCRLF once it reaches
			// zero. Parsing framing structure here would misread body
			// bytes as the next chunk-size line or gap.
			return 0, nil
		}

		return p.parseChunked(data)
	}

	// Content-Length or EOF framing: header-block octets past the
	// terminator are body, not something this layer consumes — the
	// driver pulls them out via WriteBody instead.
	return 0, nil
}

// WriteEOF announces transport closure. If the parser has a header but
// no explicit framing decided the message's end, EOF legitimately
// terminates the message. If a framing signal is in effect and the
// message was not yet complete, that is a premature close.
func (p *Parser) WriteEOF() error {
	if p.err != nil {
		return p.err
	}

	if p.f.has(flagMessageDone) {
		return nil
	}

	if p.f.has(flagHeaderDone) && (p.f.has(flagContentLengthSeen) || p.f.has(flagChunked)) {
		p.err = ErrShortRead
		return p.err
	}

	p.f |= flagMessageDone

	return nil
}
