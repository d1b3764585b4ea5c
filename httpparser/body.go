package httpparser

// BodyReader is the transport-facing side of WriteBody: a source of
// already-buffered body octets, generalizing the teacher's
// tcp.Client.Read()/Unread() pairing (internal/protocol/http1/body.go)
// into a standalone collaborator instead of a concrete transport type.
type BodyReader interface {
	// Read returns the next available run of body octets. It must not
	// block waiting for more than the transport already has buffered.
	Read() ([]byte, error)
	// Unread returns octets WriteBody read but did not consume (because
	// they belong to the next chunk, or lie past Content-Length) so a
	// later Read sees them again first.
	Unread(extra []byte)
}

// DynamicBuffer is the destination side of WriteBody: a growable
// buffer filled in two steps so the caller controls allocation,
// mirroring the spec's Prepare/Commit reader contract rather than a
// plain io.Writer.
type DynamicBuffer interface {
	// Prepare returns a writable region of at least n bytes.
	Prepare(n int) []byte
	// Commit records that the first n bytes of the region returned by
	// the most recent Prepare now hold valid data.
	Commit(n int)
}

// WriteBody transfers at most Remain() body octets from r into buf: for
// Content-Length or chunked framing that is what remains of the body or
// chunk; for EOF framing it is the remainUnknownHint bound. Octets
// beyond that are handed back through r.Unread. It does not parse chunk-size lines or
// trailers — that is Write's job — only drains the octets of a chunk
// or a Content-Length body already known to be open.
func (p *Parser) WriteBody(r BodyReader, buf DynamicBuffer) (int, error) {
	if p.err != nil {
		return 0, p.err
	}

	if !p.f.has(flagHeaderDone) || p.f.has(flagMessageDone) {
		return 0, nil
	}

	framed := p.f.has(flagContentLengthSeen) || p.f.has(flagChunked)
	if framed && p.length == 0 {
		// Nothing open to read: chunked framing needs its next
		// size line parsed by Write first.
		return 0, nil
	}

	data, err := r.Read()
	if err != nil {
		return 0, err
	}

	want := p.Remain()
	take := uint64(len(data))
	if take > want {
		take = want
	}

	dst := buf.Prepare(int(take))
	copy(dst, data[:take])
	buf.Commit(int(take))

	if rest := data[take:]; len(rest) > 0 {
		r.Unread(rest)
	}

	if framed {
		p.length -= take

		if p.length == 0 {
			if p.f.has(flagChunked) {
				p.f |= flagExpectTrailingCRLF
			} else {
				p.f |= flagMessageDone
			}
		}
	}

	return int(take), nil
}
