package httpparser

// Callbacks is the parser's binding to a caller-owned message: a thin
// indirection of function fields rather than an interface, so a host only
// wires the entries it actually cares about and the parser never needs to
// allocate anything polymorphic to reach it (see design note in
// SPEC_FULL.md §6 / §9).
//
// Every string handed to a callback (name, value, method, target, reason,
// extension text) is a zero-copy view over the parser's own buffers
// (built with github.com/indigo-web/utils/uf.B2S). It is valid only for
// the duration of the call: clone it if it must outlive the callback.
//
// Callbacks run synchronously, on the caller's goroutine, from inside
// Write. None of them may re-enter the parser that invoked them.
type Callbacks struct {
	// OnRequest is invoked once, for the Request kind, after the
	// request-line has been parsed. version is encoded as 10*major+minor.
	OnRequest func(method, target string, version int) error

	// OnResponse is invoked once, for the Response kind, after the
	// status-line has been parsed. version is encoded as 10*major+minor.
	OnResponse func(status int, reason string, version int) error

	// OnField is invoked once per header field, in wire order, and again
	// per trailer field after a chunked body's final chunk.
	OnField func(name, value string) error

	// OnHeader is invoked once, after the blank line terminating the
	// header-field block.
	OnHeader func() error

	// OnChunk is invoked once per chunk whose size-line carries a
	// chunk-extension, after that size-line has been parsed, with the
	// extension text forwarded verbatim and unparsed. A chunk (final or
	// not) with no extension is not reported through this callback at
	// all — extension-free chunks carry no information this callback
	// would add beyond the body octets WriteBody already delivers.
	// size==0 identifies the final chunk.
	OnChunk func(size uint64, extension string) error
}

func (cb Callbacks) onRequest(method, target string, version int) error {
	if cb.OnRequest == nil {
		return nil
	}

	return cb.OnRequest(method, target, version)
}

func (cb Callbacks) onResponse(status int, reason string, version int) error {
	if cb.OnResponse == nil {
		return nil
	}

	return cb.OnResponse(status, reason, version)
}

func (cb Callbacks) onField(name, value string) error {
	if cb.OnField == nil {
		return nil
	}

	return cb.OnField(name, value)
}

func (cb Callbacks) onHeader() error {
	if cb.OnHeader == nil {
		return nil
	}

	return cb.OnHeader()
}

func (cb Callbacks) onChunk(size uint64, ext string) error {
	if cb.OnChunk == nil {
		return nil
	}

	return cb.OnChunk(size, ext)
}
