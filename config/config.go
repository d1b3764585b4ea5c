// Package config groups the parser's few genuinely tunable limits,
// following the teacher's own grouped-struct convention
// (github.com/indigo-web/indigo/config.Config: nested structs of
// {Default, Maximal} pairs).
package config

import jsoniter "github.com/json-iterator/go"

// Headers bounds the header-field block: how many fields a single
// message may carry, and how the scratch buffer backing it is
// preallocated.
type Headers struct {
	// MaxCount is the maximum number of header fields (main block, not
	// counting a chunked trailer) a single message may carry. Exceeding
	// it surfaces as BadField — the closest fit in the parser's closed
	// error enumeration, since "too many headers" has no enumerator of
	// its own.
	MaxCount int
	// MaxLineSize sizes the scratch buffer's initial preallocation,
	// amortizing growth for the common case. It is not an enforced
	// limit: only true allocation failure bounds how large a header
	// block may grow, and that surfaces through the platform's normal
	// out-of-memory behavior, not a parser error code.
	MaxLineSize int
}

// Chunked bounds the chunked transfer-coding decoder.
type Chunked struct {
	// MaxSizeHexDigits bounds how many hex digits a chunk-size line may
	// carry before it is rejected, independent of the 64-bit overflow
	// check the accumulator already performs — a defensive guard against
	// a chunk-size line padded with an unbounded run of leading zeros,
	// mirroring the teacher's own maxChunkLengthDigits constant in
	// internal/protocol/http1/chunked.go.
	MaxSizeHexDigits int
	// MaxExtensionSize bounds the raw chunk-extension text forwarded to
	// Callbacks.OnChunk.
	MaxExtensionSize int
	// MaxTrailerCount bounds how many header fields a trailer may carry.
	MaxTrailerCount int
}

// Config is the full set of tunables a Parser is constructed with.
type Config struct {
	Headers Headers
	Chunked Chunked
}

// Default returns the configuration used when a Parser is constructed
// without an explicit Config.
func Default() Config {
	return Config{
		Headers: Headers{
			MaxCount:    100,
			MaxLineSize: 8192,
		},
		Chunked: Chunked{
			MaxSizeHexDigits: 16,
			MaxExtensionSize: 1024,
			MaxTrailerCount:  32,
		},
	}
}

// LoadJSON decodes a Config from JSON on top of Default(): a field the
// JSON omits keeps its default value, while a field the JSON sets
// (zero included) takes the JSON value. Hosts that want to externalize tuning (rather than
// hard-coding a Config literal) can keep it in a small JSON file and
// load it at startup.
func LoadJSON(data []byte) (Config, error) {
	cfg := Default()
	if err := jsoniter.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
