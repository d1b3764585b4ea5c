package httpparser

// Code enumerates the stable error surface of the parser. Values are not
// part of the API contract; compare against the Err* sentinels instead.
type Code uint8

const (
	// NeedMore is not a failure: it signals that the view examined so far
	// does not yet contain a complete structural unit. The parser remains
	// resumable.
	NeedMore Code = iota + 1
	BadMethod
	BadPath
	BadVersion
	BadStatus
	BadReason
	BadField
	BadValue
	BadContentLength
	BadTransferEncoding
	BadChunk
	ShortRead
)

var messages = [...]string{
	NeedMore:            "more input needed",
	BadMethod:           "bad method",
	BadPath:             "bad request-target",
	BadVersion:          "bad HTTP-version",
	BadStatus:           "bad status-code",
	BadReason:           "bad reason-phrase",
	BadField:            "bad header field name",
	BadValue:            "bad header field value",
	BadContentLength:    "bad Content-Length",
	BadTransferEncoding: "bad Transfer-Encoding",
	BadChunk:            "malformed chunked transfer-coding",
	ShortRead:           "connection closed before message was complete",
}

// String renders a human-readable message for the code, following the same
// switch-over-enumerator shape as Beast's http_error_category::message.
func (c Code) String() string {
	if int(c) < len(messages) && messages[c] != "" {
		return messages[c]
	}

	return "unknown http parser error"
}

// Error is the concrete error type returned by every parser operation that
// can fail. A bare Code comparison (errors.Is against the Err* sentinels,
// or a plain ==) is the intended way to branch on it.
type Error struct {
	Code Code
}

func (e Error) Error() string {
	return e.Code.String()
}

func newError(c Code) error {
	return Error{Code: c}
}

// Sentinel errors, one per Code, so callers can compare with == or
// errors.Is without reaching into the Code field.
var (
	ErrNeedMore            = newError(NeedMore)
	ErrBadMethod           = newError(BadMethod)
	ErrBadPath             = newError(BadPath)
	ErrBadVersion          = newError(BadVersion)
	ErrBadStatus           = newError(BadStatus)
	ErrBadReason           = newError(BadReason)
	ErrBadField            = newError(BadField)
	ErrBadValue            = newError(BadValue)
	ErrBadContentLength    = newError(BadContentLength)
	ErrBadTransferEncoding = newError(BadTransferEncoding)
	ErrBadChunk            = newError(BadChunk)
	ErrShortRead           = newError(ShortRead)
)
