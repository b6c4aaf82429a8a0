package vista

import "github.com/cockroachdb/errors"

// Common errors. Failures returned by this package are marked with one
// of these so callers can classify them with errors.Is.
var (
	ErrNotVista    = errors.New("not a Vista data file")
	ErrBadHeader   = errors.New("malformed file header")
	ErrDecode      = errors.New("object decode failed")
	ErrEncode      = errors.New("object encode failed")
	ErrTruncated   = errors.New("data segment truncated")
	ErrNotFound    = errors.New("attribute not found")
	ErrBadValue    = errors.New("attribute has bad value")
	ErrUnknownType = errors.New("unregistered type")
	ErrOutOfRange  = errors.New("request out of range")
	ErrUnsupported = errors.New("unsupported representation")
	ErrInvalidPath = errors.New("invalid attribute path")
)

// decodeErrorf returns a decode failure for the named type.
func decodeErrorf(typeName, format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(typeName+": "+format, args...), ErrDecode)
}
