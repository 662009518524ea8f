package matchdata

import crerr "github.com/cockroachdb/errors"

var (
	// ErrMalformedPayload marks a payload that cannot be normalized, e.g. one without a match id.
	// Callers skip the payload and keep going.
	ErrMalformedPayload = crerr.New("malformed match payload")
	// ErrSchemaMismatch marks a field the destination table does not have.
	ErrSchemaMismatch = crerr.New("schema mismatch")
)

// IsMalformed reports whether err carries ErrMalformedPayload.
func IsMalformed(err error) bool {
	return crerr.Is(err, ErrMalformedPayload)
}
