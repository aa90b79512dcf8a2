package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyKey      = errors.New("key must not be empty")
	ErrKeyTooLong    = errors.New("key exceeds the length limit")
	ErrBadKeyPath    = errors.New("key is not a dotted path of bare segments")
	ErrValueTooLarge = errors.New("value exceeds the size limit")
	ErrNoEntries     = errors.New("entries list cannot be empty")
)
