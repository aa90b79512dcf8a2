package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/arbormail/arbormail/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	// FieldKey targets the dotted key path of a config-store entry.
	FieldKey = "key"

	// FieldValue targets the value of a config-store entry.
	FieldValue = "value"
)

const (
	// maxKeyLength bounds the dotted key path. Matches the console form's
	// input limit.
	maxKeyLength = 200

	// maxValueSize bounds a single stored value.
	maxValueSize = 64 << 10
)

// ConfigKeyValidator implements the Validator interface for config-store
// entries. It accepts a single entry, a pointer to one, or a batch, and
// allows optional field-level scoping via variadic field name arguments.
//
// Key paths are restricted to dot-separated bare segments of letters,
// digits, '_' and '-', the TOML bare-key charset, so every stored key
// emits without quoting on export. Values are free-form and may carry
// unresolved %{...}% macros; only their size is bounded.
type ConfigKeyValidator struct {
}

// NewConfigKeyValidator constructs a new ConfigKeyValidator and returns it
// as the Validator interface.
func NewConfigKeyValidator() Validator {
	return &ConfigKeyValidator{}
}

// Validate dispatches validation based on the dynamic type of obj.
//
// Supported types:
//   - models.ConfigKey / *models.ConfigKey
//   - []models.ConfigKey
//
// Returns ErrUnsupportedType if obj does not match any of them. Optional
// fields restrict validation to the named subset; when omitted, both the
// key and the value are validated.
func (v *ConfigKeyValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.ConfigKey:
		return v.validateEntry(ctx, value, fields...)
	case *models.ConfigKey:
		return v.validateEntry(ctx, *value, fields...)

	case []models.ConfigKey:
		if len(value) == 0 {
			return ErrNoEntries
		}
		for i, entry := range value {
			if err := v.validateEntry(ctx, entry, fields...); err != nil {
				return fmt.Errorf("invalid entry at index %d: %w", i, err)
			}
		}
		return nil

	default:
		return ErrUnsupportedType
	}
}

// validateEntry validates a single config-store entry.
//
// Default validated fields (when none specified): Key, Value.
func (v *ConfigKeyValidator) validateEntry(_ context.Context, entry models.ConfigKey, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldKey, FieldValue}
	}

	for _, f := range fields {
		switch f {
		case FieldKey:
			if err := validateKeyPath(entry.Key); err != nil {
				return err
			}
		case FieldValue:
			if len(entry.Value) > maxValueSize {
				return ErrValueTooLarge
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateKeyPath checks that key is a non-empty dotted path of bare
// segments within the length limit.
func validateKeyPath(key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	if len(key) > maxKeyLength {
		return ErrKeyTooLong
	}

	for _, segment := range strings.Split(key, ".") {
		if !isBareSegment(segment) {
			return fmt.Errorf("%w: %q", ErrBadKeyPath, key)
		}
	}

	return nil
}

// isBareSegment reports whether s is a non-empty run of TOML bare-key
// characters: ASCII letters, digits, '_' and '-'.
func isBareSegment(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}

	return true
}
