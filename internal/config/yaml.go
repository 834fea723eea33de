package config

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// maxInputSize limits YAML input to prevent memory exhaustion (1MB).
const maxInputSize = 1 << 20

var (
	ErrEmptyInput    = errors.New("empty config data")
	ErrInputTooLarge = errors.New("config input exceeds maximum size")
)

// unmarshalStrict decodes data into v, rejecting unknown fields.
func unmarshalStrict(data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmptyInput
	}
	if len(data) > maxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), maxInputSize)
	}
	return yaml.UnmarshalWithOptions(data, v, yaml.Strict())
}
