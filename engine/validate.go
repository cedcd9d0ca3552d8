package engine

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var structValidate = validator.New()

// validate runs struct-tag validation plus the cross-field checks
// validator tags alone can't express, e.g. partial-load sharding
// bounds.
func (c Config) validate() error {
	if err := structValidate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if (c.PartialLoadPart == 0) != (c.PartialLoadNumParts == 0) {
		return fmt.Errorf("%w: partial_load_part and partial_load_num_parts must both be zero or both be set", ErrInvalidConfig)
	}
	if c.PartialLoadNumParts > 0 {
		if c.PartialLoadPart < 1 || c.PartialLoadPart > c.PartialLoadNumParts {
			return fmt.Errorf("%w: partial_load_part %d out of range [1,%d]", ErrInvalidConfig, c.PartialLoadPart, c.PartialLoadNumParts)
		}
	}

	return nil
}

// xsBufferSize resolves XSBufferSize against TotalMemoryBytes when the
// caller left it at zero, defaulting to 25% of TotalMemoryBytes.
func (c Config) xsBufferSize() int64 {
	if c.XSBufferSize > 0 {
		return c.XSBufferSize
	}
	if c.TotalMemoryBytes > 0 {
		return c.TotalMemoryBytes / 4
	}
	return 0
}
