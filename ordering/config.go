package ordering

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks that the member ordering only uses known bucket names,
// each at most once.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration, valid order names are %v: %w", DefaultOrder, err)
	}
	return nil
}
