package catalog

import (
	"course-finder/pkg/validator"

	playground "github.com/go-playground/validator/v10"
)

// QuarterTag validates a quarter name in any letter case; empty is left to omitempty
const QuarterTag = "quarter"

func init() {
	// registration only fails on a malformed tag name
	if err := validator.RegisterValidation(QuarterTag, validateQuarter, "%s must be one of: fall, winter, spring, summer"); err != nil {
		panic(err)
	}
}

func validateQuarter(fl playground.FieldLevel) bool {
	return NormalizeQuarter(fl.Field().String()).Valid()
}
