package responses

import (
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

/*
Validate checks value against its validate struct tags. On failure it
returns the message registered for the first failing field, or fallback
when the field has none.
*/
func Validate(value any, messages map[string]string, fallback string) (string, bool) {
	var (
		err    error
		fields validator.ValidationErrors
	)

	validateOnce.Do(func() {
		validate = validator.New()
	})

	if err = validate.Struct(value); err == nil {
		return "", true
	}

	if errors.As(err, &fields) && len(fields) > 0 {
		if message, ok := messages[fields[0].Field()]; ok {
			return message, false
		}
	}

	return fallback, false
}
