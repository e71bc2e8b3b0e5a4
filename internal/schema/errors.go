package schema

import "fmt"

// excerptLen bounds how much of the raw model output is kept on a
// validation failure for diagnosability.
const excerptLen = 500

// ValidationError indicates the raw model output did not conform to the
// selected schema. Excerpt holds the beginning of the offending text.
type ValidationError struct {
	Variant Variant
	Message string
	Excerpt string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Excerpt != "" {
		return fmt.Sprintf("%s schema validation failed: %s\n\nResponse: %s", e.Variant, e.Message, e.Excerpt)
	}
	return fmt.Sprintf("%s schema validation failed: %s", e.Variant, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// newValidationError builds a ValidationError with a truncated excerpt of raw.
func newValidationError(variant Variant, message, raw string, cause error) *ValidationError {
	excerpt := raw
	if len(excerpt) > excerptLen {
		excerpt = excerpt[:excerptLen]
	}
	return &ValidationError{
		Variant: variant,
		Message: message,
		Excerpt: excerpt,
		Cause:   cause,
	}
}
