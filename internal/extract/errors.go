package extract

import "fmt"

// UnsupportedTypeError indicates the declared file type is not one we can
// extract text from.
type UnsupportedTypeError struct {
	FileType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.FileType)
}

// ExtractionError wraps a lower-level read or parse failure so callers never
// see raw library errors.
type ExtractionError struct {
	FileType string
	Message  string
	Cause    error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to extract text from %s: %s: %v", e.FileType, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to extract text from %s: %s", e.FileType, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
