package resumes

import "fmt"

// ProcessingError wraps the failure of one processing attempt as it crosses
// the lifecycle boundary. The underlying stage error is preserved verbatim
// for user-facing display and for the stored error detail.
type ProcessingError struct {
	Stage string
	Cause error
}

func (e *ProcessingError) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("resume processing failed at %s: %v", e.Stage, e.Cause)
	}
	return fmt.Sprintf("resume processing failed: %v", e.Cause)
}

func (e *ProcessingError) Unwrap() error {
	return e.Cause
}
