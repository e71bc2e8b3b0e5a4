package parsing

import "fmt"

// CredentialError indicates the parser was constructed without an API key.
type CredentialError struct{}

func (e *CredentialError) Error() string {
	return "LLM API key not found: set GEMINI_API_KEY in the environment or .env"
}

// EmptyDocumentError indicates no text could be extracted from the resume,
// so the model service was never called.
type EmptyDocumentError struct {
	Path string
}

func (e *EmptyDocumentError) Error() string {
	return fmt.Sprintf("no text could be extracted from the resume: %s", e.Path)
}

// APICallError represents a failure of the model-service call itself
// (network, timeout, quota).
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}
