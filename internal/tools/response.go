package tools

import "fmt"

// Response is the JSON-like mapping returned by every facade operation.
// A successful response carries "success": true; a failed one carries only "error".
type Response map[string]any

// Error-context prefixes, one per operation and failure class.
const (
	contextPromptValidation   = "Prompt validation"
	contextQuestionValidation = "Question validation"
	contextPrompt             = "Error executing Gemini prompt"
	contextAnalyze            = "Error analyzing codebase"
	contextStatus             = "Error checking status"
)

// errorResponse formats err under label the same way for every operation.
func errorResponse(err error, label string) Response {
	msg := err.Error()
	if label != "" {
		msg = fmt.Sprintf("%s: %s", label, msg)
	}
	return Response{"error": msg}
}

// IsError reports whether r is an error response.
func (r Response) IsError() bool {
	_, ok := r["error"]
	return ok
}

// ErrorMessage returns the error text, or "" for a success response.
func (r Response) ErrorMessage() string {
	msg, _ := r["error"].(string)
	return msg
}
