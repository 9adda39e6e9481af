package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrEmptyResponse is returned when the Gemini API returns no usable
	// candidate content.
	ErrEmptyResponse = errors.New("empty response from Gemini API")
)
