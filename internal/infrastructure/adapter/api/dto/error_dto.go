package dto

// ErrorResponse represents a standardized error response for the API
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	// Details carries error-specific context, e.g. the current balance on
	// an insufficient balance rejection.
	Details map[string]any `json:"details,omitempty"`
}
