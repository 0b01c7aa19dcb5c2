package errors

// ErrorResponse is the body rendered for every failed API request
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail carries the user facing hint and any reportable details.
// RequestID lets callers quote the failing request back to operators.
type ErrorDetail struct {
	Display   string         `json:"message"`
	Code      string         `json:"code"`
	RequestID string         `json:"request_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}
