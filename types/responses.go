package types

// MessageResponse is a minimal success body carrying only a message.
type MessageResponse struct {
	Message string `json:"message"`
}

// SubmissionCreatedResponse is the 201 body for a successful submission.
type SubmissionCreatedResponse struct {
	Message string             `json:"message"`
	Data    SubmissionResponse `json:"data"`
}

// ErrorResponse is the uniform failure body: always an "error" key, with
// details only outside production.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
