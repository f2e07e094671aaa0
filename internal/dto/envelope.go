package dto

// MessageResponse is the uniform envelope returned by every endpoint.
// Message is a string on success and either a string or a field-scoped
// map of validation messages on failure.
type MessageResponse struct {
	Message any `json:"message"`
}

// LoginResponse carries the session token alongside the envelope so
// non-browser clients can authenticate with a bearer header.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}
