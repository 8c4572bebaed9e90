package models

// ErrorResponse is the body config.ErrorStatus writes: the message and the
// underlying error joined by a comma
type ErrorResponse struct {
	Response string `json:"response"`
}

// DeleteResponse is returned by every delete endpoint
type DeleteResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"_id"`
}
