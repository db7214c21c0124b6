package dto

// StatusResponse represents a standard success response for API endpoints
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewOKResponse creates a StatusResponse with status "ok"
func NewOKResponse(message string) StatusResponse {
	return StatusResponse{Status: "ok", Message: message}
}
