package dto

// APIResponse is the standard envelope for single-object and message responses
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse is the envelope for list endpoints, carrying the result count
type ListResponse struct {
	Success bool        `json:"success"`
	Count   int         `json:"count"`
	Data    interface{} `json:"data"`
}

// ErrorResponse is the envelope for all failure responses
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewDataResponse creates a success response wrapping data
func NewDataResponse(data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Data:    data,
	}
}

// NewMessageResponse creates a success response with a message and optional data
func NewMessageResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// NewListResponse creates a list response with its item count
func NewListResponse(count int, data interface{}) ListResponse {
	return ListResponse{
		Success: true,
		Count:   count,
		Data:    data,
	}
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Message: message,
	}
}
