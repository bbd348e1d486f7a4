package models

// CountResponse is the body of the month and weekday routes.
type CountResponse struct {
	Mensaje string `json:"mensaje"`
}

// MessageResponse is the body of the votes and score routes.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
