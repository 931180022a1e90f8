package api

import "github.com/j2systems/landing/internal/contact"

// User-facing messages. They never carry internal detail.
const (
	msgSent            = "Message sent successfully"
	msgInvalid         = "Invalid data"
	msgDeliveryFailed  = "The message could not be sent, please try again later"
	msgBadBody         = "Request body must be a JSON object"
	msgTooManyRequests = "Too many requests, please try again later"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Broker  string `json:"broker,omitempty"`
}

// ContactResponse is returned for every submission outcome.
type ContactResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  []contact.Violation `json:"errors,omitempty"`
}

// ScheduleResponse carries a prefilled calendar link for booking a call.
type ScheduleResponse struct {
	URL     string `json:"url"`
	Minutes int    `json:"minutes"`
}
