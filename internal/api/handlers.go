package api

import (
	"net/http"

	"github.com/go-fuego/fuego"

	"github.com/j2systems/landing/internal/content"
	"github.com/j2systems/landing/internal/submission"
)

// healthCheck returns the health status. When mail goes through NATS a lost
// broker connection makes the service unhealthy.
func (s *Server) healthCheck(c fuego.ContextNoBody) (HealthResponse, error) {
	resp := HealthResponse{
		Status:  "ok",
		Version: s.version,
	}

	if s.deps.Broker != nil {
		resp.Broker = "connected"
		if !s.deps.Broker.IsConnected() {
			resp.Status = "degraded"
			resp.Broker = "disconnected"
			c.SetStatus(http.StatusServiceUnavailable)
		}
	}

	return resp, nil
}

// submitContact validates the raw form fields and dispatches one notification.
// The body is decoded as a plain object so unknown keys are ignored and
// mistyped values are reported per field. Every outcome uses the
// ContactResponse envelope.
func (s *Server) submitContact(c fuego.ContextWithBody[map[string]any]) (ContactResponse, error) {
	body, err := c.Body()
	if err != nil || body == nil {
		c.SetStatus(http.StatusBadRequest)
		return ContactResponse{Success: false, Message: msgBadBody}, nil
	}

	res := s.deps.Submissions.Submit(c.Context(), body)
	if res.OK {
		return ContactResponse{Success: true, Message: msgSent}, nil
	}

	switch res.Kind {
	case submission.KindValidation:
		c.SetStatus(http.StatusUnprocessableEntity)
		return ContactResponse{Success: false, Message: msgInvalid, Errors: res.Details}, nil
	default:
		c.SetStatus(http.StatusBadGateway)
		return ContactResponse{Success: false, Message: msgDeliveryFailed}, nil
	}
}

// getContent returns the static site content.
func (s *Server) getContent(_ fuego.ContextNoBody) (content.Site, error) {
	return *s.deps.Content, nil
}

// getSchedule returns a prefilled calendar link for booking a call.
func (s *Server) getSchedule(_ fuego.ContextNoBody) (ScheduleResponse, error) {
	sched := s.deps.Content.Schedule
	return ScheduleResponse{
		URL:     content.CalendarLink(sched.Title, sched.Description, sched.Minutes),
		Minutes: sched.Minutes,
	}, nil
}
