package public

import (
	"time"

	"github.com/twotable/twotable-services/api/internal/intake/domain"
)

// okResponse is the standard intake success shape.
type okResponse struct {
	OK      bool   `json:"ok"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

type waitlistJoinRequest struct {
	Email string `json:"email"`
}

type waitlistEntryResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type contactSubmitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type contactResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type applicationSubmitRequest struct {
	Venue    string `json:"venue"`
	City     string `json:"city"`
	Type     string `json:"type"`
	Web      string `json:"web"`
	Contact  string `json:"contact"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Nights   string `json:"nights"`
	Capacity string `json:"capacity"`
	Payout   string `json:"payout"`
	Notes    string `json:"notes"`
}

type applicationResponse struct {
	ID        string    `json:"id"`
	Venue     string    `json:"venue"`
	City      string    `json:"city"`
	Type      string    `json:"type,omitempty"`
	Web       string    `json:"web,omitempty"`
	Contact   string    `json:"contact"`
	Role      string    `json:"role,omitempty"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Nights    string    `json:"nights,omitempty"`
	Capacity  string    `json:"capacity,omitempty"`
	Payout    string    `json:"payout,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type daterSurveySubmitRequest struct {
	Email   string         `json:"email"`
	Answers map[string]any `json:"answers"`
}

func buildWaitlistEntryResponse(entry domain.WaitlistEntry) waitlistEntryResponse {
	return waitlistEntryResponse{
		ID:        entry.ID,
		Email:     entry.Email.String(),
		CreatedAt: entry.CreatedAt,
	}
}

func buildContactResponse(submission domain.ContactSubmission) contactResponse {
	return contactResponse{
		ID:        submission.ID,
		Name:      submission.Name,
		Email:     submission.Email.String(),
		Message:   submission.Message,
		CreatedAt: submission.CreatedAt,
	}
}

func buildApplicationResponse(app domain.VenueApplication) applicationResponse {
	return applicationResponse{
		ID:        app.ID,
		Venue:     app.Venue,
		City:      app.City,
		Type:      app.Type,
		Web:       app.Web.String(),
		Contact:   app.Contact,
		Role:      app.Role,
		Email:     app.Email.String(),
		Phone:     app.Phone,
		Nights:    app.Nights,
		Capacity:  app.Capacity,
		Payout:    app.Payout,
		Notes:     app.Notes,
		Status:    app.Status,
		CreatedAt: app.CreatedAt,
	}
}
