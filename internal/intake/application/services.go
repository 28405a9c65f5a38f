package application

import (
	"context"
	"errors"

	"github.com/twotable/twotable-services/api/internal/intake/domain"
)

var (
	// ErrNotFound signals an identifier that resolves to nothing.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidID signals a malformed identifier.
	ErrInvalidID = errors.New("invalid id")
	// ErrValidation wraps rejected form input so handlers can answer with a
	// client error instead of a server error.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate signals an insert that lost against a unique index.
	ErrDuplicate = errors.New("duplicate document")
)

// Paging controls skip/limit listing of intake documents, newest first.
type Paging struct {
	Skip  int
	Limit int
}

// WaitlistRepository persists waitlist entries keyed by unique email.
type WaitlistRepository interface {
	FindByEmail(ctx context.Context, email domain.Email) (*domain.WaitlistEntry, error)
	Insert(ctx context.Context, entry *domain.WaitlistEntry) error
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, paging Paging) ([]domain.WaitlistEntry, int64, error)
}

// ContactRepository persists contact form submissions.
type ContactRepository interface {
	Insert(ctx context.Context, submission *domain.ContactSubmission) error
	FindByID(ctx context.Context, id string) (*domain.ContactSubmission, error)
	List(ctx context.Context, paging Paging) ([]domain.ContactSubmission, int64, error)
}

// ApplicationRepository persists venue partnership applications.
type ApplicationRepository interface {
	Insert(ctx context.Context, app *domain.VenueApplication) error
	FindByID(ctx context.Context, id string) (*domain.VenueApplication, error)
	List(ctx context.Context, paging Paging) ([]domain.VenueApplication, int64, error)
}

// DaterSurveyRepository persists dater survey responses.
type DaterSurveyRepository interface {
	Insert(ctx context.Context, response *domain.DaterSurveyResponse) error
}

// JoinWaitlistResult reports whether the email was newly added.
type JoinWaitlistResult struct {
	Entry   *domain.WaitlistEntry
	Already bool
}

// WaitlistService covers waitlist signup and admin listing.
type WaitlistService interface {
	Join(ctx context.Context, email string) (JoinWaitlistResult, error)
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, paging Paging) ([]domain.WaitlistEntry, int64, error)
}

// SubmitContactCommand contains the contact form inputs.
type SubmitContactCommand struct {
	Name    string
	Email   string
	Message string
}

// ContactService covers contact form intake and retrieval.
type ContactService interface {
	Submit(ctx context.Context, cmd SubmitContactCommand) (*domain.ContactSubmission, error)
	Detail(ctx context.Context, id string) (*domain.ContactSubmission, error)
	List(ctx context.Context, paging Paging) ([]domain.ContactSubmission, int64, error)
}

// SubmitApplicationCommand contains the venue application inputs.
type SubmitApplicationCommand struct {
	Venue    string
	City     string
	Type     string
	Web      string
	Contact  string
	Role     string
	Email    string
	Phone    string
	Nights   string
	Capacity string
	Payout   string
	Notes    string
}

// ApplicationService covers venue application intake and retrieval.
type ApplicationService interface {
	Submit(ctx context.Context, cmd SubmitApplicationCommand) (*domain.VenueApplication, error)
	Detail(ctx context.Context, id string) (*domain.VenueApplication, error)
	List(ctx context.Context, paging Paging) ([]domain.VenueApplication, int64, error)
}

// SubmitDaterSurveyCommand contains the dater survey inputs.
type SubmitDaterSurveyCommand struct {
	Email   string
	Answers map[string]any
}

// DaterSurveyService covers dater survey intake.
type DaterSurveyService interface {
	Submit(ctx context.Context, cmd SubmitDaterSurveyCommand) (*domain.DaterSurveyResponse, error)
}
