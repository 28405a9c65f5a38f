package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/twotable/twotable-services/api/internal/intake/domain"
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

type waitlistService struct {
	repo WaitlistRepository
}

// NewWaitlistService constructs the waitlist use-cases.
func NewWaitlistService(repo WaitlistRepository) WaitlistService {
	return &waitlistService{repo: repo}
}

// Join adds an email to the waitlist. Signing up twice is not an error: the
// existing entry is returned with Already set.
func (s *waitlistService) Join(ctx context.Context, email string) (JoinWaitlistResult, error) {
	address, err := domain.NewEmail(email)
	if err != nil {
		return JoinWaitlistResult{}, validationError("%v", err)
	}

	existing, err := s.repo.FindByEmail(ctx, address)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return JoinWaitlistResult{}, err
	}
	if existing != nil {
		return JoinWaitlistResult{Entry: existing, Already: true}, nil
	}

	entry := &domain.WaitlistEntry{Email: address}
	if err := s.repo.Insert(ctx, entry); err != nil {
		// Two concurrent signups race the unique email index; the loser
		// resolves to the winner's entry.
		if errors.Is(err, ErrDuplicate) {
			existing, findErr := s.repo.FindByEmail(ctx, address)
			if findErr != nil {
				return JoinWaitlistResult{}, findErr
			}
			return JoinWaitlistResult{Entry: existing, Already: true}, nil
		}
		return JoinWaitlistResult{}, err
	}
	return JoinWaitlistResult{Entry: entry}, nil
}

func (s *waitlistService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *waitlistService) List(ctx context.Context, paging Paging) ([]domain.WaitlistEntry, int64, error) {
	return s.repo.List(ctx, paging)
}

type contactService struct {
	repo ContactRepository
}

// NewContactService constructs the contact form use-cases.
func NewContactService(repo ContactRepository) ContactService {
	return &contactService{repo: repo}
}

func (s *contactService) Submit(ctx context.Context, cmd SubmitContactCommand) (*domain.ContactSubmission, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, validationError("name is required")
	}
	message := strings.TrimSpace(cmd.Message)
	if message == "" {
		return nil, validationError("message is required")
	}
	email, err := domain.NewEmail(cmd.Email)
	if err != nil {
		return nil, validationError("%v", err)
	}

	submission := &domain.ContactSubmission{Name: name, Email: email, Message: message}
	if err := s.repo.Insert(ctx, submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *contactService) Detail(ctx context.Context, id string) (*domain.ContactSubmission, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *contactService) List(ctx context.Context, paging Paging) ([]domain.ContactSubmission, int64, error) {
	return s.repo.List(ctx, paging)
}

type applicationService struct {
	repo ApplicationRepository
}

// NewApplicationService constructs the venue application use-cases.
func NewApplicationService(repo ApplicationRepository) ApplicationService {
	return &applicationService{repo: repo}
}

func (s *applicationService) Submit(ctx context.Context, cmd SubmitApplicationCommand) (*domain.VenueApplication, error) {
	app, err := buildApplication(cmd)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *applicationService) Detail(ctx context.Context, id string) (*domain.VenueApplication, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *applicationService) List(ctx context.Context, paging Paging) ([]domain.VenueApplication, int64, error) {
	return s.repo.List(ctx, paging)
}

func buildApplication(cmd SubmitApplicationCommand) (*domain.VenueApplication, error) {
	venue := strings.TrimSpace(cmd.Venue)
	if venue == "" {
		return nil, validationError("venue name is required")
	}
	city := strings.TrimSpace(cmd.City)
	if city == "" {
		return nil, validationError("city is required")
	}
	contact := strings.TrimSpace(cmd.Contact)
	if contact == "" {
		return nil, validationError("contact name is required")
	}
	phone := strings.TrimSpace(cmd.Phone)
	if phone == "" {
		return nil, validationError("phone is required")
	}

	email, err := domain.NewEmail(cmd.Email)
	if err != nil {
		return nil, validationError("%v", err)
	}
	web, err := domain.NewURL(cmd.Web)
	if err != nil {
		return nil, validationError("%v", err)
	}

	return &domain.VenueApplication{
		Venue:    venue,
		City:     city,
		Type:     strings.TrimSpace(cmd.Type),
		Web:      web,
		Contact:  contact,
		Role:     strings.TrimSpace(cmd.Role),
		Email:    email,
		Phone:    phone,
		Nights:   strings.TrimSpace(cmd.Nights),
		Capacity: strings.TrimSpace(cmd.Capacity),
		Payout:   strings.TrimSpace(cmd.Payout),
		Notes:    strings.TrimSpace(cmd.Notes),
		Status:   domain.ApplicationStatusPending,
	}, nil
}

type daterSurveyService struct {
	repo DaterSurveyRepository
}

// NewDaterSurveyService constructs the dater survey intake use-case.
func NewDaterSurveyService(repo DaterSurveyRepository) DaterSurveyService {
	return &daterSurveyService{repo: repo}
}

func (s *daterSurveyService) Submit(ctx context.Context, cmd SubmitDaterSurveyCommand) (*domain.DaterSurveyResponse, error) {
	email, err := domain.NewEmail(cmd.Email)
	if err != nil {
		return nil, validationError("%v", err)
	}
	if len(cmd.Answers) == 0 {
		return nil, validationError("answers must not be empty")
	}

	response := &domain.DaterSurveyResponse{Email: email, Answers: cmd.Answers}
	if err := s.repo.Insert(ctx, response); err != nil {
		return nil, err
	}
	return response, nil
}
