package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/twotable/twotable-services/api/internal/coverage/domain"
)

type surveyCommandService struct {
	venues  VenueRepository
	surveys SurveyRepository
	now     func() time.Time
}

// NewSurveyCommandService constructs the survey submission use-case.
func NewSurveyCommandService(venues VenueRepository, surveys SurveyRepository) SurveyCommandService {
	return &surveyCommandService{
		venues:  venues,
		surveys: surveys,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Submit upserts the survey for a venue (last write wins) and then stamps the
// venue's last_surveyed_at. The survey record is authoritative for status;
// the venue timestamp is a denormalized cache updated on every submission
// regardless of status. The two writes are not transactional: if the second
// fails the survey stays recorded and the error is surfaced so the caller can
// retry, which is safe because resubmission is idempotent.
func (s *surveyCommandService) Submit(ctx context.Context, cmd SubmitSurveyCommand) (*domain.Survey, error) {
	status, err := domain.NewSurveyStatus(cmd.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, cmd.Status)
	}

	venue, err := s.venues.FindByID(ctx, cmd.VenueID)
	if err != nil {
		return nil, err
	}

	survey := &domain.Survey{
		VenueID:  venue.ID,
		Surveyor: strings.TrimSpace(cmd.Surveyor),
		Status:   status,
		Answers:  cmd.Answers,
	}
	if err := s.surveys.UpsertByVenue(ctx, survey); err != nil {
		return nil, err
	}

	if err := s.venues.MarkSurveyed(ctx, venue.ID, s.now()); err != nil {
		return nil, fmt.Errorf("survey stored but venue timestamp update failed: %w", err)
	}
	return survey, nil
}
