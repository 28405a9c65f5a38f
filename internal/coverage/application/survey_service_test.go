package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twotable/twotable-services/api/internal/coverage/domain"
)

func TestSubmitStoresSurveyAndStampsVenue(t *testing.T) {
	venues, surveys := bristolFixture()
	svc := NewSurveyCommandService(venues, surveys)

	survey, err := svc.Submit(context.Background(), SubmitSurveyCommand{
		VenueID:  "v2",
		Surveyor: "  alex  ",
		Status:   "completed",
		Answers:  map[string]any{"atmosphere": 4},
	})
	require.NoError(t, err)
	require.NotNil(t, survey)

	assert.Equal(t, "v2", survey.VenueID)
	assert.Equal(t, "alex", survey.Surveyor)
	assert.Equal(t, domain.StatusCompleted, survey.Status)
	assert.NotEmpty(t, survey.ID)

	require.Len(t, surveys.upserted, 1)
	assert.Contains(t, venues.marked, "v2", "venue timestamp must be stamped")
}

func TestSubmitDoubleSubmissionOverwrites(t *testing.T) {
	venues, surveys := bristolFixture()
	svc := NewSurveyCommandService(venues, surveys)

	_, err := svc.Submit(context.Background(), SubmitSurveyCommand{
		VenueID: "v2", Status: "in_progress",
	})
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), SubmitSurveyCommand{
		VenueID: "v2", Status: "completed",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, surveys.statuses["v2"], "last write wins")
	assert.Len(t, surveys.upserted, 2)
}

func TestSubmitInProgressStillStampsVenue(t *testing.T) {
	venues, surveys := bristolFixture()
	svc := NewSurveyCommandService(venues, surveys)

	_, err := svc.Submit(context.Background(), SubmitSurveyCommand{
		VenueID: "v3", Status: "in_progress",
	})
	require.NoError(t, err)
	assert.Contains(t, venues.marked, "v3")
}

func TestSubmitInvalidStatus(t *testing.T) {
	venues, surveys := bristolFixture()
	svc := NewSurveyCommandService(venues, surveys)

	for _, status := range []string{"", "done", "not_started"} {
		_, err := svc.Submit(context.Background(), SubmitSurveyCommand{
			VenueID: "v1", Status: status,
		})
		assert.ErrorIs(t, err, ErrInvalidStatus, "status %q", status)
	}
	assert.Empty(t, surveys.upserted, "nothing may be written on validation failure")
}

func TestSubmitVenueNotFound(t *testing.T) {
	venues, surveys := bristolFixture()
	svc := NewSurveyCommandService(venues, surveys)

	_, err := svc.Submit(context.Background(), SubmitSurveyCommand{
		VenueID: "missing", Status: "completed",
	})
	assert.ErrorIs(t, err, ErrVenueNotFound)
	assert.Empty(t, surveys.upserted)
}

func TestSubmitInvalidVenueID(t *testing.T) {
	venues, surveys := bristolFixture()
	venues.findErr = ErrInvalidVenueID
	svc := NewSurveyCommandService(venues, surveys)

	_, err := svc.Submit(context.Background(), SubmitSurveyCommand{
		VenueID: "not-a-hex-id", Status: "completed",
	})
	assert.ErrorIs(t, err, ErrInvalidVenueID)
}

func TestSubmitMarkSurveyedFailureSurfaces(t *testing.T) {
	venues, surveys := bristolFixture()
	venues.markErr = errors.New("write concern failed")
	svc := NewSurveyCommandService(venues, surveys)

	_, err := svc.Submit(context.Background(), SubmitSurveyCommand{
		VenueID: "v1", Status: "completed",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "survey stored but venue timestamp update failed")
	assert.Len(t, surveys.upserted, 1, "survey write must have happened before the failure")
}
