package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/twotable/twotable-services/api/internal/coverage/application"
	"github.com/twotable/twotable-services/api/internal/coverage/domain"
)

func TestBuildHierarchyFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, buildHierarchyFilter(application.HierarchyFilter{}))

	assert.Equal(t,
		bson.M{"city": "Bristol"},
		buildHierarchyFilter(application.HierarchyFilter{City: "Bristol"}))

	assert.Equal(t,
		bson.M{"city": "Bristol", "zone": "Clifton", "postcode": "BS8 1"},
		buildHierarchyFilter(application.HierarchyFilter{City: "Bristol", Zone: "Clifton", Postcode: "BS8 1"}))
}

func TestBuildHierarchyFilterUnknownBucket(t *testing.T) {
	filter := buildHierarchyFilter(application.HierarchyFilter{City: "Bristol", Zone: domain.UnknownBucket})

	assert.Equal(t, "Bristol", filter["city"])
	assert.Equal(t, bson.M{"$in": bson.A{nil, ""}}, filter["zone"], "Unknown must match missing and empty fields")
}

func TestBuildHierarchyFilterTrimsWhitespace(t *testing.T) {
	filter := buildHierarchyFilter(application.HierarchyFilter{City: "  Bristol  ", Zone: "   "})
	assert.Equal(t, bson.M{"city": "Bristol"}, filter)
}

func TestMapVenueDocument(t *testing.T) {
	id := primitive.NewObjectID()
	rating := 4.2
	surveyedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	doc := VenueDocument{
		ID:             id,
		OSMType:        "node",
		OSMID:          123456,
		Name:           "The Golden Fork",
		Amenity:        "restaurant",
		City:           "Bristol",
		Zone:           "Clifton",
		Postcode:       "BS8 1",
		Rating:         &rating,
		LastSurveyedAt: &surveyedAt,
		PriorityScore:  7.5,
	}

	venue := mapVenueDocument(doc)
	assert.Equal(t, id.Hex(), venue.ID)
	assert.Equal(t, "The Golden Fork", venue.Name)
	assert.Equal(t, "Bristol", venue.City)
	assert.Equal(t, "Clifton", venue.Zone)
	assert.Equal(t, "BS8 1", venue.Postcode)
	assert.Equal(t, &rating, venue.Rating)
	assert.Equal(t, &surveyedAt, venue.LastSurveyedAt)
	assert.Equal(t, 7.5, venue.PriorityScore)
}
