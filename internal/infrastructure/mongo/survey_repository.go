package mongo

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/twotable/twotable-services/api/internal/coverage/application"
	"github.com/twotable/twotable-services/api/internal/coverage/domain"
)

// SurveyRepository implements application.SurveyRepository using MongoDB.
type SurveyRepository struct {
	collection *mongo.Collection
}

// NewSurveyRepository binds the venue survey collection.
func NewSurveyRepository(db *mongo.Database, collectionName string) *SurveyRepository {
	return &SurveyRepository{collection: db.Collection(collectionName)}
}

// StatusByVenue loads the survey status join for the given venues: a map from
// venue id to stored status. Venues without a record are simply absent.
func (r *SurveyRepository) StatusByVenue(ctx context.Context, venueIDs []string) (map[string]domain.SurveyStatus, error) {
	if len(venueIDs) == 0 {
		return map[string]domain.SurveyStatus{}, nil
	}

	objectIDs := make([]primitive.ObjectID, 0, len(venueIDs))
	for _, id := range venueIDs {
		objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
		if err != nil {
			return nil, application.ErrInvalidVenueID
		}
		objectIDs = append(objectIDs, objectID)
	}

	projection := options.Find().SetProjection(bson.M{"venueId": 1, "status": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"venueId": bson.M{"$in": objectIDs}}, projection)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	statuses := make(map[string]domain.SurveyStatus, len(venueIDs))
	for cursor.Next(ctx) {
		var doc VenueSurveyDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		statuses[doc.VenueID.Hex()] = domain.SurveyStatus(doc.Status)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return statuses, nil
}

// UpsertByVenue stores the survey keyed by venue id: content and status are
// replaced in place when a record exists, created otherwise. No history is
// retained. The document identity and timestamps are reflected back onto the
// domain survey.
func (r *SurveyRepository) UpsertByVenue(ctx context.Context, survey *domain.Survey) error {
	venueID, err := primitive.ObjectIDFromHex(strings.TrimSpace(survey.VenueID))
	if err != nil {
		return application.ErrInvalidVenueID
	}

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"surveyor":  survey.Surveyor,
			"status":    string(survey.Status),
			"answers":   survey.Answers,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"venueId":   venueID,
			"createdAt": now,
		},
	}
	opts := options.Update().SetUpsert(true)
	result, err := r.collection.UpdateOne(ctx, bson.M{"venueId": venueID}, update, opts)
	if err != nil {
		return err
	}

	if upsertedID, ok := result.UpsertedID.(primitive.ObjectID); ok {
		survey.ID = upsertedID.Hex()
		survey.CreatedAt = now
		survey.UpdatedAt = now
		return nil
	}

	var doc VenueSurveyDocument
	if err := r.collection.FindOne(ctx, bson.M{"venueId": venueID}).Decode(&doc); err != nil {
		return err
	}
	survey.ID = doc.ID.Hex()
	survey.CreatedAt = doc.CreatedAt
	survey.UpdatedAt = doc.UpdatedAt
	return nil
}
