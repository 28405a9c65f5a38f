package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/twotable/twotable-services/api/internal/intake/application"
	"github.com/twotable/twotable-services/api/internal/intake/domain"
)

// listOptions translates skip/limit paging into Mongo find options, newest
// first.
func listOptions(paging application.Paging) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if paging.Skip > 0 {
		opts.SetSkip(int64(paging.Skip))
	}
	if paging.Limit > 0 {
		opts.SetLimit(int64(paging.Limit))
	}
	return opts
}

func parseIntakeID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, application.ErrInvalidID
	}
	return objectID, nil
}

// WaitlistRepository implements application.WaitlistRepository using MongoDB.
type WaitlistRepository struct {
	collection *mongo.Collection
}

// NewWaitlistRepository binds the waitlist collection.
func NewWaitlistRepository(db *mongo.Database, collectionName string) *WaitlistRepository {
	return &WaitlistRepository{collection: db.Collection(collectionName)}
}

func (r *WaitlistRepository) FindByEmail(ctx context.Context, email domain.Email) (*domain.WaitlistEntry, error) {
	var doc WaitlistDocument
	if err := r.collection.FindOne(ctx, bson.M{"email": email.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, application.ErrNotFound
		}
		return nil, err
	}
	entry := mapWaitlistDocument(doc)
	return &entry, nil
}

func (r *WaitlistRepository) Insert(ctx context.Context, entry *domain.WaitlistEntry) error {
	doc := WaitlistDocument{
		ID:        primitive.NewObjectID(),
		Email:     entry.Email.String(),
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return application.ErrDuplicate
		}
		return err
	}
	entry.ID = doc.ID.Hex()
	entry.CreatedAt = doc.CreatedAt
	return nil
}

func (r *WaitlistRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.D{})
}

func (r *WaitlistRepository) List(ctx context.Context, paging application.Paging) ([]domain.WaitlistEntry, int64, error) {
	cursor, err := r.collection.Find(ctx, bson.D{}, listOptions(paging))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	entries := make([]domain.WaitlistEntry, 0)
	for cursor.Next(ctx) {
		var doc WaitlistDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, err
		}
		entries = append(entries, mapWaitlistDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func mapWaitlistDocument(doc WaitlistDocument) domain.WaitlistEntry {
	return domain.WaitlistEntry{
		ID:        doc.ID.Hex(),
		Email:     domain.Email(doc.Email),
		CreatedAt: doc.CreatedAt,
	}
}

// ContactRepository implements application.ContactRepository using MongoDB.
type ContactRepository struct {
	collection *mongo.Collection
}

// NewContactRepository binds the contact submissions collection.
func NewContactRepository(db *mongo.Database, collectionName string) *ContactRepository {
	return &ContactRepository{collection: db.Collection(collectionName)}
}

func (r *ContactRepository) Insert(ctx context.Context, submission *domain.ContactSubmission) error {
	doc := ContactDocument{
		ID:        primitive.NewObjectID(),
		Name:      submission.Name,
		Email:     submission.Email.String(),
		Message:   submission.Message,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}
	submission.ID = doc.ID.Hex()
	submission.CreatedAt = doc.CreatedAt
	return nil
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*domain.ContactSubmission, error) {
	objectID, err := parseIntakeID(id)
	if err != nil {
		return nil, err
	}
	var doc ContactDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, application.ErrNotFound
		}
		return nil, err
	}
	submission := mapContactDocument(doc)
	return &submission, nil
}

func (r *ContactRepository) List(ctx context.Context, paging application.Paging) ([]domain.ContactSubmission, int64, error) {
	cursor, err := r.collection.Find(ctx, bson.D{}, listOptions(paging))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	submissions := make([]domain.ContactSubmission, 0)
	for cursor.Next(ctx) {
		var doc ContactDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, err
		}
		submissions = append(submissions, mapContactDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, 0, err
	}
	return submissions, total, nil
}

func mapContactDocument(doc ContactDocument) domain.ContactSubmission {
	return domain.ContactSubmission{
		ID:        doc.ID.Hex(),
		Name:      doc.Name,
		Email:     domain.Email(doc.Email),
		Message:   doc.Message,
		CreatedAt: doc.CreatedAt,
	}
}

// ApplicationRepository implements application.ApplicationRepository using
// MongoDB.
type ApplicationRepository struct {
	collection *mongo.Collection
}

// NewApplicationRepository binds the venue applications collection.
func NewApplicationRepository(db *mongo.Database, collectionName string) *ApplicationRepository {
	return &ApplicationRepository{collection: db.Collection(collectionName)}
}

func (r *ApplicationRepository) Insert(ctx context.Context, app *domain.VenueApplication) error {
	doc := VenueApplicationDocument{
		ID:        primitive.NewObjectID(),
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
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}
	app.ID = doc.ID.Hex()
	app.CreatedAt = doc.CreatedAt
	return nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*domain.VenueApplication, error) {
	objectID, err := parseIntakeID(id)
	if err != nil {
		return nil, err
	}
	var doc VenueApplicationDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, application.ErrNotFound
		}
		return nil, err
	}
	app := mapApplicationDocument(doc)
	return &app, nil
}

func (r *ApplicationRepository) List(ctx context.Context, paging application.Paging) ([]domain.VenueApplication, int64, error) {
	cursor, err := r.collection.Find(ctx, bson.D{}, listOptions(paging))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	apps := make([]domain.VenueApplication, 0)
	for cursor.Next(ctx) {
		var doc VenueApplicationDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, err
		}
		apps = append(apps, mapApplicationDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

func mapApplicationDocument(doc VenueApplicationDocument) domain.VenueApplication {
	return domain.VenueApplication{
		ID:        doc.ID.Hex(),
		Venue:     doc.Venue,
		City:      doc.City,
		Type:      doc.Type,
		Web:       domain.URL(doc.Web),
		Contact:   doc.Contact,
		Role:      doc.Role,
		Email:     domain.Email(doc.Email),
		Phone:     doc.Phone,
		Nights:    doc.Nights,
		Capacity:  doc.Capacity,
		Payout:    doc.Payout,
		Notes:     doc.Notes,
		Status:    doc.Status,
		CreatedAt: doc.CreatedAt,
	}
}

// DaterSurveyRepository implements application.DaterSurveyRepository using
// MongoDB.
type DaterSurveyRepository struct {
	collection *mongo.Collection
}

// NewDaterSurveyRepository binds the dater survey collection.
func NewDaterSurveyRepository(db *mongo.Database, collectionName string) *DaterSurveyRepository {
	return &DaterSurveyRepository{collection: db.Collection(collectionName)}
}

func (r *DaterSurveyRepository) Insert(ctx context.Context, response *domain.DaterSurveyResponse) error {
	doc := DaterSurveyDocument{
		ID:        primitive.NewObjectID(),
		Email:     response.Email.String(),
		Answers:   response.Answers,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}
	response.ID = doc.ID.Hex()
	response.CreatedAt = doc.CreatedAt
	return nil
}
