package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/twotable/twotable-services/api/internal/coverage/application"
	"github.com/twotable/twotable-services/api/internal/coverage/domain"
)

// VenueRepository implements application.VenueRepository using MongoDB.
type VenueRepository struct {
	collection *mongo.Collection
}

// NewVenueRepository binds the venue collection.
func NewVenueRepository(db *mongo.Database, collectionName string) *VenueRepository {
	return &VenueRepository{collection: db.Collection(collectionName)}
}

// hierarchyClause matches a hierarchy field against its bucket label. The
// Unknown bucket matches documents where the field is missing or empty, so
// drill-down into "Unknown" reaches the same venues the roll-up counted.
func hierarchyClause(value string) any {
	if value == domain.UnknownBucket {
		return bson.M{"$in": bson.A{nil, ""}}
	}
	return value
}

func buildHierarchyFilter(filter application.HierarchyFilter) bson.M {
	mongoFilter := bson.M{}
	if city := strings.TrimSpace(filter.City); city != "" {
		mongoFilter["city"] = hierarchyClause(city)
	}
	if zone := strings.TrimSpace(filter.Zone); zone != "" {
		mongoFilter["zone"] = hierarchyClause(zone)
	}
	if postcode := strings.TrimSpace(filter.Postcode); postcode != "" {
		mongoFilter["postcode"] = hierarchyClause(postcode)
	}
	return mongoFilter
}

// Snapshot loads every venue matching the hierarchy filter in one read, so
// callers can derive all roll-up levels from a single consistent pass.
func (r *VenueRepository) Snapshot(ctx context.Context, filter application.HierarchyFilter) ([]domain.Venue, error) {
	cursor, err := r.collection.Find(ctx, buildHierarchyFilter(filter))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	venues := make([]domain.Venue, 0)
	for cursor.Next(ctx) {
		var doc VenueDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		venues = append(venues, mapVenueDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return venues, nil
}

// FindByID resolves a venue by its identifier, mapping malformed ids and
// missing documents onto the application error taxonomy.
func (r *VenueRepository) FindByID(ctx context.Context, id string) (*domain.Venue, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, application.ErrInvalidVenueID
	}

	var doc VenueDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, application.ErrVenueNotFound
		}
		return nil, err
	}
	venue := mapVenueDocument(doc)
	return &venue, nil
}

// MarkSurveyed stamps the venue's denormalized last_surveyed_at. Hierarchy
// and attribute fields are never touched here.
func (r *VenueRepository) MarkSurveyed(ctx context.Context, id string, at time.Time) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return application.ErrInvalidVenueID
	}

	result, err := r.collection.UpdateByID(ctx, objectID, bson.M{"$set": bson.M{"last_surveyed_at": at}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return application.ErrVenueNotFound
	}
	return nil
}

func mapVenueDocument(doc VenueDocument) domain.Venue {
	return domain.Venue{
		ID:               doc.ID.Hex(),
		OSMType:          doc.OSMType,
		OSMID:            doc.OSMID,
		Name:             doc.Name,
		Amenity:          doc.Amenity,
		City:             doc.City,
		Zone:             doc.Zone,
		Postcode:         doc.Postcode,
		Email:            doc.Email,
		Website:          doc.Website,
		Phone:            doc.Phone,
		Street:           doc.Street,
		HouseNumber:      doc.HouseNumber,
		Lat:              doc.Lat,
		Lon:              doc.Lon,
		Rating:           doc.Rating,
		UserRatingsTotal: doc.UserRatingsTotal,
		PriceLevel:       doc.PriceLevel,
		GoogleMapsURI:    doc.GoogleMapsURI,
		WebsiteURI:       doc.WebsiteURI,
		LastSurveyedAt:   doc.LastSurveyedAt,
		PriorityScore:    doc.PriorityScore,
		FetchedAt:        doc.FetchedAt,
	}
}
