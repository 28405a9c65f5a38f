package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VenueDocument is the Mongo schema of a venue imported from OpenStreetMap.
// Field names follow the importer's output so both sides of the pipeline read
// the same documents. The survey linkage fields (last_surveyed_at,
// survey_priority_score) are the only ones mutated after ingestion.
type VenueDocument struct {
	ID               primitive.ObjectID `bson:"_id"`
	OSMType          string             `bson:"osm_type"`
	OSMID            int64              `bson:"osm_id"`
	Name             string             `bson:"name,omitempty"`
	Amenity          string             `bson:"amenity,omitempty"`
	City             string             `bson:"city,omitempty"`
	Zone             string             `bson:"zone,omitempty"`
	Postcode         string             `bson:"postcode,omitempty"`
	Email            string             `bson:"email,omitempty"`
	Website          string             `bson:"website,omitempty"`
	Phone            string             `bson:"phone,omitempty"`
	Street           string             `bson:"street,omitempty"`
	HouseNumber      string             `bson:"housenumber,omitempty"`
	Lat              *float64           `bson:"lat,omitempty"`
	Lon              *float64           `bson:"lon,omitempty"`
	Rating           *float64           `bson:"rating,omitempty"`
	UserRatingsTotal *int               `bson:"user_ratings_total,omitempty"`
	PriceLevel       *int               `bson:"price_level,omitempty"`
	GoogleMapsURI    string             `bson:"google_maps_uri,omitempty"`
	WebsiteURI       string             `bson:"website_uri,omitempty"`
	LastSurveyedAt   *time.Time         `bson:"last_surveyed_at,omitempty"`
	PriorityScore    float64            `bson:"survey_priority_score,omitempty"`
	FetchedAt        time.Time          `bson:"fetched_at,omitempty"`
}

// VenueSurveyDocument is the Mongo schema of a venue survey. There is at most
// one document per venue, enforced by the unique venueId index; submissions
// upsert by that key so last write wins.
type VenueSurveyDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	VenueID   primitive.ObjectID `bson:"venueId"`
	Surveyor  string             `bson:"surveyor,omitempty"`
	Status    string             `bson:"status"`
	Answers   map[string]any     `bson:"answers,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// WaitlistDocument is one waitlist signup, keyed by unique lowercased email.
type WaitlistDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	CreatedAt time.Time          `bson:"created_at"`
}

// ContactDocument is one contact form submission.
type ContactDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Message   string             `bson:"message"`
	CreatedAt time.Time          `bson:"created_at"`
}

// VenueApplicationDocument is one venue partnership application.
type VenueApplicationDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Venue     string             `bson:"venue"`
	City      string             `bson:"city"`
	Type      string             `bson:"type,omitempty"`
	Web       string             `bson:"web,omitempty"`
	Contact   string             `bson:"contact"`
	Role      string             `bson:"role,omitempty"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone"`
	Nights    string             `bson:"nights,omitempty"`
	Capacity  string             `bson:"capacity,omitempty"`
	Payout    string             `bson:"payout,omitempty"`
	Notes     string             `bson:"notes,omitempty"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
}

// DaterSurveyDocument is one dater survey response. Answers are stored as-is.
type DaterSurveyDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Answers   map[string]any     `bson:"answers"`
	CreatedAt time.Time          `bson:"created_at"`
}
