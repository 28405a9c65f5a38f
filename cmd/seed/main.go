package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type seedOptions struct {
	venueCount       int
	surveyedFraction float64
	waitlistCount    int
	contactCount     int
	applicationCount int
	daterSurveyCount int
	dropCollections  bool
	randomSeed       int64
}

type collections struct {
	venues       string
	surveys      string
	waitlist     string
	contacts     string
	applications string
	daterSurveys string
}

type venueDocument struct {
	ID               primitive.ObjectID `bson:"_id"`
	OSMType          string             `bson:"osm_type"`
	OSMID            int64              `bson:"osm_id"`
	Name             string             `bson:"name"`
	Amenity          string             `bson:"amenity"`
	City             string             `bson:"city,omitempty"`
	Zone             string             `bson:"zone,omitempty"`
	Postcode         string             `bson:"postcode,omitempty"`
	Phone            string             `bson:"phone,omitempty"`
	Website          string             `bson:"website,omitempty"`
	Rating           *float64           `bson:"rating,omitempty"`
	UserRatingsTotal *int               `bson:"user_ratings_total,omitempty"`
	PriceLevel       *int               `bson:"price_level,omitempty"`
	LastSurveyedAt   *time.Time         `bson:"last_surveyed_at,omitempty"`
	PriorityScore    float64            `bson:"survey_priority_score,omitempty"`
	FetchedAt        time.Time          `bson:"fetched_at"`
}

type surveyDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	VenueID   primitive.ObjectID `bson:"venueId"`
	Surveyor  string             `bson:"surveyor"`
	Status    string             `bson:"status"`
	Answers   map[string]any     `bson:"answers,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

type cityLayout struct {
	name  string
	zones []zoneLayout
}

type zoneLayout struct {
	name      string
	postcodes []string
}

var cityLayouts = []cityLayout{
	{
		name: "Bristol",
		zones: []zoneLayout{
			{name: "Clifton", postcodes: []string{"BS8 1", "BS8 2", "BS8 4"}},
			{name: "Harbourside", postcodes: []string{"BS1 5", "BS1 6"}},
			{name: "Stokes Croft", postcodes: []string{"BS1 3", "BS2 8"}},
			{name: "Redland", postcodes: []string{"BS6 6", "BS6 7"}},
			{name: "Southville", postcodes: []string{"BS3 1", "BS3 4"}},
			{name: "Old Market", postcodes: []string{"BS2 0"}},
		},
	},
	{
		name: "London",
		zones: []zoneLayout{
			{name: "Shoreditch", postcodes: []string{"E1 6", "E2 7"}},
			{name: "Soho", postcodes: []string{"W1D 3", "W1F 8"}},
			{name: "Camden", postcodes: []string{"NW1 7", "NW1 8"}},
			{name: "Brixton", postcodes: []string{"SW2 1", "SW9 8"}},
			{name: "Hackney", postcodes: []string{"E8 1", "E8 3"}},
			{name: "Islington", postcodes: []string{"N1 1", "N1 8"}},
		},
	},
}

var amenities = []string{"restaurant", "bar", "pub", "cafe", "fast_food", "nightclub"}

// A survey document is only ever in_progress or completed; a venue that was
// never surveyed simply has no document.
var surveyStatuses = []string{"completed", "completed", "completed", "in_progress", "in_progress"}

var surveyors = []string{"alex", "sam", "jordan", "priya", "callum"}

var venueNameParts = struct {
	first  []string
	second []string
}{
	first:  []string{"The Golden", "The Old", "Little", "Casa", "The Crafty", "Bar", "The Corner", "Maison", "The Velvet", "Harbour"},
	second: []string{"Fork", "Anchor", "Olive", "Tavern", "Kitchen", "Vine", "Pearl", "Lantern", "Table", "Swan"},
}

func main() {
	opts := parseFlags()

	cfg := collections{
		venues:       envOrDefault("VENUE_COLLECTION", "venues"),
		surveys:      envOrDefault("VENUE_SURVEY_COLLECTION", "venue_surveys"),
		waitlist:     envOrDefault("WAITLIST_COLLECTION", "waitlist"),
		contacts:     envOrDefault("CONTACT_COLLECTION", "contact_submissions"),
		applications: envOrDefault("APPLICATION_COLLECTION", "venue_applications"),
		daterSurveys: envOrDefault("DATER_SURVEY_COLLECTION", "dater_surveys"),
	}

	mongoURI := envOrDefault("MONGO_URI", "mongodb://localhost:27017")
	dbName := envOrDefault("MONGO_DB", "twotable")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(dbName)

	if opts.dropCollections {
		if err := dropCollections(ctx, db, cfg); err != nil {
			log.Fatalf("failed to drop collections: %v", err)
		}
		log.Printf("dropped existing collections")
	}

	if err := ensureIndexes(ctx, db, cfg); err != nil {
		log.Fatalf("failed to create indexes: %v", err)
	}

	rng := rand.New(rand.NewSource(opts.randomSeed))

	venueDocs := generateVenues(rng, opts.venueCount)
	if len(venueDocs) == 0 {
		log.Fatal("no venue docs were generated")
	}

	surveyDocs := generateSurveys(rng, venueDocs, opts.surveyedFraction)
	stampLastSurveyed(venueDocs, surveyDocs)

	if err := insertMany(ctx, db.Collection(cfg.venues), toAnySlice(venueDocs)); err != nil {
		log.Fatalf("failed to insert venues: %v", err)
	}
	if len(surveyDocs) > 0 {
		if err := insertMany(ctx, db.Collection(cfg.surveys), toAnySlice(surveyDocs)); err != nil {
			log.Fatalf("failed to insert surveys: %v", err)
		}
	}

	waitlistDocs := generateWaitlist(rng, opts.waitlistCount)
	if len(waitlistDocs) > 0 {
		if err := insertMany(ctx, db.Collection(cfg.waitlist), waitlistDocs); err != nil {
			log.Fatalf("failed to insert waitlist entries: %v", err)
		}
	}

	contactDocs := generateContacts(rng, opts.contactCount)
	if len(contactDocs) > 0 {
		if err := insertMany(ctx, db.Collection(cfg.contacts), contactDocs); err != nil {
			log.Fatalf("failed to insert contact submissions: %v", err)
		}
	}

	applicationDocs := generateApplications(rng, opts.applicationCount)
	if len(applicationDocs) > 0 {
		if err := insertMany(ctx, db.Collection(cfg.applications), applicationDocs); err != nil {
			log.Fatalf("failed to insert venue applications: %v", err)
		}
	}

	daterDocs := generateDaterSurveys(rng, opts.daterSurveyCount)
	if len(daterDocs) > 0 {
		if err := insertMany(ctx, db.Collection(cfg.daterSurveys), daterDocs); err != nil {
			log.Fatalf("failed to insert dater surveys: %v", err)
		}
	}

	log.Printf("seed complete: venues=%d surveys=%d waitlist=%d contacts=%d applications=%d daterSurveys=%d",
		len(venueDocs), len(surveyDocs), len(waitlistDocs), len(contactDocs), len(applicationDocs), len(daterDocs))
	log.Printf("Mongo: %s / %s", mongoURI, dbName)
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.IntVar(&opts.venueCount, "venues", 200, "number of venues to generate")
	flag.Float64Var(&opts.surveyedFraction, "surveyed", 0.4, "fraction of venues with a survey document")
	flag.IntVar(&opts.waitlistCount, "waitlist", 50, "number of waitlist signups")
	flag.IntVar(&opts.contactCount, "contacts", 10, "number of contact submissions")
	flag.IntVar(&opts.applicationCount, "applications", 8, "number of venue applications")
	flag.IntVar(&opts.daterSurveyCount, "dater", 20, "number of dater survey responses")
	flag.BoolVar(&opts.dropCollections, "drop", true, "drop existing collections before inserting")
	defaultSeed := time.Now().UnixNano()
	flag.Int64Var(&opts.randomSeed, "seed", defaultSeed, "random seed for reproducibility")
	flag.Parse()

	if opts.venueCount <= 0 {
		log.Fatal("venues must be at least 1")
	}
	if opts.surveyedFraction < 0 {
		opts.surveyedFraction = 0
	}
	if opts.surveyedFraction > 1 {
		opts.surveyedFraction = 1
	}
	return opts
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func dropCollections(ctx context.Context, db *mongo.Database, cfg collections) error {
	for _, name := range []string{cfg.venues, cfg.surveys, cfg.waitlist, cfg.contacts, cfg.applications, cfg.daterSurveys} {
		if err := db.Collection(name).Drop(ctx); err != nil {
			return err
		}
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, cfg collections) error {
	if _, err := db.Collection(cfg.venues).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "osm_type", Value: 1}, {Key: "osm_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}
	if _, err := db.Collection(cfg.surveys).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "venueId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}
	if _, err := db.Collection(cfg.waitlist).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}
	return nil
}

func generateVenues(rng *rand.Rand, count int) []venueDocument {
	docs := make([]venueDocument, 0, count)
	now := time.Now().UTC()

	for i := 0; i < count; i++ {
		city := cityLayouts[rng.Intn(len(cityLayouts))]
		zone := city.zones[rng.Intn(len(city.zones))]
		postcode := zone.postcodes[rng.Intn(len(zone.postcodes))]

		doc := venueDocument{
			ID:            primitive.NewObjectID(),
			OSMType:       "node",
			OSMID:         int64(1_000_000 + i),
			Name:          fmt.Sprintf("%s %s", pick(rng, venueNameParts.first), pick(rng, venueNameParts.second)),
			Amenity:       pick(rng, amenities),
			City:          city.name,
			Zone:          zone.name,
			Postcode:      postcode,
			PriorityScore: float64(rng.Intn(100)) / 10,
			FetchedAt:     now.Add(-time.Duration(rng.Intn(72)) * time.Hour),
		}

		// A slice of venues misses hierarchy fields, as real OSM data does.
		switch rng.Intn(10) {
		case 0:
			doc.Zone = ""
		case 1:
			doc.Postcode = ""
		case 2:
			doc.Zone = ""
			doc.Postcode = ""
		}

		if rng.Intn(3) > 0 {
			rating := 3.0 + rng.Float64()*2
			total := 20 + rng.Intn(800)
			price := 1 + rng.Intn(3)
			doc.Rating = &rating
			doc.UserRatingsTotal = &total
			doc.PriceLevel = &price
		}
		if rng.Intn(2) == 0 {
			doc.Phone = fmt.Sprintf("+44 117 %03d %04d", rng.Intn(1000), rng.Intn(10000))
		}
		if rng.Intn(2) == 0 {
			doc.Website = fmt.Sprintf("https://example.com/venue-%d", i)
		}

		docs = append(docs, doc)
	}
	return docs
}

func generateSurveys(rng *rand.Rand, venues []venueDocument, fraction float64) []surveyDocument {
	docs := make([]surveyDocument, 0, int(float64(len(venues))*fraction)+1)
	now := time.Now().UTC()

	for _, venue := range venues {
		if rng.Float64() >= fraction {
			continue
		}
		created := now.Add(-time.Duration(1+rng.Intn(30*24)) * time.Hour)
		docs = append(docs, surveyDocument{
			ID:       primitive.NewObjectID(),
			VenueID:  venue.ID,
			Surveyor: pick(rng, surveyors),
			Status:   pick(rng, surveyStatuses),
			Answers: map[string]any{
				"atmosphere":    1 + rng.Intn(5),
				"date_friendly": rng.Intn(2) == 0,
				"noise_level":   pick(rng, []string{"quiet", "moderate", "loud"}),
			},
			CreatedAt: created,
			UpdatedAt: created.Add(time.Duration(rng.Intn(120)) * time.Minute),
		})
	}
	return docs
}

// stampLastSurveyed mirrors what survey submission does: any submission,
// whatever its status, sets the venue's last_surveyed_at.
func stampLastSurveyed(venues []venueDocument, surveys []surveyDocument) {
	for _, survey := range surveys {
		for i := range venues {
			if venues[i].ID == survey.VenueID {
				ts := survey.UpdatedAt
				venues[i].LastSurveyedAt = &ts
			}
		}
	}
}

func generateWaitlist(rng *rand.Rand, count int) []any {
	docs := make([]any, 0, count)
	now := time.Now().UTC()
	for i := 0; i < count; i++ {
		docs = append(docs, bson.M{
			"email":      fmt.Sprintf("dater%03d@example.com", i),
			"created_at": now.Add(-time.Duration(rng.Intn(60*24)) * time.Hour),
		})
	}
	return docs
}

func generateContacts(rng *rand.Rand, count int) []any {
	docs := make([]any, 0, count)
	now := time.Now().UTC()
	for i := 0; i < count; i++ {
		docs = append(docs, bson.M{
			"name":       fmt.Sprintf("Test Contact %d", i),
			"email":      fmt.Sprintf("contact%02d@example.com", i),
			"message":    "Hello, I have a question about TwoTable.",
			"created_at": now.Add(-time.Duration(rng.Intn(30*24)) * time.Hour),
		})
	}
	return docs
}

func generateApplications(rng *rand.Rand, count int) []any {
	docs := make([]any, 0, count)
	now := time.Now().UTC()
	for i := 0; i < count; i++ {
		city := cityLayouts[rng.Intn(len(cityLayouts))]
		docs = append(docs, bson.M{
			"venue":      fmt.Sprintf("%s %s", pick(rng, venueNameParts.first), pick(rng, venueNameParts.second)),
			"city":       city.name,
			"type":       pick(rng, []string{"casual-dining", "cocktail-bar", "wine-bar", "pub"}),
			"contact":    fmt.Sprintf("Owner %d", i),
			"role":       "owner",
			"email":      fmt.Sprintf("venue%02d@example.com", i),
			"phone":      fmt.Sprintf("+44 20 %04d %04d", rng.Intn(10000), rng.Intn(10000)),
			"nights":     pick(rng, []string{"weeknights", "weekends", "any"}),
			"capacity":   pick(rng, []string{"20-40", "40-80", "80+"}),
			"status":     "pending_review",
			"created_at": now.Add(-time.Duration(rng.Intn(30*24)) * time.Hour),
		})
	}
	return docs
}

func generateDaterSurveys(rng *rand.Rand, count int) []any {
	docs := make([]any, 0, count)
	now := time.Now().UTC()
	for i := 0; i < count; i++ {
		docs = append(docs, bson.M{
			"email": fmt.Sprintf("dater%03d@example.com", i),
			"answers": bson.M{
				"preferred_city":   cityLayouts[rng.Intn(len(cityLayouts))].name,
				"budget":           pick(rng, []string{"low", "medium", "high"}),
				"ideal_first_date": pick(rng, []string{"drinks", "dinner", "coffee"}),
			},
			"created_at": now.Add(-time.Duration(rng.Intn(30*24)) * time.Hour),
		})
	}
	return docs
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}

func insertMany(ctx context.Context, coll *mongo.Collection, docs []any) error {
	if len(docs) == 0 {
		return nil
	}
	_, err := coll.InsertMany(ctx, docs)
	return err
}

func toAnySlice[T any](docs []T) []any {
	out := make([]any, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc)
	}
	return out
}
