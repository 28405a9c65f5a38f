package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultOverpassURL = "https://overpass-api.de/api/interpreter"
	amenityRegex       = "^(restaurant|fast_food|bar|pub|cafe|biergarten|food_court|nightclub)$"
)

// bbox is (south, west, north, east).
type bbox struct {
	south, west, north, east float64
}

var cityBBoxes = map[string]bbox{
	"Bristol": {51.35, -2.75, 51.55, -2.45},
	"London":  {51.25, -0.55, 51.75, 0.35},
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat"`
	Lon    *float64          `json:"lon"`
	Center *overpassCenter   `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type overpassCenter struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// markdownLinkPattern matches "[text](target)" values that occasionally show
// up in OSM contact tags.
var markdownLinkPattern = regexp.MustCompile(`^\[.*?\]\((.*?)\)`)

func main() {
	var (
		city        string
		overpassURL string
		dryRun      bool
	)
	flag.StringVar(&city, "city", "Bristol", "city to import (Bristol or London)")
	flag.StringVar(&overpassURL, "overpass", defaultOverpassURL, "Overpass API endpoint")
	flag.BoolVar(&dryRun, "dry-run", false, "fetch and report without writing to MongoDB")
	flag.Parse()

	box, ok := cityBBoxes[city]
	if !ok {
		log.Fatalf("unknown city %q, expected one of: Bristol, London", city)
	}

	logger := log.New(os.Stdout, "[twotable-osmimport] ", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	logger.Printf("querying Overpass for %s venues, this may take a while", city)
	elements, err := fetchOverpass(ctx, overpassURL, buildOverpassQuery(box))
	if err != nil {
		logger.Fatalf("Overpass query failed: %v", err)
	}
	logger.Printf("fetched %d raw elements", len(elements))

	now := time.Now().UTC()
	docs := make([]bson.M, 0, len(elements))
	for _, el := range elements {
		docs = append(docs, elementToDocument(el, city, now))
	}

	if dryRun {
		logger.Printf("dry run: prepared %d documents, skipping write", len(docs))
		return
	}

	mongoURI := envOrDefault("MONGO_URI", "mongodb://localhost:27017")
	dbName := envOrDefault("MONGO_DB", "twotable")
	collectionName := envOrDefault("VENUE_COLLECTION", "venues")

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logger.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	coll := client.Database(dbName).Collection(collectionName)
	changed, err := upsertDocuments(ctx, coll, docs)
	if err != nil {
		logger.Fatalf("failed to upsert documents: %v", err)
	}

	logger.Printf("upserted %d documents into %s/%s", changed, dbName, collectionName)
}

func buildOverpassQuery(box bbox) string {
	coords := fmt.Sprintf("(%g,%g,%g,%g)", box.south, box.west, box.north, box.east)
	var builder strings.Builder
	builder.WriteString("[out:json][timeout:300][maxsize:1073741824];\n(\n")
	for _, kind := range []string{"node", "way", "relation"} {
		builder.WriteString(fmt.Sprintf("  %s[\"amenity\"~%q]%s;\n", kind, amenityRegex, coords))
	}
	builder.WriteString(");\nout center tags;\n")
	return builder.String()
}

func fetchOverpass(ctx context.Context, endpoint, query string) ([]overpassElement, error) {
	params := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		message, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
		return nil, fmt.Errorf("overpass responded with status=%d body=%s", res.StatusCode, strings.TrimSpace(string(message)))
	}

	var parsed overpassResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode Overpass response: %w", err)
	}
	return parsed.Elements, nil
}

// cleanMarkdownLink converts "[text](mailto:foo@bar.com)" into "foo@bar.com".
func cleanMarkdownLink(value string) string {
	m := markdownLinkPattern.FindStringSubmatch(value)
	if m == nil {
		return value
	}
	return strings.TrimPrefix(m[1], "mailto:")
}

func extractCoords(el overpassElement) (*float64, *float64) {
	if el.Lat != nil && el.Lon != nil {
		return el.Lat, el.Lon
	}
	if el.Center != nil {
		return el.Center.Lat, el.Center.Lon
	}
	return nil, nil
}

func elementToDocument(el overpassElement, city string, fetchedAt time.Time) bson.M {
	tags := el.Tags
	if tags == nil {
		tags = map[string]string{}
	}

	cleaned := make(map[string]string, len(tags))
	for k, v := range tags {
		cleaned[k] = cleanMarkdownLink(v)
	}

	email := firstNonEmpty(cleaned["contact:email"], cleaned["email"])
	phone := firstNonEmpty(tags["contact:phone"], tags["phone"])

	lat, lon := extractCoords(el)

	doc := bson.M{
		"city":        city,
		"zone":        cleaned["addr:suburb"],
		"name":        cleaned["name"],
		"amenity":     cleaned["amenity"],
		"email":       email,
		"website":     cleaned["website"],
		"phone":       phone,
		"street":      cleaned["addr:street"],
		"housenumber": cleaned["addr:housenumber"],
		"postcode":    cleaned["addr:postcode"],
		"lat":         lat,
		"lon":         lon,
		"osm_type":    el.Type,
		"osm_id":      el.ID,
		"raw_tags":    cleaned,
		"fetched_at":  fetchedAt,
	}
	return doc
}

func upsertDocuments(ctx context.Context, coll *mongo.Collection, docs []bson.M) (int64, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	models := make([]mongo.WriteModel, 0, len(docs))
	for _, doc := range docs {
		filter := bson.M{"osm_type": doc["osm_type"], "osm_id": doc["osm_id"]}
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(filter).
			SetUpdate(bson.M{"$set": doc}).
			SetUpsert(true))
	}

	result, err := coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, err
	}
	return result.UpsertedCount + result.ModifiedCount, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
