package produce

import (
	"context"
	"log"
	"net/http"
	"time"

	"farm2home/db"
	"farm2home/models"
	"farm2home/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// fetchCatalog loads every listing newest-first with its farmer profile
// joined in.
func fetchCatalog(ctx context.Context) ([]models.Produce, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.M{"createdAt": -1}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "profiles",
			"localField":   "farmerid",
			"foreignField": "id",
			"as":           "farmer",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$farmer", "preserveNullAndEmptyArrays": true}}},
	}

	cursor, err := db.ProduceCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var produces []models.Produce
	if err := cursor.All(ctx, &produces); err != nil {
		return nil, err
	}
	if len(produces) == 0 {
		produces = []models.Produce{}
	}
	return produces, nil
}

// GetProduceCatalog returns the catalog with search/location filters applied
// in memory, plus the derived city list. Filtering is pure and restartable;
// the same fetched catalog serves every keystroke's worth of parameters.
func GetProduceCatalog(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	produces, err := fetchCatalog(ctx)
	if err != nil {
		log.Println("GetProduceCatalog fetch error:", err)
		http.Error(w, "Failed to load produce listings", http.StatusInternalServerError)
		return
	}

	locations := AvailableLocations(produces)

	locationFilter := r.URL.Query().Get("location")
	if locationFilter == "mine" {
		locationFilter = defaultFilterForUser(ctx, r, locations)
	}

	filtered := FilterProduces(produces, r.URL.Query().Get("search"), locationFilter)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"items":     filtered,
		"total":     len(filtered),
		"locations": locations,
		"location":  locationFilter,
	})
}

// defaultFilterForUser seeds the location filter from the caller's profile
// location. Unauthenticated or profile-less callers get LocationAll.
func defaultFilterForUser(ctx context.Context, r *http.Request, cities []string) string {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		return LocationAll
	}

	var prof models.Profile
	if err := db.ProfileCollection.FindOne(ctx, bson.M{"id": userID}).Decode(&prof); err != nil {
		return LocationAll
	}
	return DefaultLocationFilter(prof.Location, cities)
}

// GetProduce returns a single listing with its farmer joined.
func GetProduce(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"produceid": ps.ByName("produceid")}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "profiles",
			"localField":   "farmerid",
			"foreignField": "id",
			"as":           "farmer",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$farmer", "preserveNullAndEmptyArrays": true}}},
	}

	cursor, err := db.ProduceCollection.Aggregate(ctx, pipeline)
	if err != nil {
		log.Println("GetProduce aggregate error:", err)
		http.Error(w, "Failed to fetch produce", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var produces []models.Produce
	if err := cursor.All(ctx, &produces); err != nil {
		http.Error(w, "Failed to decode produce", http.StatusInternalServerError)
		return
	}
	if len(produces) == 0 {
		http.Error(w, "Produce not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, produces[0])
}
