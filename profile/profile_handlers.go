package profile

import (
	"context"
	"errors"
	"net/http"

	"farm2home/db"
	"farm2home/middleware"
	"farm2home/models"
	"farm2home/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetProfile returns the authenticated user's own profile. A cached copy is
// served when present; pass ?refresh=1 to force a refetch.
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, err := middleware.ValidateJWT(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if r.URL.Query().Get("refresh") != "1" {
		if cachedJSON, err := GetCachedProfile(claims.Username); err == nil && cachedJSON != "" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cachedJSON))
			return
		}
	}

	profile, err := GetProfileByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.Error(w, "Profile not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	cacheAndRespond(w, claims.Username, profile)
}

// GetUserProfile returns another user's public profile by profile id.
func GetUserProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	profile, err := GetProfileByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.Error(w, "Profile not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, profile)
}

func GetProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	err := db.ProfileCollection.FindOne(ctx, bson.M{"id": id}).Decode(&profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
