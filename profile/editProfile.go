package profile

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"farm2home/db"
	"farm2home/middleware"
	"farm2home/models"
	"farm2home/mq"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// EditProfile applies a partial update to the caller's own profile. Only the
// fields present in the request body are written; the response carries the
// merged document so the caller never has to refetch.
func EditProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	claims, err := middleware.ValidateJWT(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		FullName *string `json:"fullName"`
		Role     *string `json:"role"`
		Location *string `json:"location"`
		Bio      *string `json:"bio"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	updates := bson.M{}
	if input.FullName != nil {
		updates["fullName"] = *input.FullName
	}
	if input.Role != nil {
		updates["role"] = *input.Role
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}
	if input.Bio != nil {
		updates["bio"] = *input.Bio
	}
	if len(updates) == 0 {
		http.Error(w, "No fields to update", http.StatusBadRequest)
		return
	}

	_ = InvalidateCachedProfile(claims.Username)

	res, err := db.ProfileCollection.UpdateOne(ctx, bson.M{"id": claims.UserID}, bson.M{"$set": updates})
	if err != nil {
		log.Printf("EditProfile update error for %s: %v", claims.UserID, err)
		http.Error(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}

	go mq.Emit(ctx, "profile-edited", models.Index{
		EntityType: "profile",
		EntityId:   claims.UserID,
		Method:     "PUT",
	})

	profile, err := GetProfileByID(ctx, claims.UserID)
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
