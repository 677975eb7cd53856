package produce

import (
	"context"
	"log"
	"net/http"
	"time"

	"farm2home/db"
	"farm2home/models"
	"farm2home/mq"
	"farm2home/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var produceImageDir = "./static/producepic"

// CreateProduce inserts a new listing owned by the calling farmer. The image
// upload (when present) must complete before the listing row is written; an
// upload failure aborts the whole operation.
func CreateProduce(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if role := utils.GetRoleFromRequest(r); role != models.RoleFarmer {
		http.Error(w, "Only farmers can list produce", http.StatusForbidden)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	input := ListingInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       utils.ParseFloat(r.FormValue("price")),
		Location:    r.FormValue("location"),
	}

	// Fall back to the farmer's profile location when the form omits one.
	if input.Location == "" {
		var prof models.Profile
		if err := db.ProfileCollection.FindOne(ctx, bson.M{"id": userID}).Decode(&prof); err == nil {
			input.Location = prof.Location
		}
	}

	if errs := ValidateListing(input); len(errs) > 0 {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"errors": errs})
		return
	}

	imageURL, ok := saveListingImage(w, r)
	if !ok {
		return
	}

	item := models.Produce{
		ProduceID:   "p" + utils.GenerateID(12),
		FarmerID:    userID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    imageURL,
		Location:    input.Location,
		CreatedAt:   time.Now(),
	}

	if _, err := db.ProduceCollection.InsertOne(ctx, item); err != nil {
		log.Println("CreateProduce insert error:", err)
		http.Error(w, "Failed to insert produce", http.StatusInternalServerError)
		return
	}

	go mq.Emit(ctx, "produce-created", models.Index{
		EntityType: "produce",
		EntityId:   userID,
		ItemId:     item.ProduceID,
		Method:     "POST",
	})

	utils.RespondWithJSON(w, http.StatusCreated, item)
}

// UpdateProduce edits a listing owned by the caller. A newly uploaded image
// replaces the stored reference; without one the prior reference is kept.
func UpdateProduce(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	produceID := ps.ByName("produceid")

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	input := ListingInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       utils.ParseFloat(r.FormValue("price")),
		Location:    r.FormValue("location"),
	}
	if errs := ValidateListing(input); len(errs) > 0 {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"errors": errs})
		return
	}

	imageURL, ok := saveListingImage(w, r)
	if !ok {
		return
	}

	updates := bson.M{
		"name":        input.Name,
		"description": input.Description,
		"price":       input.Price,
		"location":    input.Location,
	}
	if imageURL != "" {
		updates["imageUrl"] = imageURL
	}

	res, err := db.ProduceCollection.UpdateOne(ctx,
		bson.M{"produceid": produceID, "farmerid": userID},
		bson.M{"$set": updates},
	)
	if err != nil {
		log.Println("UpdateProduce update error:", err)
		http.Error(w, "Failed to update produce", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Produce not found", http.StatusNotFound)
		return
	}

	go mq.Emit(ctx, "produce-edited", models.Index{
		EntityType: "produce",
		EntityId:   userID,
		ItemId:     produceID,
		Method:     "PUT",
	})

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// deleteListingStatus decides the delete outcome. Ownership is resolved
// before the referential guard, so a non-owner gets a plain not-found and
// learns nothing about another farmer's order history.
func deleteListingStatus(owned bool, orderRefs int64) int {
	switch {
	case !owned:
		return http.StatusNotFound
	case orderRefs > 0:
		return http.StatusConflict
	default:
		return http.StatusOK
	}
}

// DeleteProduce removes a listing owned by the caller, unless any order
// references it. The referential check runs before the delete and a hit
// aborts with a conflict distinct from a generic failure.
func DeleteProduce(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	produceID := ps.ByName("produceid")

	owned, err := db.ProduceCollection.CountDocuments(ctx, bson.M{"produceid": produceID, "farmerid": userID})
	if err != nil {
		log.Println("DeleteProduce ownership check error:", err)
		http.Error(w, "Failed to delete produce", http.StatusInternalServerError)
		return
	}
	refs, err := db.OrderCollection.CountDocuments(ctx, bson.M{"produceid": produceID})
	if err != nil {
		log.Println("DeleteProduce order check error:", err)
		http.Error(w, "Failed to delete produce", http.StatusInternalServerError)
		return
	}

	switch deleteListingStatus(owned > 0, refs) {
	case http.StatusNotFound:
		http.Error(w, "Produce not found", http.StatusNotFound)
		return
	case http.StatusConflict:
		utils.RespondWithError(w, http.StatusConflict,
			"Cannot delete produce that has existing orders. This would break order history for customers.")
		return
	}

	res, err := db.ProduceCollection.DeleteOne(ctx, bson.M{"produceid": produceID, "farmerid": userID})
	if err != nil {
		log.Println("DeleteProduce delete error:", err)
		http.Error(w, "Failed to delete produce", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Produce not found", http.StatusNotFound)
		return
	}

	go mq.Emit(ctx, "produce-deleted", models.Index{
		EntityType: "produce",
		EntityId:   userID,
		ItemId:     produceID,
		Method:     "DELETE",
	})

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GetMyProduce returns the caller's own listings, newest first.
func GetMyProduce(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	cursor, err := db.ProduceCollection.Find(ctx, bson.M{"farmerid": userID})
	if err != nil {
		log.Println("GetMyProduce find error:", err)
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
		produces = []models.Produce{}
	}

	utils.RespondWithJSON(w, http.StatusOK, produces)
}

// saveListingImage stores an optional uploaded image and reports the public
// URL. The boolean is false when a response has already been written.
func saveListingImage(w http.ResponseWriter, r *http.Request) (string, bool) {
	file, header, err := r.FormFile("image")
	if err != nil {
		return "", true // no image submitted
	}
	defer file.Close()

	if !utils.ValidateImageFileType(w, header) {
		return "", false
	}

	imageURL, err := utils.SaveImageWithThumb(file, produceImageDir, "/static/producepic")
	if err != nil {
		log.Println("saveListingImage error:", err)
		http.Error(w, "Failed to upload image", http.StatusInternalServerError)
		return "", false
	}
	return imageURL, true
}
