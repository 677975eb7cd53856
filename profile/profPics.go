package profile

import (
	"log"
	"net/http"

	"farm2home/db"
	"farm2home/middleware"
	"farm2home/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var avatarDir = "./static/userpic"

// UploadAvatar stores a new profile picture (plus thumbnail) and points the
// caller's profile at it.
func UploadAvatar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, err := middleware.ValidateJWT(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Unable to parse form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		http.Error(w, "Avatar file missing", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !utils.ValidateImageFileType(w, header) {
		return
	}

	avatarURL, err := utils.SaveImageWithThumb(file, avatarDir, "/static/userpic")
	if err != nil {
		log.Printf("UploadAvatar save error: %v", err)
		http.Error(w, "Unable to save file", http.StatusInternalServerError)
		return
	}

	_ = InvalidateCachedProfile(claims.Username)

	_, err = db.ProfileCollection.UpdateOne(r.Context(),
		bson.M{"id": claims.UserID},
		bson.M{"$set": bson.M{"avatar": avatarURL}},
	)
	if err != nil {
		log.Printf("UploadAvatar update error for %s: %v", claims.UserID, err)
		http.Error(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"avatar": avatarURL})
}
