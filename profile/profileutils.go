package profile

import (
	"encoding/json"
	"net/http"
	"time"

	"farm2home/models"
	"farm2home/rdx"
)

// Cached profiles expire on their own so a stale entry never outlives a
// missed invalidation for long.
const profileCacheTTL = 10 * time.Minute

func CacheProfile(username string, profileJSON string) error {
	return rdx.SetWithExpiry("profile:"+username, profileJSON, profileCacheTTL)
}

func GetCachedProfile(username string) (string, error) {
	return rdx.RdxGet("profile:" + username)
}

func InvalidateCachedProfile(username string) error {
	_, err := rdx.RdxDel("profile:" + username)
	return err
}

// cacheAndRespond writes the profile as JSON and stores the same bytes in the
// Redis cache. Cache writes are best effort.
func cacheAndRespond(w http.ResponseWriter, username string, profile *models.Profile) {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		http.Error(w, "Failed to encode profile", http.StatusInternalServerError)
		return
	}
	_ = CacheProfile(username, string(profileJSON))

	w.Header().Set("Content-Type", "application/json")
	w.Write(profileJSON)
}
