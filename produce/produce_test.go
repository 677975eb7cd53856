package produce

import (
	"net/http"
	"testing"
)

func TestDeleteListingStatus(t *testing.T) {
	if got := deleteListingStatus(true, 0); got != http.StatusOK {
		t.Fatalf("owned, unreferenced listing must be deletable, got %d", got)
	}
	if got := deleteListingStatus(true, 3); got != http.StatusConflict {
		t.Fatalf("referenced listing must be blocked with a conflict, got %d", got)
	}
	// a non-owner gets not-found even when orders reference the listing
	if got := deleteListingStatus(false, 3); got != http.StatusNotFound {
		t.Fatalf("non-owner must see not-found, got %d", got)
	}
	if got := deleteListingStatus(false, 0); got != http.StatusNotFound {
		t.Fatalf("missing listing must be not-found, got %d", got)
	}
}
