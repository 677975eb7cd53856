package produce

import "strings"

// ListingInput carries the submitted form fields of a create/update.
type ListingInput struct {
	Name        string
	Description string
	Price       float64
	Location    string
}

// ValidateListing checks the field constraints before anything touches the
// database: name >= 2 chars, description >= 10 chars, price > 0,
// location >= 2 chars. Returns a per-field error map, empty when valid.
func ValidateListing(in ListingInput) map[string]string {
	errs := map[string]string{}
	if len(strings.TrimSpace(in.Name)) < 2 {
		errs["name"] = "Name must be at least 2 characters"
	}
	if len(strings.TrimSpace(in.Description)) < 10 {
		errs["description"] = "Description must be at least 10 characters"
	}
	if in.Price <= 0 {
		errs["price"] = "Price must be a positive number"
	}
	if len(strings.TrimSpace(in.Location)) < 2 {
		errs["location"] = "Location must be at least 2 characters"
	}
	return errs
}
