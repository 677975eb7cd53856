package produce

import "testing"

func TestValidateListingAccepts(t *testing.T) {
	errs := ValidateListing(ListingInput{
		Name:        "Carrots",
		Description: "Fresh organic carrots from the field",
		Price:       2.50,
		Location:    "Pune, Maharashtra",
	})
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateListingRejectsEachField(t *testing.T) {
	errs := ValidateListing(ListingInput{
		Name:        "C",
		Description: "too short",
		Price:       0,
		Location:    " ",
	})
	for _, field := range []string{"name", "description", "price", "location"} {
		if errs[field] == "" {
			t.Fatalf("expected error for %s, got %v", field, errs)
		}
	}
}

func TestValidateListingRejectsNegativePrice(t *testing.T) {
	errs := ValidateListing(ListingInput{
		Name:        "Beetroot",
		Description: "Earthy and sweet, freshly dug",
		Price:       -1,
		Location:    "Goa",
	})
	if errs["price"] == "" {
		t.Fatalf("expected price error, got %v", errs)
	}
	if len(errs) != 1 {
		t.Fatalf("expected only the price error, got %v", errs)
	}
}

func TestValidateListingWhitespaceOnlyName(t *testing.T) {
	errs := ValidateListing(ListingInput{
		Name:        "   ",
		Description: "Perfectly fine description here",
		Price:       1,
		Location:    "Pune",
	})
	if errs["name"] == "" {
		t.Fatalf("expected name error, got %v", errs)
	}
}
