package produce

import (
	"reflect"
	"testing"

	"farm2home/models"
)

func listing(name, desc, location string) models.Produce {
	return models.Produce{Name: name, Description: desc, Location: location}
}

func names(produces []models.Produce) []string {
	out := make([]string, 0, len(produces))
	for _, p := range produces {
		out = append(out, p.Name)
	}
	return out
}

func catalogFixture() []models.Produce {
	return []models.Produce{
		listing("Carrot", "Fresh organic carrots", "Pune, Maharashtra"),
		listing("Tomato", "Vine ripened", "Pune, Maharashtra"),
		listing("Mango", "Alphonso, tree ripened", "Goa"),
	}
}

func TestFilterProducesByQuery(t *testing.T) {
	got := FilterProduces(catalogFixture(), "to", LocationAll)
	if !reflect.DeepEqual(names(got), []string{"Tomato"}) {
		t.Fatalf("expected [Tomato], got %v", names(got))
	}
}

func TestFilterProducesQueryMatchesDescription(t *testing.T) {
	got := FilterProduces(catalogFixture(), "ripened", LocationAll)
	if len(got) != 2 {
		t.Fatalf("expected description matches for Tomato and Mango, got %v", names(got))
	}
}

func TestFilterProducesByLocation(t *testing.T) {
	got := FilterProduces(catalogFixture(), "", "Goa")
	if !reflect.DeepEqual(names(got), []string{"Mango"}) {
		t.Fatalf("expected [Mango], got %v", names(got))
	}
}

func TestFilterProducesQueryAndLocationCombine(t *testing.T) {
	got := FilterProduces(catalogFixture(), "ripened", "Pune")
	if !reflect.DeepEqual(names(got), []string{"Tomato"}) {
		t.Fatalf("expected [Tomato], got %v", names(got))
	}
}

func TestFilterProducesDoesNotMutateInput(t *testing.T) {
	in := catalogFixture()
	FilterProduces(in, "carrot", "Pune")
	if len(in) != 3 {
		t.Fatalf("input slice was mutated, len %d", len(in))
	}
}

func TestAvailableLocations(t *testing.T) {
	in := append(catalogFixture(), listing("Beet", "Earthy", ""))
	got := AvailableLocations(in)
	want := []string{"Goa", "Pune"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDefaultLocationFilter(t *testing.T) {
	cities := []string{"Goa", "Pune"}
	if got := DefaultLocationFilter("Pune, Maharashtra", cities); got != "Pune" {
		t.Fatalf("expected profile city to seed filter, got %q", got)
	}
	if got := DefaultLocationFilter("Nagpur, Maharashtra", cities); got != LocationAll {
		t.Fatalf("expected fallback to %q, got %q", LocationAll, got)
	}
	if got := DefaultLocationFilter("", cities); got != LocationAll {
		t.Fatalf("expected empty profile to fall back, got %q", got)
	}
}
