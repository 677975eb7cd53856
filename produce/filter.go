package produce

import (
	"sort"
	"strings"

	"farm2home/models"
	"farm2home/utils"
)

// LocationAll is the sentinel meaning "no location restriction".
const LocationAll = "all"

// FilterProduces applies the search and location filters in memory. A listing
// passes when the query matches its name or description (case-insensitive
// substring, empty query matches all) and its location contains the filter
// value (LocationAll or empty disables the location check). The input slice
// is never mutated.
func FilterProduces(produces []models.Produce, query, location string) []models.Produce {
	loc := location
	if strings.EqualFold(loc, LocationAll) {
		loc = ""
	}

	filtered := make([]models.Produce, 0, len(produces))
	for _, p := range produces {
		nameMatch := utils.ContainsIgnoreCase(p.Name, query)
		descriptionMatch := utils.ContainsIgnoreCase(p.Description, query)
		locationMatch := loc == "" || utils.ContainsIgnoreCase(p.Location, loc)

		if (nameMatch || descriptionMatch) && locationMatch {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// AvailableLocations derives the distinct city list from listing locations:
// the first comma-segment of each, trimmed, blanks excluded, sorted.
func AvailableLocations(produces []models.Produce) []string {
	seen := make(map[string]bool)
	cities := []string{}
	for _, p := range produces {
		city := strings.TrimSpace(strings.Split(p.Location, ",")[0])
		if city == "" || seen[city] {
			continue
		}
		seen[city] = true
		cities = append(cities, city)
	}
	sort.Strings(cities)
	return cities
}

// DefaultLocationFilter seeds the location filter from a profile location
// when its city is one of the available cities. Returns LocationAll
// otherwise.
func DefaultLocationFilter(profileLocation string, cities []string) string {
	city := strings.TrimSpace(strings.Split(profileLocation, ",")[0])
	if city == "" {
		return LocationAll
	}
	for _, c := range cities {
		if strings.EqualFold(c, city) {
			return c
		}
	}
	return LocationAll
}
