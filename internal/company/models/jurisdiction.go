package models

import "strings"

// ukKeywords marks a registration as resolvable through the domestic
// registry. Case-insensitive substring match against country or place of
// registration.
var ukKeywords = []string{
	"united kingdom",
	"england",
	"wales",
	"scotland",
	"northern ireland",
	"companies house",
	"great britain",
}

// Recursable decides whether a controller's identification denotes a
// same-registry corporate entity the traversal can descend into.
//
// Policy, in order: no registration number means nothing to recurse on; a UK
// keyword in country or place of registration means recursable; neither
// field present falls back to assumeDomestic (a heuristic assumption, not a
// verified fact); anything else is a foreign registration and terminates the
// branch as an informational leaf.
func Recursable(ident *Identification, assumeDomestic bool) bool {
	if ident == nil || strings.TrimSpace(ident.RegistrationNumber) == "" {
		return false
	}

	country := strings.TrimSpace(ident.CountryRegistered)
	place := strings.TrimSpace(ident.PlaceRegistered)

	if containsUKKeyword(country) || containsUKKeyword(place) {
		return true
	}
	if country == "" && place == "" {
		return assumeDomestic
	}
	return false
}

func containsUKKeyword(field string) bool {
	if field == "" {
		return false
	}
	lower := strings.ToLower(field)
	for _, kw := range ukKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
