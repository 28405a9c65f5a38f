package common

import "strings"

// CanonicalVenueType maps the free-ish venue type strings arriving from the
// partner application form onto the canonical codes the review dashboard
// filters by. Unrecognized input passes through trimmed so new types are not
// silently dropped.
func CanonicalVenueType(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}

	switch strings.ToLower(strings.ReplaceAll(trimmed, " ", "-")) {
	case "fine-dining", "finedining":
		return "fine-dining"
	case "casual-dining", "casual":
		return "casual-dining"
	case "bistro":
		return "bistro"
	case "cocktail-bar", "cocktails":
		return "cocktail-bar"
	case "wine-bar":
		return "wine-bar"
	case "pub", "gastropub", "gastro-pub":
		return "pub"
	case "cafe", "café", "coffee-shop":
		return "cafe"
	}
	return trimmed
}
