// internal/data/proper_nouns.go
package data

// knownBrands lists brand and organization names recognized by the
// describability proper-noun detector. Matching runs on the lowercased
// phrase; the bonus itself still requires the detector's casing checks
// for pattern-based matches, but list membership alone is a sufficient
// signal regardless of how the submitter cased it.
var knownBrands = map[string]struct{}{
	"mcdonalds":   {},
	"mcdonald's":  {},
	"nike":        {},
	"apple":       {},
	"coca cola":   {},
	"coca-cola":   {},
	"google":      {},
	"disney":      {},
	"netflix":     {},
	"starbucks":   {},
	"lego":        {},
	"toyota":      {},
	"amazon":      {},
	"microsoft":   {},
	"samsung":     {},
	"adidas":      {},
	"pepsi":       {},
	"ikea":        {},
	"nintendo":    {},
	"playstation": {},
	"xbox":        {},
	"spotify":     {},
	"instagram":   {},
	"facebook":    {},
	"tiktok":      {},
	"youtube":     {},
	"walmart":     {},
	"target":      {},
	"ferrari":     {},
	"rolex":       {},
}

// knownPlaces lists place names for the proper-noun detector.
var knownPlaces = map[string]struct{}{
	"paris":         {},
	"london":        {},
	"new york":      {},
	"tokyo":         {},
	"hawaii":        {},
	"egypt":         {},
	"brazil":        {},
	"texas":         {},
	"california":    {},
	"rome":          {},
	"vegas":         {},
	"las vegas":     {},
	"hollywood":     {},
	"disneyland":    {},
	"mount everest": {},
	"amazon river":  {},
	"sahara":        {},
	"antarctica":    {},
	"australia":     {},
	"canada":        {},
	"mexico":        {},
	"india":         {},
	"china":         {},
	"japan":         {},
	"france":        {},
	"italy":         {},
}

// honorifics are title words that, followed by a capitalized word, mark a
// personal name ("Dr Phil", "Queen Elizabeth"). Lowercase, no trailing dot.
var honorifics = map[string]struct{}{
	"dr":        {},
	"mr":        {},
	"mrs":       {},
	"ms":        {},
	"sir":       {},
	"president": {},
	"captain":   {},
	"king":      {},
	"queen":     {},
	"prince":    {},
	"princess":  {},
	"lady":      {},
	"lord":      {},
	"saint":     {},
	"professor": {},
	"coach":     {},
	"judge":     {},
	"general":   {},
}

// IsHonorific reports whether the lowercased word is a title word.
func IsHonorific(word string) bool {
	_, ok := honorifics[word]
	return ok
}

// KnownBrandTerms returns the brand list for matcher construction.
func KnownBrandTerms() []string {
	terms := make([]string, 0, len(knownBrands))
	for term := range knownBrands {
		terms = append(terms, term)
	}
	return terms
}

// KnownPlaceTerms returns the place list for matcher construction.
func KnownPlaceTerms() []string {
	terms := make([]string, 0, len(knownPlaces))
	for term := range knownPlaces {
		terms = append(terms, term)
	}
	return terms
}
