// internal/data/weak_heads.go
package data

// weakHeadNouns is the curated set of abstract head nouns that make a phrase
// hard to act out or draw. A phrase whose tokens include one of these
// (especially as the final, head-noun position) takes the describability
// penalty. Keep entries lowercase.
var weakHeadNouns = map[string]struct{}{
	"strategy":    {},
	"vibe":        {},
	"vibes":       {},
	"culture":     {},
	"energy":      {},
	"moment":      {},
	"concept":     {},
	"approach":    {},
	"mindset":     {},
	"dynamic":     {},
	"dynamics":    {},
	"paradigm":    {},
	"process":     {},
	"situation":   {},
	"experience":  {},
	"journey":     {},
	"aesthetic":   {},
	"lifestyle":   {},
	"attitude":    {},
	"awareness":   {},
	"perspective": {},
	"phenomenon":  {},
	"initiative":  {},
	"framework":   {},
	"synergy":     {},
	"agenda":      {},
	"context":     {},
	"narrative":   {},
	"discourse":   {},
	"notion":      {},
	"essence":     {},
	"presence":    {},
	"potential":   {},
	"momentum":    {},
	"trend":       {},
	"factor":      {},
	"aspect":      {},
	"element":     {},
	"dimension":   {},
	"principle":   {},
	"ideology":    {},
	"mentality":   {},
	"sentiment":   {},
	"ambiance":    {},
	"atmosphere":  {},
	"spirit":      {},
	"theme":       {},
	"motif":       {},
	"ethos":       {},
	"zeitgeist":   {},
}

// IsWeakHeadNoun reports whether word is in the abstract head-noun set.
// The word must already be lowercase.
func IsWeakHeadNoun(word string) bool {
	_, ok := weakHeadNouns[word]
	return ok
}

// WeakHeadNounCount returns the size of the weak-head set, for corpus stats.
func WeakHeadNounCount() int {
	return len(weakHeadNouns)
}
