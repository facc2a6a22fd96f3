// internal/data/common_words.go
package data

// commonWords is a curated top-frequency English word list used by the
// legacy heuristics scorer: membership marks a word as maximally simple.
// Drawn from standard frequency lists, trimmed to everyday vocabulary a
// party-game player would use without thinking.
var commonWords = map[string]struct{}{
	// Function words
	"the": {}, "of": {}, "and": {}, "a": {}, "to": {}, "in": {}, "is": {},
	"you": {}, "that": {}, "it": {}, "he": {}, "she": {}, "was": {}, "for": {},
	"on": {}, "are": {}, "as": {}, "with": {}, "his": {}, "her": {}, "they": {},
	"at": {}, "be": {}, "this": {}, "have": {}, "from": {}, "or": {}, "had": {},
	"by": {}, "not": {}, "but": {}, "what": {}, "all": {}, "when": {}, "we": {},
	"there": {}, "can": {}, "an": {}, "your": {}, "which": {}, "their": {},
	"if": {}, "do": {}, "will": {}, "up": {}, "out": {}, "so": {}, "my": {},
	"no": {}, "its": {},

	// Everyday verbs
	"go": {}, "see": {}, "run": {}, "eat": {}, "play": {}, "jump": {},
	"walk": {}, "talk": {}, "sing": {}, "dance": {}, "swim": {}, "read": {},
	"write": {}, "sleep": {}, "drink": {}, "drive": {}, "ride": {}, "fly": {},
	"throw": {}, "catch": {}, "kick": {}, "push": {}, "pull": {}, "open": {},
	"close": {}, "make": {}, "take": {}, "give": {}, "get": {}, "put": {},
	"look": {}, "find": {}, "call": {}, "work": {}, "help": {}, "laugh": {},
	"cry": {}, "smile": {}, "wash": {}, "cook": {}, "buy": {}, "sell": {},

	// Everyday nouns
	"dog": {}, "cat": {}, "car": {}, "house": {}, "tree": {}, "water": {},
	"food": {}, "ball": {}, "book": {}, "door": {}, "hand": {}, "head": {},
	"eye": {}, "foot": {}, "day": {}, "night": {}, "sun": {}, "moon": {},
	"star": {}, "rain": {}, "snow": {}, "fire": {}, "man": {}, "woman": {},
	"boy": {}, "girl": {}, "baby": {}, "mom": {}, "dad": {}, "friend": {},
	"school": {}, "home": {}, "bed": {}, "chair": {}, "table": {}, "phone": {},
	"money": {}, "game": {}, "song": {}, "movie": {}, "street": {}, "city": {},
	"beach": {}, "park": {}, "store": {}, "shoe": {}, "hat": {}, "shirt": {},
	"milk": {}, "bread": {}, "apple": {}, "egg": {}, "fish": {}, "bird": {},
	"horse": {}, "cow": {}, "pig": {}, "mouse": {}, "bear": {}, "lion": {},
	"cake": {}, "candy": {}, "pizza": {}, "ice": {}, "cream": {}, "juice": {},
	"train": {}, "plane": {}, "boat": {}, "bike": {}, "bus": {}, "truck": {},
	"box": {}, "bag": {}, "cup": {}, "plate": {}, "key": {}, "clock": {},
	"light": {}, "music": {}, "dream": {}, "party": {}, "team": {},

	// Everyday adjectives
	"big": {}, "small": {}, "red": {}, "blue": {}, "green": {}, "yellow": {},
	"black": {}, "white": {}, "hot": {}, "cold": {}, "new": {}, "old": {},
	"good": {}, "bad": {}, "happy": {}, "sad": {}, "fast": {}, "slow": {},
	"tall": {}, "short": {}, "long": {}, "loud": {}, "quiet": {}, "soft": {},
	"hard": {}, "funny": {}, "scary": {}, "sweet": {}, "dirty": {},
	"clean": {}, "wet": {}, "dry": {}, "full": {}, "empty": {}, "nice": {},
}

// IsCommonWord reports whether the lowercased word is in the top-frequency
// list.
func IsCommonWord(word string) bool {
	_, ok := commonWords[word]
	return ok
}

// CommonWordCount returns the size of the common word list, for stats.
func CommonWordCount() int {
	return len(commonWords)
}
