// internal/data/concreteness.go
package data

// concretenessNorms is a compact built-in sample of word concreteness
// ratings (1.0 = fully abstract, 5.0 = fully concrete), in the style of the
// Brysbaert norms. It covers everyday party-game vocabulary so the service
// scores sensibly when no norms file is configured; a full norms file
// replaces it entirely via corpus configuration.
var concretenessNorms = map[string]float64{
	// Highly concrete (4.0+): things you can see, touch, or point at
	"pizza": 4.93, "burger": 4.89, "taco": 4.86, "sushi": 4.75,
	"chocolate": 4.90, "coffee": 4.93, "donut": 4.92, "pancake": 4.90,
	"sandwich": 4.93, "cheese": 4.95, "bacon": 4.93, "cookie": 4.93,
	"popcorn": 4.96, "cake": 4.93, "candy": 4.83, "bread": 4.93,
	"milk": 4.92, "juice": 4.89, "apple": 5.00, "egg": 4.97,
	"dog": 4.85, "cat": 4.86, "bird": 4.89, "fish": 4.87,
	"horse": 4.93, "cow": 4.89, "pig": 4.89, "lion": 4.90,
	"elephant": 4.93, "penguin": 4.93, "shark": 4.82, "dolphin": 4.89,
	"dinosaur": 4.79, "butterfly": 4.93, "spider": 4.93, "snake": 4.86,
	"car": 4.87, "truck": 4.93, "train": 4.82, "plane": 4.79,
	"boat": 4.93, "bike": 4.90, "bus": 4.86, "rocket": 4.68,
	"house": 4.90, "door": 4.93, "window": 4.89, "chair": 4.98,
	"table": 4.90, "bed": 4.89, "phone": 4.89, "computer": 4.72,
	"television": 4.83, "camera": 4.86, "guitar": 4.96, "piano": 4.93,
	"drum": 4.86, "ball": 4.93, "bat": 4.93, "glove": 4.93,
	"shoe": 4.93, "hat": 4.93, "shirt": 4.93, "dress": 4.79,
	"sock": 4.93, "umbrella": 4.89, "pillow": 4.93, "blanket": 4.89,
	"water": 4.89, "rain": 4.76, "snow": 4.86, "fire": 4.66,
	"tree": 5.00, "flower": 4.93, "grass": 4.93, "rock": 4.72,
	"mountain": 4.79, "river": 4.83, "ocean": 4.76, "beach": 4.79,
	"sun": 4.83, "moon": 4.90, "star": 4.48, "cloud": 4.66,
	"rainbow": 4.55, "volcano": 4.72, "tower": 4.72, "bridge": 4.79,
	"castle": 4.72, "pyramid": 4.66, "robot": 4.55, "zombie": 4.21,
	"pirate": 4.45, "clown": 4.66, "doctor": 4.55, "teacher": 4.48,
	"baby": 4.90, "hand": 4.86, "head": 4.79, "foot": 4.90,
	"eye": 4.86, "nose": 4.93, "mouth": 4.86, "hair": 4.93,
	"delivery": 4.07, "kitchen": 4.76, "garden": 4.62, "school": 4.34,
	"hospital": 4.59, "airport": 4.60, "restaurant": 4.62, "zoo": 4.66,
	"circus": 4.38, "parade": 4.28, "wedding": 4.21, "birthday": 3.93,

	// Mid-band (3.0-3.9): perceivable but less tangible
	"party": 3.86, "music": 3.83, "song": 3.93, "dance": 3.93,
	"game": 3.62, "movie": 3.93, "sport": 3.72, "race": 3.76,
	"trip": 3.55, "vacation": 3.66, "morning": 3.41, "night": 3.90,
	"winter": 3.66, "summer": 3.62, "weather": 3.59, "noise": 3.62,
	"smell": 3.72, "taste": 3.79, "color": 3.76, "shape": 3.52,
	"team": 3.45, "crowd": 3.97, "family": 3.90, "friend": 3.90,
	"job": 3.34, "money": 3.93, "gift": 3.90, "prize": 3.79,
	"secret": 3.03, "joke": 3.34, "story": 3.28, "news": 3.28,

	// Abstract (< 3.0): the describability dead zone
	"strategy": 2.33, "marketing": 2.79, "culture": 2.32, "energy": 2.93,
	"vibe": 1.86, "moment": 2.41, "concept": 1.93, "approach": 2.38,
	"mindset": 1.97, "paradigm": 1.72, "process": 2.52, "situation": 2.10,
	"experience": 2.38, "journey": 2.83, "attitude": 2.07, "awareness": 1.93,
	"perspective": 2.07, "idea": 1.61, "freedom": 1.89, "justice": 1.66,
	"truth": 1.96, "hope": 1.66, "love": 2.07, "fear": 2.24,
	"success": 2.00, "failure": 2.07, "quality": 2.07, "value": 2.03,
	"theory": 1.86, "research": 2.59, "analysis": 2.14, "management": 2.28,
	"administration": 2.27, "procedure": 2.48, "policy": 2.17, "system": 2.52,
	"method": 2.21, "logic": 1.86, "wisdom": 1.76, "knowledge": 2.03,
	"opinion": 1.93, "belief": 1.69, "purpose": 1.79, "meaning": 1.72,
	"philosophy": 1.83, "economy": 2.38, "politics": 2.31, "religion": 2.14,
	"pharmaceutical": 2.86, "synergy": 1.66, "momentum": 2.28, "trend": 2.24,
}

// ConcretenessNorms returns the built-in norms table. Callers must treat the
// map as read-only.
func ConcretenessNorms() map[string]float64 {
	return concretenessNorms
}
