// internal/data/categories.go
package data

// CategoryTerms pairs a game category with its curated match terms.
// Order matters: the cultural scorer awards the boost to the first category
// that matches, so broader categories come later.
type CategoryTerms struct {
	Name  string
	Terms []string
}

// defaultCategories is the built-in category pattern set used when no
// category file is configured. Terms are lowercase; multi-word terms match
// as whole sub-phrases, single words match on word boundaries.
var defaultCategories = []CategoryTerms{
	{
		Name: "pop_culture",
		Terms: []string{
			"taylor swift", "beyonce", "drake", "rihanna", "adele",
			"kanye west", "lady gaga", "michael jackson", "elvis", "madonna",
			"kardashian", "star wars", "harry potter", "marvel", "batman",
			"superman", "spiderman", "disney", "pixar", "netflix",
			"tiktok", "youtube", "grammy", "oscar", "hollywood",
			"superhero", "blockbuster", "celebrity", "concert", "album",
		},
	},
	{
		Name: "food_drink",
		Terms: []string{
			"pizza", "burger", "hamburger", "taco", "sushi", "pasta",
			"chocolate", "ice cream", "coffee", "donut", "pancake",
			"sandwich", "hot dog", "french fries", "cheese", "bacon",
			"cookie", "cupcake", "smoothie", "milkshake", "popcorn",
			"nachos", "burrito", "ramen", "waffle", "pretzel",
		},
	},
	{
		Name: "sports",
		Terms: []string{
			"soccer", "football", "basketball", "baseball", "tennis",
			"hockey", "golf", "olympics", "super bowl", "world cup",
			"touchdown", "home run", "slam dunk", "skateboard", "surfing",
			"swimming", "marathon", "boxing", "wrestling", "volleyball",
			"nba", "nfl", "quarterback", "referee",
		},
	},
	{
		Name: "places_travel",
		Terms: []string{
			"paris", "london", "new york", "tokyo", "hawaii", "vegas",
			"disneyland", "beach", "eiffel tower", "grand canyon",
			"statue of liberty", "roller coaster", "airport", "cruise",
			"road trip", "camping", "safari", "pyramid", "great wall",
		},
	},
	{
		Name: "brands",
		Terms: []string{
			"mcdonalds", "nike", "apple", "coca cola", "google",
			"starbucks", "lego", "amazon", "ikea", "adidas",
			"pepsi", "toyota", "samsung", "playstation", "xbox",
			"nintendo", "instagram", "facebook",
		},
	},
	{
		Name: "animals_nature",
		Terms: []string{
			"dog", "cat", "elephant", "lion", "penguin", "dolphin",
			"shark", "dinosaur", "unicorn", "butterfly", "rainbow",
			"volcano", "thunderstorm", "panda", "koala", "giraffe",
			"octopus", "jellyfish",
		},
	},
	{
		Name: "everyday_life",
		Terms: []string{
			"birthday party", "wedding", "karaoke", "selfie",
			"pillow fight", "video game", "board game", "barbecue",
			"sleepover", "halloween", "christmas", "thanksgiving",
			"garage sale", "talent show", "food fight",
		},
	},
}

// DefaultCategories returns the built-in category term lists.
func DefaultCategories() []CategoryTerms {
	return defaultCategories
}
