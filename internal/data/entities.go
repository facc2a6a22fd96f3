// internal/data/entities.go
package data

// BuiltinEntity is one entry in the starter entity table. Sitelinks counts
// approximate how many language editions cover the entity and double as the
// built-in popularity signal when no external source is configured.
type BuiltinEntity struct {
	Label     string
	Kind      string
	Sitelinks int
	Aliases   []string
}

// builtinEntities is a small starter index of well-known people, places,
// works, foods, and brands. It keeps the service useful out of the box; a
// configured entity dump replaces it entirely.
var builtinEntities = []BuiltinEntity{
	// People
	{Label: "Taylor Swift", Kind: "person", Sitelinks: 214, Aliases: []string{"T-Swift", "Tay"}},
	{Label: "Beyoncé", Kind: "person", Sitelinks: 187, Aliases: []string{"Queen Bey", "Beyoncé Knowles"}},
	{Label: "Michael Jackson", Kind: "person", Sitelinks: 226, Aliases: []string{"King of Pop", "MJ"}},
	{Label: "Elvis Presley", Kind: "person", Sitelinks: 180, Aliases: []string{"The King", "Elvis"}},
	{Label: "Albert Einstein", Kind: "person", Sitelinks: 215, Aliases: []string{"Einstein"}},
	{Label: "Leonardo da Vinci", Kind: "person", Sitelinks: 198, Aliases: []string{"da Vinci"}},
	{Label: "Michael Jordan", Kind: "person", Sitelinks: 140, Aliases: []string{"MJ", "Air Jordan"}},
	{Label: "Lionel Messi", Kind: "person", Sitelinks: 164, Aliases: []string{"Messi", "Leo Messi"}},
	{Label: "Serena Williams", Kind: "person", Sitelinks: 115, Aliases: nil},
	{Label: "Oprah Winfrey", Kind: "person", Sitelinks: 102, Aliases: []string{"Oprah"}},
	{Label: "William Shakespeare", Kind: "person", Sitelinks: 204, Aliases: []string{"Shakespeare", "The Bard"}},
	{Label: "Marilyn Monroe", Kind: "person", Sitelinks: 152, Aliases: nil},
	{Label: "Muhammad Ali", Kind: "person", Sitelinks: 150, Aliases: nil},
	{Label: "Lady Gaga", Kind: "person", Sitelinks: 158, Aliases: nil},
	{Label: "Drake", Kind: "person", Sitelinks: 96, Aliases: []string{"Drizzy"}},

	// Bands and groups
	{Label: "The Beatles", Kind: "band", Sitelinks: 177, Aliases: []string{"Beatles", "Fab Four"}},
	{Label: "Queen", Kind: "band", Sitelinks: 144, Aliases: nil},
	{Label: "BTS", Kind: "band", Sitelinks: 108, Aliases: []string{"Bangtan Boys"}},

	// Films and franchises
	{Label: "Star Wars", Kind: "film", Sitelinks: 133, Aliases: []string{"Star Wars saga"}},
	{Label: "The Lion King", Kind: "film", Sitelinks: 98, Aliases: []string{"Lion King"}},
	{Label: "Titanic", Kind: "film", Sitelinks: 124, Aliases: nil},
	{Label: "Jurassic Park", Kind: "film", Sitelinks: 88, Aliases: nil},
	{Label: "The Godfather", Kind: "film", Sitelinks: 102, Aliases: []string{"Godfather"}},
	{Label: "Frozen", Kind: "film", Sitelinks: 92, Aliases: nil},
	{Label: "Finding Nemo", Kind: "film", Sitelinks: 78, Aliases: nil},

	// Television
	{Label: "Game of Thrones", Kind: "tv_show", Sitelinks: 107, Aliases: []string{"GoT"}},
	{Label: "Friends", Kind: "tv_show", Sitelinks: 94, Aliases: nil},
	{Label: "The Simpsons", Kind: "tv_show", Sitelinks: 110, Aliases: []string{"Simpsons"}},
	{Label: "Breaking Bad", Kind: "tv_show", Sitelinks: 89, Aliases: nil},
	{Label: "SpongeBob SquarePants", Kind: "tv_show", Sitelinks: 87, Aliases: []string{"SpongeBob"}},

	// Books and literature
	{Label: "Harry Potter", Kind: "book", Sitelinks: 136, Aliases: []string{"Harry Potter series"}},
	{Label: "The Lord of the Rings", Kind: "book", Sitelinks: 128, Aliases: []string{"Lord of the Rings", "LOTR"}},
	{Label: "Don Quixote", Kind: "book", Sitelinks: 120, Aliases: nil},

	// Anime and games
	{Label: "Pokémon", Kind: "anime", Sitelinks: 118, Aliases: []string{"Pocket Monsters"}},
	{Label: "Super Mario", Kind: "game", Sitelinks: 84, Aliases: []string{"Mario"}},
	{Label: "Minecraft", Kind: "game", Sitelinks: 101, Aliases: nil},
	{Label: "Tetris", Kind: "game", Sitelinks: 77, Aliases: nil},

	// Music works
	{Label: "Bohemian Rhapsody", Kind: "album", Sitelinks: 66, Aliases: nil},
	{Label: "Thriller", Kind: "album", Sitelinks: 81, Aliases: nil},

	// Artworks
	{Label: "Mona Lisa", Kind: "artwork", Sitelinks: 141, Aliases: []string{"La Gioconda"}},
	{Label: "The Starry Night", Kind: "artwork", Sitelinks: 74, Aliases: []string{"Starry Night"}},

	// Places and landmarks
	{Label: "Paris", Kind: "city", Sitelinks: 274, Aliases: []string{"City of Light"}},
	{Label: "New York City", Kind: "city", Sitelinks: 243, Aliases: []string{"NYC", "Big Apple"}},
	{Label: "Tokyo", Kind: "city", Sitelinks: 238, Aliases: nil},
	{Label: "London", Kind: "city", Sitelinks: 252, Aliases: nil},
	{Label: "Toronto", Kind: "city", Sitelinks: 158, Aliases: []string{"The Six"}},
	{Label: "Eiffel Tower", Kind: "landmark", Sitelinks: 145, Aliases: []string{"Tour Eiffel"}},
	{Label: "Statue of Liberty", Kind: "landmark", Sitelinks: 129, Aliases: []string{"Lady Liberty"}},
	{Label: "Great Wall of China", Kind: "landmark", Sitelinks: 116, Aliases: []string{"Great Wall"}},
	{Label: "Grand Canyon", Kind: "landmark", Sitelinks: 98, Aliases: nil},
	{Label: "Mount Everest", Kind: "landmark", Sitelinks: 152, Aliases: []string{"Everest"}},
	{Label: "Niagara Falls", Kind: "landmark", Sitelinks: 108, Aliases: nil},
	{Label: "Canada", Kind: "country", Sitelinks: 298, Aliases: nil},
	{Label: "Japan", Kind: "country", Sitelinks: 302, Aliases: nil},
	{Label: "Brazil", Kind: "country", Sitelinks: 288, Aliases: nil},

	// Food and drink
	{Label: "Pizza", Kind: "food", Sitelinks: 142, Aliases: nil},
	{Label: "Sushi", Kind: "food", Sitelinks: 112, Aliases: nil},
	{Label: "Hamburger", Kind: "food", Sitelinks: 104, Aliases: []string{"Burger"}},
	{Label: "Poutine", Kind: "food", Sitelinks: 42, Aliases: nil},
	{Label: "Croissant", Kind: "food", Sitelinks: 58, Aliases: nil},
	{Label: "Maple syrup", Kind: "food", Sitelinks: 46, Aliases: nil},
	{Label: "Bubble tea", Kind: "food", Sitelinks: 39, Aliases: []string{"Boba"}},

	// Brands and products
	{Label: "Coca-Cola", Kind: "brand", Sitelinks: 148, Aliases: []string{"Coke"}},
	{Label: "Nike", Kind: "brand", Sitelinks: 96, Aliases: nil},
	{Label: "Lego", Kind: "brand", Sitelinks: 92, Aliases: nil},
	{Label: "iPhone", Kind: "brand", Sitelinks: 106, Aliases: nil},
	{Label: "Netflix", Kind: "brand", Sitelinks: 98, Aliases: nil},
	{Label: "Tim Hortons", Kind: "brand", Sitelinks: 34, Aliases: []string{"Timmies"}},

	// Sports and events
	{Label: "Olympic Games", Kind: "event", Sitelinks: 182, Aliases: []string{"Olympics"}},
	{Label: "Super Bowl", Kind: "event", Sitelinks: 74, Aliases: nil},
	{Label: "World Cup", Kind: "event", Sitelinks: 138, Aliases: []string{"FIFA World Cup"}},
	{Label: "Stanley Cup", Kind: "event", Sitelinks: 52, Aliases: nil},

	// Characters
	{Label: "Batman", Kind: "character", Sitelinks: 122, Aliases: []string{"Dark Knight", "Bruce Wayne"}},
	{Label: "Mickey Mouse", Kind: "character", Sitelinks: 114, Aliases: nil},
	{Label: "Sherlock Holmes", Kind: "character", Sitelinks: 118, Aliases: nil},
	{Label: "Darth Vader", Kind: "character", Sitelinks: 86, Aliases: []string{"Anakin Skywalker"}},

	// Long-tail entries to exercise the lower popularity bands
	{Label: "Yonge Street", Kind: "place", Sitelinks: 14, Aliases: nil},
	{Label: "Butter tart", Kind: "food", Sitelinks: 8, Aliases: nil},
	{Label: "Nanaimo bar", Kind: "food", Sitelinks: 7, Aliases: nil},
	{Label: "Inukshuk", Kind: "artwork", Sitelinks: 11, Aliases: []string{"Inuksuk"}},
}

// BuiltinEntities returns the starter entity table. Callers must treat the
// slice and its members as read-only.
func BuiltinEntities() []BuiltinEntity {
	return builtinEntities
}
