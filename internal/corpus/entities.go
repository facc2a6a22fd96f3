// entities.go implements the entity index and its knowledge-dump loader.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/quipshot/phrase-gate/internal/data"
	"github.com/quipshot/phrase-gate/internal/logging"
	"github.com/quipshot/phrase-gate/internal/textutil"
)

// Entity is one curated reference entity: a well-known person, work, place,
// food, or brand that party phrases tend to name.
type Entity struct {
	ID        int64
	Label     string
	Kind      string
	Sitelinks int
	Aliases   []string
}

// EntityIndex answers two questions about a phrase: does it exactly match a
// curated entity label, and do any of its words appear among entity aliases.
// Labels and alias words are indexed in normalized form.
type EntityIndex struct {
	byLabel    map[string]*Entity
	aliasWords map[string][]*Entity
	entities   []*Entity
	origin     string
}

// EntityStats summarizes the index for diagnostics.
type EntityStats struct {
	Entities   int            `json:"entities"`
	AliasWords int            `json:"alias_words"`
	Kinds      map[string]int `json:"kinds"`
	Origin     string         `json:"origin"`
}

// entityFile mirrors the JSON emitted by the knowledge-dump extraction
// pipeline: a meta block plus entities keyed by their numeric id.
type entityFile struct {
	Meta     map[string]any          `json:"meta"`
	Entities map[string]entityRecord `json:"entities"`
}

type entityRecord struct {
	ID        int64    `json:"id"`
	Label     string   `json:"label"`
	Sitelinks int      `json:"sitelinks"`
	Type      string   `json:"type"`
	Aliases   []string `json:"aliases"`
}

// NewEntityIndex builds an index over the given entities. When two entities
// normalize to the same label, the one with more sitelinks wins the label
// slot; both still contribute alias words.
func NewEntityIndex(entities []Entity, origin string) *EntityIndex {
	index := &EntityIndex{
		byLabel:    make(map[string]*Entity, len(entities)),
		aliasWords: make(map[string][]*Entity),
		entities:   make([]*Entity, 0, len(entities)),
		origin:     origin,
	}

	for i := range entities {
		entity := entities[i]
		if entity.Label == "" {
			continue
		}
		index.add(&entity)
	}

	return index
}

// BuiltinEntityIndex builds the index from the curated starter table.
func BuiltinEntityIndex(logger logging.Logger) *EntityIndex {
	builtin := data.BuiltinEntities()
	entities := make([]Entity, 0, len(builtin))
	for _, b := range builtin {
		entities = append(entities, Entity{
			Label:     b.Label,
			Kind:      b.Kind,
			Sitelinks: b.Sitelinks,
			Aliases:   b.Aliases,
		})
	}

	index := NewEntityIndex(entities, OriginBuiltin)
	logger.Debug("built-in entity index ready",
		logging.Int("entities", index.Size()))
	return index
}

// LoadEntityIndex reads an entity corpus JSON file produced by the
// knowledge-dump extraction pipeline.
func LoadEntityIndex(logger logging.Logger, path string) (*EntityIndex, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read entity file: %w", err)
	}

	var file entityFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse entity file: %w", err)
	}
	if len(file.Entities) == 0 {
		return nil, fmt.Errorf("entity file %s contains no entities", path)
	}

	entities := make([]Entity, 0, len(file.Entities))
	skipped := 0
	for _, record := range file.Entities {
		if record.Label == "" {
			skipped++
			continue
		}
		entities = append(entities, Entity{
			ID:        record.ID,
			Label:     record.Label,
			Kind:      record.Type,
			Sitelinks: record.Sitelinks,
			Aliases:   record.Aliases,
		})
	}

	index := NewEntityIndex(entities, path)
	logger.Info("entity corpus loaded",
		logging.String("path", path),
		logging.Int("entities", index.Size()),
		logging.Int("skipped", skipped))

	return index, nil
}

func (ix *EntityIndex) add(entity *Entity) {
	ix.entities = append(ix.entities, entity)

	label := textutil.Normalize(entity.Label)
	if label != "" {
		existing, ok := ix.byLabel[label]
		if !ok || entity.Sitelinks > existing.Sitelinks {
			ix.byLabel[label] = entity
		}
	}

	for _, alias := range entity.Aliases {
		for _, word := range textutil.Tokenize(alias) {
			ix.aliasWords[word] = append(ix.aliasWords[word], entity)
		}
	}
}

// LookupLabel returns the entity whose normalized label exactly equals the
// given normalized phrase.
func (ix *EntityIndex) LookupLabel(normalized string) (*Entity, bool) {
	entity, ok := ix.byLabel[normalized]
	return entity, ok
}

// LookupAliasWord returns the entities that list the given normalized word
// among their alias words.
func (ix *EntityIndex) LookupAliasWord(word string) []*Entity {
	return ix.aliasWords[word]
}

// Size returns the number of indexed entities.
func (ix *EntityIndex) Size() int {
	return len(ix.entities)
}

// Origin reports where the index came from: a file path or "builtin".
func (ix *EntityIndex) Origin() string {
	return ix.origin
}

// Stats summarizes the index contents.
func (ix *EntityIndex) Stats() EntityStats {
	kinds := make(map[string]int)
	for _, entity := range ix.entities {
		if entity.Kind != "" {
			kinds[entity.Kind]++
		}
	}
	return EntityStats{
		Entities:   len(ix.entities),
		AliasWords: len(ix.aliasWords),
		Kinds:      kinds,
		Origin:     ix.origin,
	}
}
