package related

import (
	"github.com/spf13/cast"

	"datatable/internal/core/path"
)

// IDField is the field list entries are matched on.
const IDField = "id"

// Source is the backing data of a relational column: either a list of
// entities carrying an id field, or an id-keyed map. Map wins when both are set.
type Source struct {
	List []any
	Map  map[string]any
}

// Cache maps ids to resolved entities for the lifetime of one table. Entries
// are never evicted; unresolved ids are cached as nil.
type Cache struct {
	items  map[string]any
	hits   int
	misses int
}

func NewCache() *Cache { return &Cache{items: make(map[string]any)} }

// Get returns the cached entity and whether the id has been resolved before.
func (c *Cache) Get(id string) (any, bool) {
	v, ok := c.items[id]
	return v, ok
}

// Put stores an entity under id.
func (c *Cache) Put(id string, v any) { c.items[id] = v }

func (c *Cache) Len() int    { return len(c.items) }
func (c *Cache) Hits() int   { return c.hits }
func (c *Cache) Misses() int { return c.misses }

// Reset empties the cache, e.g. when the related data set is replaced.
func (c *Cache) Reset() {
	c.items = make(map[string]any)
	c.hits, c.misses = 0, 0
}

// Key normalizes a foreign id (string, int, float, json.Number) to a cache key.
func Key(id any) string {
	return cast.ToString(id)
}

// Resolve returns the entity referenced by id, consulting cache first and
// writing the lookup result (even nil) back into it. A nil cache disables
// caching.
func Resolve(id any, src Source, cache *Cache) any {
	key := Key(id)
	if cache != nil {
		if v, ok := cache.Get(key); ok {
			cache.hits++
			return v
		}
		cache.misses++
	}
	item := lookup(key, src)
	if cache != nil {
		cache.Put(key, item)
	}
	return item
}

func lookup(key string, src Source) any {
	if src.Map != nil {
		return src.Map[key]
	}
	for _, it := range src.List {
		if v := path.Get(it, IDField); v != nil && cast.ToString(v) == key {
			return it
		}
	}
	return nil
}
