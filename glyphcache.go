package catpicture

import "github.com/JosephCatrambone/catpicture/imageutil"

// matchCache memoizes art-mode glyph matches. The key is the exact
// luma signature of the resized cell patch, so a cached render is
// byte-identical to an uncached one; the cache is purely an
// acceleration for images with recurring flat regions.
type matchCache struct {
	entries map[string]rune
	hits    int
	misses  int
}

func newMatchCache() *matchCache {
	return &matchCache{entries: make(map[string]rune)}
}

// patchKey derives the cache key from a resized patch's luma bytes.
func patchKey(patch *imageutil.GrayImage) string {
	return string(patch.Pix)
}

func (c *matchCache) get(key string) (rune, bool) {
	ch, ok := c.entries[key]
	if ok {
		c.hits++
	}
	return ch, ok
}

func (c *matchCache) add(key string, ch rune) {
	c.misses++
	c.entries[key] = ch
}

// Stats returns the cache hit and miss counters.
func (c *matchCache) Stats() (hits, misses int) {
	return c.hits, c.misses
}
