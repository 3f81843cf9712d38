package content

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Variation picks phrases deterministically from (seed, key, pool).
// The same seed and key always produce the same page text.
type Variation struct {
	Seed uint64
}

func (v Variation) hash(key string) uint64 {
	h := fnv.New64a()
	var seed [8]byte
	binary.BigEndian.PutUint64(seed[:], v.Seed)
	_, _ = h.Write(seed[:])
	_, _ = h.Write([]byte(key))
	return h.Sum64()
}

// Pick returns one element of pool, or "" for an empty pool.
func (v Variation) Pick(pool []string, key string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[v.hash(key)%uint64(len(pool))]
}

// Shuffle returns a permuted copy of pool. The input is not modified.
func (v Variation) Shuffle(pool []string, key string) []string {
	shuffled := append([]string(nil), pool...)
	if len(shuffled) < 2 {
		return shuffled
	}
	rng := rand.New(rand.NewPCG(v.Seed, v.hash(key)))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// Phrases builds the phrase variables shared by every page template:
// intro, connector, closing, benefits and tips. Keys are namespaced so that
// each variable draws independently for the same page.
func (v Variation) Phrases(key, subject string) map[string]string {
	intro := strings.ReplaceAll(v.Pick(Introductions, key+"#intro"), "{profession}", subject)

	return map[string]string{
		"intro":     intro,
		"connector": capitalize(v.Pick(Connectors, key+"#connector")),
		"closing":   v.Pick(Closings, key+"#closing"),
		"benefits":  listItems(v.Shuffle(Benefits, key+"#benefits"), 4),
		"tips":      listItems(v.Shuffle(Tips, key+"#tips"), 4),
	}
}

func listItems(items []string, limit int) string {
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	var b strings.Builder
	for _, item := range items {
		b.WriteString("<li>")
		b.WriteString(item)
		b.WriteString("</li>")
	}
	return b.String()
}

func capitalize(text string) string {
	r, size := utf8.DecodeRuneInString(text)
	if r == utf8.RuneError {
		return text
	}
	return string(unicode.ToUpper(r)) + text[size:]
}
