// Package rng is the random source injected into brains and systems so a
// fixed seed reproduces every decision.
package rng

import (
	"hash/fnv"
	"math/rand"
	"sort"
)

// Source wraps math/rand with the draws decision logic needs.
type Source struct {
	r *rand.Rand
}

// New returns a Source seeded from (seed, label). Distinct labels give
// independent streams from the same root seed.
func New(seed, label string) *Source {
	return &Source{r: rand.New(rand.NewSource(SeedValue(seed, label)))}
}

// FromRand wraps an existing generator.
func FromRand(r *rand.Rand) *Source {
	return &Source{r: r}
}

// SeedValue hashes the root seed and label into a non-zero int64.
func SeedValue(seed, label string) int64 {
	h := fnv.New64a()
	h.Write([]byte(seed))
	h.Write([]byte{0})
	h.Write([]byte(label))
	sum := h.Sum64()
	if sum == 0 {
		sum = 1
	}
	return int64(sum)
}

// Rand exposes the underlying generator for systems that take *rand.Rand.
func (s *Source) Rand() *rand.Rand { return s.r }

// Float64 returns a uniform draw in [0, 1).
func (s *Source) Float64() float64 { return s.r.Float64() }

// Intn returns a uniform int in [0, n). n <= 0 yields 0.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.Intn(n)
}

// Chance reports true with probability p.
func (s *Source) Chance(p float64) bool {
	return s.r.Float64() < p
}

// Pick returns a uniformly chosen element of items.
func Pick[T any](s *Source, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[s.Intn(len(items))], true
}

// Weighted picks a key with probability proportional to its weight.
// Keys are visited in sorted order so the result is reproducible.
func (s *Source) Weighted(weights map[string]int) (string, bool) {
	keys := make([]string, 0, len(weights))
	total := 0
	for k, w := range weights {
		if w <= 0 {
			continue
		}
		keys = append(keys, k)
		total += w
	}
	if total == 0 {
		return "", false
	}
	sort.Strings(keys)
	n := s.Intn(total)
	for _, k := range keys {
		n -= weights[k]
		if n < 0 {
			return k, true
		}
	}
	return keys[len(keys)-1], true
}
