// Package generator picks practice words.
package generator

import (
	"math/rand"
	"time"
)

// Source is the randomness a Generator draws from.
type Source interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// Float64Source is a Source that can also draw floats in [0, 1).
type Float64Source interface {
	Source
	Float64() float64
}

// Generator selects words from a pool.
type Generator struct {
	rnd Source
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewWithSource returns a Generator drawing from src.
func NewWithSource(src Source) *Generator {
	return &Generator{rnd: src}
}

// Pick selects one word uniformly with replacement.
func (g *Generator) Pick(words []string) string {
	return words[g.rnd.Intn(len(words))]
}

// PickWeighted selects a word with a bias toward previously missed words.
// Each word weighs 1 + misses*factor. Falls back to Pick when there is
// nothing to bias toward.
func (g *Generator) PickWeighted(words []string, misses map[string]int, factor float64) string {
	fsrc, ok := g.rnd.(Float64Source)
	if !ok || len(misses) == 0 || factor <= 0 {
		return g.Pick(words)
	}
	weights := make([]float64, len(words))
	total := 0.0
	for i, word := range words {
		w := 1.0 + float64(misses[word])*factor
		weights[i] = w
		total += w
	}

	r := fsrc.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return words[i]
		}
	}
	return words[len(words)-1]
}
