// Package generator orders prompts for a typing session.
package generator

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/wpm/internal/model"
)

// Generator produces randomized prompt orders.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Shuffle returns the prompts in random order. The input is not modified.
func (g *Generator) Shuffle(prompts []model.Prompt) []model.Prompt {
	out := make([]model.Prompt, len(prompts))
	copy(out, prompts)
	g.rnd.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Take returns at most n prompts from the front of prompts. n <= 0 keeps all.
func Take(prompts []model.Prompt, n int) []model.Prompt {
	if n <= 0 || n >= len(prompts) {
		return prompts
	}
	return prompts[:n]
}
