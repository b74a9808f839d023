// Package engine implements the idea organization decisions: which folder an
// idea belongs to, which tags apply, how a folder is summarized, and how
// existing ideas rank against a query.
//
// Every AI-touching operation is dual-mode: a fast deterministic heuristic
// (simple) and a delegated semantic call (advanced). Advanced-mode failures
// are absorbed into documented deterministic fallbacks, never propagated.
package engine

import (
	"github.com/rs/zerolog"

	"github.com/asismo/idea-management-mvp/internal/ai"
)

// Engine holds the AI boundary and the response cache.
type Engine struct {
	gen   ai.Generator
	cache *ai.Cache
	log   zerolog.Logger
}

// New creates an Engine. The cache is injected so its bounds are owned by
// the caller; a nil cache disables memoization.
func New(gen ai.Generator, cache *ai.Cache, log zerolog.Logger) *Engine {
	return &Engine{gen: gen, cache: cache, log: log}
}

func (e *Engine) cacheGet(key string) (any, bool) {
	if e.cache == nil {
		return nil, false
	}
	return e.cache.Get(key)
}

func (e *Engine) cacheSet(key string, value any) {
	if e.cache != nil {
		e.cache.Set(key, value)
	}
}
