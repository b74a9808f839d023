package app

import (
	"context"

	"github.com/asismo/idea-management-mvp/internal/idea"
)

// Match is one search result resolved against the stores.
type Match struct {
	Idea      idea.Idea   `json:"idea"`
	Folder    idea.Folder `json:"folder"`
	Relevance float64     `json:"relevance"`
}

// SearchIdeas ranks the session's ideas against a query using the session's
// search mode, reading the current idea collection from the store. Results
// arrive ordered by descending relevance; ids the store no longer knows
// (possible in advanced mode if the service echoes a stale id) are dropped.
func (a *App) SearchIdeas(ctx context.Context, query string) []Match {
	ranked := a.engine.Search(ctx, query, a.Ideas.All(), a.SearchMode())

	out := make([]Match, 0, len(ranked))
	for _, r := range ranked {
		it, ok := a.Ideas.Get(r.IdeaID)
		if !ok {
			continue
		}
		folder, _ := a.Folders.Get(it.FolderID)
		out = append(out, Match{Idea: it, Folder: folder, Relevance: r.Relevance})
	}
	return out
}
