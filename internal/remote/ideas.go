package remote

import (
	"context"
	"net/http"

	"github.com/asismo/idea-management-mvp/internal/idea"
	"github.com/asismo/idea-management-mvp/internal/store"
)

// NewIdea contains the client-supplied fields for idea creation. The record
// store assigns id and timestamps and returns the full record.
type NewIdea struct {
	SessionID                string   `json:"session_id"`
	Content                  string   `json:"content"`
	FolderID                 string   `json:"folder_id"`
	Tags                     []string `json:"tags"`
	AICategorizationAccepted bool     `json:"ai_categorization_accepted"`
}

// ListIdeas returns the session's ideas ordered by created_at descending.
func (c *Client) ListIdeas(ctx context.Context, sessionID string) ([]idea.Idea, error) {
	var out []idea.Idea
	err := c.do(ctx, http.MethodGet, "/v1/ideas?session_id="+sessionID, nil, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateIdea persists a new idea and returns the full stored record.
func (c *Client) CreateIdea(ctx context.Context, fields NewIdea) (*idea.Idea, error) {
	var out idea.Idea
	if err := c.do(ctx, http.MethodPost, "/v1/ideas", fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateIdea applies a partial update and returns the full updated record.
func (c *Client) UpdateIdea(ctx context.Context, id string, patch store.IdeaPatch) (*idea.Idea, error) {
	var out idea.Idea
	if err := c.do(ctx, http.MethodPatch, "/v1/ideas/"+id, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteIdea removes an idea.
func (c *Client) DeleteIdea(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/ideas/"+id, nil, nil)
}
