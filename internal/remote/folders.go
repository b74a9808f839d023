package remote

import (
	"context"
	"net/http"

	"github.com/asismo/idea-management-mvp/internal/idea"
	"github.com/asismo/idea-management-mvp/internal/store"
)

// NewFolder contains the client-supplied fields for folder creation.
type NewFolder struct {
	SessionID   string   `json:"session_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	IdeaCount   int      `json:"idea_count"`
	Tags        []string `json:"tags"`
}

// ListFolders returns the session's folders ordered by created_at descending.
func (c *Client) ListFolders(ctx context.Context, sessionID string) ([]idea.Folder, error) {
	var out []idea.Folder
	err := c.do(ctx, http.MethodGet, "/v1/folders?session_id="+sessionID, nil, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateFolder persists a new folder and returns the full stored record.
func (c *Client) CreateFolder(ctx context.Context, fields NewFolder) (*idea.Folder, error) {
	var out idea.Folder
	if err := c.do(ctx, http.MethodPost, "/v1/folders", fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateFolder applies a partial update and returns the full updated record.
func (c *Client) UpdateFolder(ctx context.Context, id string, patch store.FolderPatch) (*idea.Folder, error) {
	var out idea.Folder
	if err := c.do(ctx, http.MethodPatch, "/v1/folders/"+id, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteFolder removes a folder.
func (c *Client) DeleteFolder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/folders/"+id, nil, nil)
}
