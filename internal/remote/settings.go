package remote

import (
	"context"
	"net/http"

	"github.com/asismo/idea-management-mvp/internal/idea"
	"github.com/asismo/idea-management-mvp/internal/store"
)

// GetSettings fetches the session's settings record. A missing record is not
// an error: it returns (nil, nil) so the caller can create defaults.
func (c *Client) GetSettings(ctx context.Context, sessionID string) (*idea.Settings, error) {
	var out idea.Settings
	err := c.do(ctx, http.MethodGet, "/v1/settings/"+sessionID, nil, &out)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

// PutSettings upserts the full settings record for the session and returns
// the stored record.
func (c *Client) PutSettings(ctx context.Context, settings idea.Settings) (*idea.Settings, error) {
	var out idea.Settings
	err := c.do(ctx, http.MethodPut, "/v1/settings/"+settings.SessionID, settings, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// PatchSettings applies a single-field (or few-field) update and returns the
// full updated record.
func (c *Client) PatchSettings(ctx context.Context, sessionID string, patch store.SettingsPatch) (*idea.Settings, error) {
	var out idea.Settings
	err := c.do(ctx, http.MethodPatch, "/v1/settings/"+sessionID, patch, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
