package web

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/asismo/idea-management-mvp/internal/app"
	"github.com/asismo/idea-management-mvp/internal/errors"
	"github.com/asismo/idea-management-mvp/internal/export"
	"github.com/asismo/idea-management-mvp/internal/idea"
	"github.com/asismo/idea-management-mvp/internal/store"
)

// Handlers contains HTTP route handlers for the idea API.
type Handlers struct {
	app     *app.App
	log     zerolog.Logger
	version string
}

// captureRequest is the body for POST /ideas.
type captureRequest struct {
	Content  string `json:"content"`
	FolderID string `json:"folder_id,omitempty"`
}

// createFolderRequest is the body for POST /folders.
type createFolderRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// mergeRequest is the body for POST /folders/merge.
type mergeRequest struct {
	SourceID string `json:"source_id"`
	TargetID string `json:"target_id"`
}

// folderView is a folder record augmented with its live idea count.
type folderView struct {
	idea.Folder
	LiveIdeaCount int `json:"live_idea_count"`
}

// HandleHealth handles GET /healthz.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
		"session": h.app.SessionID(),
	})
}

// HandleListIdeas handles GET /ideas. Supports ?folder_id= and ?q= filters.
func (h *Handlers) HandleListIdeas(w http.ResponseWriter, r *http.Request) {
	folderID := r.URL.Query().Get("folder_id")
	query := r.URL.Query().Get("q")

	var ideas []idea.Idea
	switch {
	case folderID != "":
		ideas = h.app.Ideas.ByFolder(folderID)
	case query != "":
		ideas = h.app.Ideas.BySubstring(query)
	default:
		ideas = h.app.Ideas.All()
	}
	renderJSON(w, http.StatusOK, map[string]any{"ideas": ideas, "count": len(ideas)})
}

// HandleCapture handles POST /ideas: the capture flow as a single request.
func (h *Handlers) HandleCapture(w http.ResponseWriter, r *http.Request) {
	var body captureRequest
	if !h.decodeBody(w, r, &body) {
		return
	}
	if body.Content == "" {
		h.renderError(w, errors.NewInvalidRequest("content is required"))
		return
	}

	c := h.app.NewCapture()
	c.SetContent(r.Context(), body.Content)
	if body.FolderID != "" {
		c.SelectFolder(body.FolderID)
	}

	created, err := c.Submit(r.Context())
	if err != nil {
		h.renderError(w, err)
		return
	}
	renderJSON(w, http.StatusCreated, created)
}

// HandleSearch handles GET /ideas/search?q=.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		h.renderError(w, errors.NewInvalidRequest("q parameter is required"))
		return
	}

	matches := h.app.SearchIdeas(r.Context(), query)
	renderJSON(w, http.StatusOK, map[string]any{"matches": matches, "count": len(matches)})
}

// HandleUpdateIdea handles PATCH /ideas/{id}.
func (h *Handlers) HandleUpdateIdea(w http.ResponseWriter, r *http.Request) {
	var patch store.IdeaPatch
	if !h.decodeBody(w, r, &patch) {
		return
	}

	updated, err := h.app.UpdateIdea(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		h.renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, updated)
}

// HandleDeleteIdea handles DELETE /ideas/{id}.
func (h *Handlers) HandleDeleteIdea(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.app.DeleteIdea(r.Context(), id); err != nil {
		h.renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, map[string]any{"deleted": true, "id": id})
}

// HandleListFolders handles GET /folders.
func (h *Handlers) HandleListFolders(w http.ResponseWriter, r *http.Request) {
	folders := h.app.Folders.All()
	views := make([]folderView, len(folders))
	for i, f := range folders {
		views[i] = folderView{Folder: f, LiveIdeaCount: h.app.FolderIdeaCount(f.ID)}
	}
	renderJSON(w, http.StatusOK, map[string]any{"folders": views, "count": len(views)})
}

// HandleCreateFolder handles POST /folders.
func (h *Handlers) HandleCreateFolder(w http.ResponseWriter, r *http.Request) {
	var body createFolderRequest
	if !h.decodeBody(w, r, &body) {
		return
	}

	created, err := h.app.CreateFolder(r.Context(), body.Name, body.Description, body.Icon)
	if err != nil {
		h.renderError(w, err)
		return
	}
	renderJSON(w, http.StatusCreated, created)
}

// HandleMergeFolders handles POST /folders/merge.
func (h *Handlers) HandleMergeFolders(w http.ResponseWriter, r *http.Request) {
	var body mergeRequest
	if !h.decodeBody(w, r, &body) {
		return
	}
	if body.SourceID == "" || body.TargetID == "" {
		h.renderError(w, errors.NewInvalidRequest("source_id and target_id are required"))
		return
	}

	if err := h.app.MergeFolders(r.Context(), body.SourceID, body.TargetID); err != nil {
		h.renderError(w, err)
		return
	}
	target, _ := h.app.Folders.Get(body.TargetID)
	renderJSON(w, http.StatusOK, map[string]any{"merged": true, "target": target})
}

// HandleDescribeFolder handles POST /folders/{id}/describe.
func (h *Handlers) HandleDescribeFolder(w http.ResponseWriter, r *http.Request) {
	updated, err := h.app.DescribeFolder(r.Context(), r.PathValue("id"))
	if err != nil {
		h.renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, updated)
}

// HandleDeleteFolder handles DELETE /folders/{id}.
func (h *Handlers) HandleDeleteFolder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.app.DeleteFolder(r.Context(), id); err != nil {
		h.renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, map[string]any{"deleted": true, "id": id})
}

// HandleGetSettings handles GET /settings.
func (h *Handlers) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, ok := h.app.Settings.Get()
	if !ok {
		h.renderError(w, errors.NewPrecondition("settings not loaded"))
		return
	}
	renderJSON(w, http.StatusOK, settings)
}

// HandleUpdateSettings handles PATCH /settings.
func (h *Handlers) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch store.SettingsPatch
	if !h.decodeBody(w, r, &patch) {
		return
	}
	if patch.CategorizationMode != nil && !idea.ValidMode(*patch.CategorizationMode) {
		h.renderError(w, errors.NewInvalidRequest("invalid categorization_mode"))
		return
	}
	if patch.SearchMode != nil && !idea.ValidMode(*patch.SearchMode) {
		h.renderError(w, errors.NewInvalidRequest("invalid search_mode"))
		return
	}

	if err := h.app.UpdateSettings(r.Context(), patch); err != nil {
		h.renderError(w, err)
		return
	}
	settings, _ := h.app.Settings.Get()
	renderJSON(w, http.StatusOK, settings)
}

// HandleExport handles GET /export: the session as a Markdown document.
func (h *Handlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	md := export.Markdown(h.snapshot())
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(md))
}

// HandlePreview handles GET /preview: the export document rendered to HTML.
func (h *Handlers) HandlePreview(w http.ResponseWriter, r *http.Request) {
	html := export.HTML(h.snapshot())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

func (h *Handlers) snapshot() export.Snapshot {
	return export.Snapshot{
		SessionID:  h.app.SessionID(),
		Folders:    h.app.Folders.All(),
		Ideas:      h.app.Ideas.All(),
		ExportedAt: time.Now(),
	}
}

func (h *Handlers) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.renderError(w, errors.NewInvalidRequest("invalid JSON body"))
		return false
	}
	return true
}

// renderError writes a structured error response, mapping unknown errors to
// an opaque 500 so internal details never leak.
func (h *Handlers) renderError(w http.ResponseWriter, err error) {
	var appErr *errors.Error
	if !stderrors.As(err, &appErr) {
		appErr = errors.NewInternal(nil)
	}
	if appErr.Status >= 500 {
		h.log.Error().Err(err).Msg("request failed")
	}
	renderJSON(w, appErr.Status, map[string]any{
		"error": map[string]any{
			"code":    string(appErr.Code),
			"message": appErr.Message,
			"status":  appErr.Status,
		},
	})
}

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
