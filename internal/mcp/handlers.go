package mcp

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/asismo/idea-management-mvp/internal/app"
	"github.com/asismo/idea-management-mvp/internal/errors"
	"github.com/asismo/idea-management-mvp/internal/export"
	"github.com/asismo/idea-management-mvp/internal/idea"
	"github.com/asismo/idea-management-mvp/internal/store"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	app *app.App
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(a *app.App) *Handlers {
	return &Handlers{app: a}
}

// Request types for each tool

// CaptureRequest represents the arguments for idea_capture.
type CaptureRequest struct {
	Content  string `json:"content"`
	FolderID string `json:"folder_id,omitempty"`
}

// IdeaListRequest represents the arguments for idea_list.
type IdeaListRequest struct {
	FolderID string `json:"folder_id,omitempty"`
	Query    string `json:"query,omitempty"`
}

// IdeaUpdateRequest represents the arguments for idea_update.
type IdeaUpdateRequest struct {
	ID       string    `json:"id"`
	Content  *string   `json:"content,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
	FolderID *string   `json:"folder_id,omitempty"`
}

// IdeaDeleteRequest represents the arguments for idea_delete.
type IdeaDeleteRequest struct {
	ID string `json:"id"`
}

// SearchRequest represents the arguments for idea_search.
type SearchRequest struct {
	Query string `json:"query"`
}

// FolderCreateRequest represents the arguments for folder_create.
type FolderCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// FolderMergeRequest represents the arguments for folder_merge.
type FolderMergeRequest struct {
	SourceID string `json:"source_id"`
	TargetID string `json:"target_id"`
}

// FolderDeleteRequest represents the arguments for folder_delete.
type FolderDeleteRequest struct {
	ID string `json:"id"`
}

// FolderDescribeRequest represents the arguments for folder_describe.
type FolderDescribeRequest struct {
	FolderID string `json:"folder_id"`
}

// SettingsUpdateRequest represents the arguments for settings_update.
type SettingsUpdateRequest struct {
	CategorizationMode     *string `json:"categorization_mode,omitempty"`
	SearchMode             *string `json:"search_mode,omitempty"`
	Theme                  *string `json:"theme,omitempty"`
	AutoUpdateDescriptions *bool   `json:"auto_update_descriptions,omitempty"`
	OnboardingCompleted    *bool   `json:"onboarding_completed,omitempty"`
}

// ExportRequest represents the arguments for idea_export.
type ExportRequest struct {
	Format string `json:"format,omitempty"`
}

// folderView is a folder record augmented with its live idea count.
type folderView struct {
	idea.Folder
	LiveIdeaCount int `json:"live_idea_count"`
}

// Handler implementations

// HandleCapture handles the idea_capture tool call. It drives the same flow
// an interactive client would: set content (triggering suggestions), apply an
// explicit folder choice if given, then submit.
func (h *Handlers) HandleCapture(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CaptureRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.Content == "" {
		return errorResult(errors.NewInvalidRequest("content is required")), nil
	}

	c := h.app.NewCapture()
	c.SetContent(ctx, input.Content)
	if input.FolderID != "" {
		c.SelectFolder(input.FolderID)
	}

	created, err := c.Submit(ctx)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(created)
}

// HandleIdeaList handles the idea_list tool call.
func (h *Handlers) HandleIdeaList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IdeaListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	var ideas []idea.Idea
	switch {
	case input.FolderID != "":
		ideas = h.app.Ideas.ByFolder(input.FolderID)
	case input.Query != "":
		ideas = h.app.Ideas.BySubstring(input.Query)
	default:
		ideas = h.app.Ideas.All()
	}
	return successResult(map[string]any{"ideas": ideas, "count": len(ideas)})
}

// HandleIdeaUpdate handles the idea_update tool call.
func (h *Handlers) HandleIdeaUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IdeaUpdateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.ID == "" {
		return errorResult(errors.NewInvalidRequest("id is required")), nil
	}

	updated, err := h.app.UpdateIdea(ctx, input.ID, store.IdeaPatch{
		Content:  input.Content,
		Tags:     input.Tags,
		FolderID: input.FolderID,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(updated)
}

// HandleIdeaDelete handles the idea_delete tool call.
func (h *Handlers) HandleIdeaDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IdeaDeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.ID == "" {
		return errorResult(errors.NewInvalidRequest("id is required")), nil
	}

	if err := h.app.DeleteIdea(ctx, input.ID); err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"deleted": true, "id": input.ID})
}

// HandleSearch handles the idea_search tool call.
func (h *Handlers) HandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SearchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.Query == "" {
		return errorResult(errors.NewInvalidRequest("query is required")), nil
	}

	matches := h.app.SearchIdeas(ctx, input.Query)
	return successResult(map[string]any{"matches": matches, "count": len(matches)})
}

// HandleFolderList handles the folder_list tool call.
func (h *Handlers) HandleFolderList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folders := h.app.Folders.All()
	views := make([]folderView, len(folders))
	for i, f := range folders {
		views[i] = folderView{Folder: f, LiveIdeaCount: h.app.FolderIdeaCount(f.ID)}
	}
	return successResult(map[string]any{"folders": views, "count": len(views)})
}

// HandleFolderCreate handles the folder_create tool call.
func (h *Handlers) HandleFolderCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FolderCreateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	created, err := h.app.CreateFolder(ctx, input.Name, input.Description, input.Icon)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(created)
}

// HandleFolderMerge handles the folder_merge tool call.
func (h *Handlers) HandleFolderMerge(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FolderMergeRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.SourceID == "" || input.TargetID == "" {
		return errorResult(errors.NewInvalidRequest("source_id and target_id are required")), nil
	}

	if err := h.app.MergeFolders(ctx, input.SourceID, input.TargetID); err != nil {
		return errorResult(err), nil
	}
	target, _ := h.app.Folders.Get(input.TargetID)
	return successResult(map[string]any{"merged": true, "target": target})
}

// HandleFolderDelete handles the folder_delete tool call.
func (h *Handlers) HandleFolderDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FolderDeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.ID == "" {
		return errorResult(errors.NewInvalidRequest("id is required")), nil
	}

	if err := h.app.DeleteFolder(ctx, input.ID); err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"deleted": true, "id": input.ID})
}

// HandleFolderDescribe handles the folder_describe tool call.
func (h *Handlers) HandleFolderDescribe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FolderDescribeRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.FolderID == "" {
		return errorResult(errors.NewInvalidRequest("folder_id is required")), nil
	}

	updated, err := h.app.DescribeFolder(ctx, input.FolderID)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(updated)
}

// HandleSettingsGet handles the settings_get tool call.
func (h *Handlers) HandleSettingsGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	settings, ok := h.app.Settings.Get()
	if !ok {
		return errorResult(errors.NewPrecondition("settings not loaded")), nil
	}
	return successResult(settings)
}

// HandleSettingsUpdate handles the settings_update tool call.
func (h *Handlers) HandleSettingsUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SettingsUpdateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	patch := store.SettingsPatch{
		Theme:                  input.Theme,
		AutoUpdateDescriptions: input.AutoUpdateDescriptions,
		OnboardingCompleted:    input.OnboardingCompleted,
	}
	if input.CategorizationMode != nil {
		m := idea.Mode(*input.CategorizationMode)
		if !idea.ValidMode(m) {
			return errorResult(errors.NewInvalidRequest("invalid categorization_mode: " + *input.CategorizationMode)), nil
		}
		patch.CategorizationMode = &m
	}
	if input.SearchMode != nil {
		m := idea.Mode(*input.SearchMode)
		if !idea.ValidMode(m) {
			return errorResult(errors.NewInvalidRequest("invalid search_mode: " + *input.SearchMode)), nil
		}
		patch.SearchMode = &m
	}

	if err := h.app.UpdateSettings(ctx, patch); err != nil {
		return errorResult(err), nil
	}
	settings, _ := h.app.Settings.Get()
	return successResult(settings)
}

// HandleExport handles the idea_export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	snap := export.Snapshot{
		SessionID:  h.app.SessionID(),
		Folders:    h.app.Folders.All(),
		Ideas:      h.app.Ideas.All(),
		ExportedAt: time.Now(),
	}

	switch input.Format {
	case "", "markdown":
		return successResult(map[string]any{"format": "markdown", "document": export.Markdown(snap)})
	case "html":
		return successResult(map[string]any{"format": "html", "document": string(export.HTML(snap))})
	default:
		return errorResult(errors.NewInvalidRequest("unknown format: " + input.Format)), nil
	}
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	var appErr *errors.Error
	if stderrors.As(err, &appErr) {
		errorObj := map[string]any{
			"code":    appErr.Code,
			"message": appErr.Message,
			"status":  appErr.Status,
		}
		if appErr.Code != errors.ErrInternal && appErr.Details != nil {
			errorObj["details"] = appErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
