package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"

	"github.com/asismo/idea-management-mvp/internal/ai"
	"github.com/asismo/idea-management-mvp/internal/app"
	"github.com/asismo/idea-management-mvp/internal/devserver"
	"github.com/asismo/idea-management-mvp/internal/engine"
	"github.com/asismo/idea-management-mvp/internal/remote"
)

// newTestHandlers wires Handlers to an App backed by a real record store
// (the SQLite reference implementation) and a canned generator.
func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()

	db, err := devserver.Init(t.TempDir())
	if err != nil {
		t.Fatalf("devserver.Init: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	srv := httptest.NewServer(devserver.NewServer(db, zerolog.Nop(), "127.0.0.1", 0).Handler)
	t.Cleanup(srv.Close)

	gen := ai.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		if strings.Contains(prompt, "extracts relevant tags") {
			return `{"tags": ["alpha", "beta"]}`, nil
		}
		return "A folder summary.", nil
	})
	eng := engine.New(gen, ai.NewCache(64, time.Minute), zerolog.Nop())

	rc := remote.New(srv.URL, remote.WithMaxRetryElapsed(200*time.Millisecond))
	a := app.New("session_tools", rc, eng, zerolog.Nop())
	if err := a.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return NewHandlers(a)
}

func toolRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

// resultPayload decodes the JSON text content of a tool result.
func resultPayload(t *testing.T, res *mcp.CallToolResult) map[string]any {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty result content")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content type %T", res.Content[0])
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(text.Text), &payload); err != nil {
		t.Fatalf("result not JSON: %v\n%s", err, text.Text)
	}
	return payload
}

func errorCode(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if !res.IsError {
		t.Fatal("expected IsError result")
	}
	payload := resultPayload(t, res)
	errObj, ok := payload["error"].(map[string]any)
	if !ok {
		t.Fatalf("no error object: %v", payload)
	}
	code, _ := errObj["code"].(string)
	return code
}

func TestToolRegistry(t *testing.T) {
	for name, entry := range toolRegistry {
		if entry.def.Name != name {
			t.Errorf("tool %q registered under key %q", entry.def.Name, name)
		}
		if entry.handler == nil {
			t.Errorf("tool %q has no handler", name)
		}
	}

	names := AllToolNames()
	sort.Strings(names)
	want := []string{
		"folder_create", "folder_delete", "folder_describe", "folder_list",
		"folder_merge", "idea_capture", "idea_delete", "idea_export",
		"idea_list", "idea_search", "idea_update", "settings_get",
		"settings_update",
	}
	if len(names) != len(want) {
		t.Fatalf("AllToolNames = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestHandleCapture(t *testing.T) {
	h := newTestHandlers(t)
	ctx := context.Background()

	folder, err := h.app.CreateFolder(ctx, "Cooking", "", "")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}

	res, err := h.HandleCapture(ctx, toolRequest("idea_capture", map[string]any{
		"content":   "a long enough idea about cooking",
		"folder_id": folder.ID,
	}))
	if err != nil {
		t.Fatalf("HandleCapture: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %v", resultPayload(t, res))
	}

	payload := resultPayload(t, res)
	if payload["folder_id"] != folder.ID {
		t.Errorf("folder_id = %v", payload["folder_id"])
	}
	if payload["content"] != "a long enough idea about cooking" {
		t.Errorf("content = %v", payload["content"])
	}
}

func TestHandleCapture_MissingContent(t *testing.T) {
	h := newTestHandlers(t)

	res, err := h.HandleCapture(context.Background(), toolRequest("idea_capture", map[string]any{}))
	if err != nil {
		t.Fatalf("HandleCapture: %v", err)
	}
	if code := errorCode(t, res); code != "INVALID_REQUEST" {
		t.Errorf("code = %q", code)
	}
}

func TestHandleIdeaDelete_NotFound(t *testing.T) {
	h := newTestHandlers(t)

	res, err := h.HandleIdeaDelete(context.Background(), toolRequest("idea_delete", map[string]any{
		"id": "missing",
	}))
	if err != nil {
		t.Fatalf("HandleIdeaDelete: %v", err)
	}
	if code := errorCode(t, res); code != "NOT_FOUND" {
		t.Errorf("code = %q", code)
	}
}

func TestHandleFolderList_LiveCounts(t *testing.T) {
	h := newTestHandlers(t)
	ctx := context.Background()

	folder, err := h.app.CreateFolder(ctx, "Cooking", "", "")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if _, err := h.app.SubmitIdea(ctx, "pasta", folder.ID, nil); err != nil {
		t.Fatalf("SubmitIdea: %v", err)
	}

	res, err := h.HandleFolderList(ctx, toolRequest("folder_list", nil))
	if err != nil {
		t.Fatalf("HandleFolderList: %v", err)
	}
	payload := resultPayload(t, res)
	folders, _ := payload["folders"].([]any)
	if len(folders) != 1 {
		t.Fatalf("folders = %v", payload)
	}
	view := folders[0].(map[string]any)
	if view["live_idea_count"] != float64(1) {
		t.Errorf("live_idea_count = %v", view["live_idea_count"])
	}
}

func TestHandleSettingsUpdate(t *testing.T) {
	h := newTestHandlers(t)

	res, err := h.HandleSettingsUpdate(context.Background(), toolRequest("settings_update", map[string]any{
		"search_mode": "advanced",
		"theme":       "dark",
	}))
	if err != nil {
		t.Fatalf("HandleSettingsUpdate: %v", err)
	}
	payload := resultPayload(t, res)
	if payload["search_mode"] != "advanced" || payload["theme"] != "dark" {
		t.Errorf("payload = %v", payload)
	}
}

func TestHandleSettingsUpdate_InvalidMode(t *testing.T) {
	h := newTestHandlers(t)

	res, err := h.HandleSettingsUpdate(context.Background(), toolRequest("settings_update", map[string]any{
		"categorization_mode": "psychic",
	}))
	if err != nil {
		t.Fatalf("HandleSettingsUpdate: %v", err)
	}
	if code := errorCode(t, res); code != "INVALID_REQUEST" {
		t.Errorf("code = %q", code)
	}
}

func TestHandleExport(t *testing.T) {
	h := newTestHandlers(t)

	res, err := h.HandleExport(context.Background(), toolRequest("idea_export", map[string]any{}))
	if err != nil {
		t.Fatalf("HandleExport: %v", err)
	}
	payload := resultPayload(t, res)
	if payload["format"] != "markdown" {
		t.Errorf("format = %v", payload["format"])
	}
	doc, _ := payload["document"].(string)
	if !strings.Contains(doc, "# Ideas for session_tools") {
		t.Errorf("document = %q", doc)
	}

	res, err = h.HandleExport(context.Background(), toolRequest("idea_export", map[string]any{
		"format": "csv",
	}))
	if err != nil {
		t.Fatalf("HandleExport: %v", err)
	}
	if code := errorCode(t, res); code != "INVALID_REQUEST" {
		t.Errorf("code = %q", code)
	}
}

func TestErrorResult_UnknownErrorIsOpaque(t *testing.T) {
	res := errorResult(fmt.Errorf("database column mismatch at row 7"))

	payload := resultPayload(t, res)
	errObj := payload["error"].(map[string]any)
	if errObj["code"] != "INTERNAL" {
		t.Errorf("code = %v", errObj["code"])
	}
	if msg, _ := errObj["message"].(string); strings.Contains(msg, "row 7") {
		t.Error("internal details leaked into the tool result")
	}
}
