package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/asismo/idea-management-mvp/internal/errors"
)

// routeGenerator answers each prompt kind with a canned response and counts
// description calls.
func routeGenerator(t *testing.T, descriptionCalls *int32) func(ctx context.Context, prompt string) (string, error) {
	return func(ctx context.Context, prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "extracts relevant tags"):
			return tagsResponse("cooking", "pasta"), nil
		case strings.Contains(prompt, "summarizes folder contents"):
			if descriptionCalls != nil {
				atomic.AddInt32(descriptionCalls, 1)
			}
			return "Recipes and kitchen experiments.", nil
		default:
			t.Errorf("unexpected prompt:\n%s", prompt)
			return "", fmt.Errorf("unexpected prompt")
		}
	}
}

func TestCapture_ShortContentDoesNotTriggerSuggestions(t *testing.T) {
	h := newHarness(t)
	var calls int32
	h.setGenerator(func(ctx context.Context, prompt string) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "", nil
	})

	c := h.app.NewCapture()
	c.SetContent(context.Background(), "short")

	if c.State() != CaptureEditing {
		t.Errorf("state = %q, want editing", c.State())
	}
	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Errorf("generator called %d times for short content", got)
	}
	if suggestion, _ := c.Suggestion(); suggestion != nil {
		t.Errorf("suggestion = %+v, want none", suggestion)
	}
}

func TestCapture_EndToEnd(t *testing.T) {
	h := newHarness(t)
	var descriptions int32
	h.setGenerator(routeGenerator(t, &descriptions))

	folder, err := h.app.CreateFolder(context.Background(), "Cooking", "", "")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}

	c := h.app.NewCapture()
	c.SetContent(context.Background(), "cooking experiments with pasta sauce")

	if c.State() != CaptureReady {
		t.Fatalf("state = %q, want suggestions ready", c.State())
	}
	suggestion, tags := c.Suggestion()
	if suggestion == nil || suggestion.Folder != "Cooking" {
		t.Fatalf("suggestion = %+v, want Cooking", suggestion)
	}
	if len(tags) != 2 {
		t.Errorf("tags = %v", tags)
	}
	if c.SelectedFolderID() != folder.ID {
		t.Errorf("selected folder = %q, want auto-selected %q", c.SelectedFolderID(), folder.ID)
	}

	created, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if created.FolderID != folder.ID {
		t.Errorf("created.FolderID = %q", created.FolderID)
	}
	if !created.AICategorizationAccepted {
		t.Error("capture flow ideas should carry AICategorizationAccepted")
	}

	// Flow reset.
	if c.State() != CaptureIdle || c.Content() != "" {
		t.Errorf("flow not reset: state=%q content=%q", c.State(), c.Content())
	}

	// The destination folder's description is regenerated exactly once,
	// computed after the idea landed in the store.
	if got := atomic.LoadInt32(&descriptions); got != 1 {
		t.Errorf("description generated %d times, want 1", got)
	}
	stored, ok := h.fake.folderByID(folder.ID)
	if !ok {
		t.Fatal("folder record missing")
	}
	if stored.Description != "Recipes and kitchen experiments." {
		t.Errorf("Description = %q", stored.Description)
	}
	if stored.IdeaCount != 1 {
		t.Errorf("IdeaCount = %d, want refreshed to 1", stored.IdeaCount)
	}
}

func TestCapture_SubmitFailureRetainsContent(t *testing.T) {
	h := newHarness(t)
	h.setGenerator(func(ctx context.Context, prompt string) (string, error) {
		return "", fmt.Errorf("service down")
	})
	h.fake.failCreateIdea = true

	c := h.app.NewCapture()
	c.SetContent(context.Background(), "a draft worth keeping around")

	_, err := c.Submit(context.Background())
	if err == nil {
		t.Fatal("expected persistence error")
	}
	var appErr *errors.Error
	if !stderrors.As(err, &appErr) || appErr.Code != errors.ErrPersistence {
		t.Errorf("error = %v, want persistence code", err)
	}

	if c.State() != CaptureEditing {
		t.Errorf("state = %q, want editing for retry", c.State())
	}
	if c.Content() != "a draft worth keeping around" {
		t.Errorf("content lost: %q", c.Content())
	}
	if h.fake.ideaCount() != 0 || h.app.Ideas.Len() != 0 {
		t.Error("failed submit must not leave records behind")
	}
}

func TestCapture_SubmitEmptyDraftGuarded(t *testing.T) {
	h := newHarness(t)

	c := h.app.NewCapture()
	_, err := c.Submit(context.Background())

	var appErr *errors.Error
	if !stderrors.As(err, &appErr) || appErr.Code != errors.ErrPrecondition {
		t.Errorf("error = %v, want precondition", err)
	}
}

func TestCapture_MissingFolderFallsBackToGeneral(t *testing.T) {
	h := newHarness(t)
	h.setGenerator(routeGenerator(t, nil))

	// No folders exist, so nothing matches and nothing is auto-selected.
	c := h.app.NewCapture()
	c.SetContent(context.Background(), "thoughts about nothing in particular")
	if c.SelectedFolderID() != "" {
		t.Fatalf("selected folder = %q, want empty", c.SelectedFolderID())
	}

	created, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	fallback, ok := h.app.Folders.GetByName("General")
	if !ok {
		t.Fatal("fallback folder not created")
	}
	if created.FolderID != fallback.ID {
		t.Errorf("created.FolderID = %q, want fallback %q", created.FolderID, fallback.ID)
	}
}
