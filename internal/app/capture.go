package app

import (
	"context"
	"sync"
	"unicode/utf8"

	"github.com/asismo/idea-management-mvp/internal/engine"
	"github.com/asismo/idea-management-mvp/internal/errors"
	"github.com/asismo/idea-management-mvp/internal/idea"
	"github.com/asismo/idea-management-mvp/internal/remote"
	"github.com/asismo/idea-management-mvp/internal/store"
)

// CaptureState is the capture flow state.
type CaptureState string

const (
	CaptureIdle       CaptureState = "idle"
	CaptureEditing    CaptureState = "editing_content"
	CaptureSuggesting CaptureState = "suggestions_pending"
	CaptureReady      CaptureState = "suggestions_ready"
	CaptureSubmitting CaptureState = "submitting"
)

// minSuggestChars gates the suggestion round-trip: content must be longer
// than this before categorization is attempted.
const minSuggestChars = 10

// Capture drives one capture flow:
//
//	Idle → EditingContent → SuggestionsPending → SuggestionsReady
//	     → Submitting → Idle (success) | EditingContent (failure, content kept)
//
// At most one categorization+tag round-trip is in flight at a time. Content
// changes arriving while busy are accepted but do not trigger a new
// round-trip, so suggestions may lag behind the latest keystroke. This is a
// plain busy flag, not a sliding debounce.
type Capture struct {
	app *App

	mu               sync.Mutex
	state            CaptureState
	content          string
	busy             bool
	suggestion       *engine.Categorization
	suggestedTags    []string
	selectedFolderID string
}

// NewCapture creates a capture flow bound to this App.
func (a *App) NewCapture() *Capture {
	return &Capture{app: a, state: CaptureIdle}
}

// State returns the current flow state.
func (c *Capture) State() CaptureState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Content returns the current draft content.
func (c *Capture) Content() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.content
}

// Suggestion returns the latest folder suggestion and tag list, if any.
func (c *Capture) Suggestion() (*engine.Categorization, []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.suggestion, append([]string(nil), c.suggestedTags...)
}

// SelectedFolderID returns the auto- or user-selected destination folder.
func (c *Capture) SelectedFolderID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedFolderID
}

// SelectFolder overrides the destination folder.
func (c *Capture) SelectFolder(folderID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectedFolderID = folderID
}

// SetContent accepts a content change and, when the content is long enough
// and no round-trip is in flight, runs categorization and tag generation and
// auto-selects the suggested folder. The round-trip is synchronous; callers
// that want it off their loop run SetContent on its own goroutine.
func (c *Capture) SetContent(ctx context.Context, content string) {
	c.mu.Lock()
	c.content = content
	if c.state == CaptureIdle {
		c.state = CaptureEditing
	}
	trigger := utf8.RuneCountInString(content) > minSuggestChars && !c.busy
	if trigger {
		c.busy = true
		c.state = CaptureSuggesting
	}
	c.mu.Unlock()

	if !trigger {
		return
	}

	mode := c.app.CategorizationMode()
	folderNames := c.app.Folders.Names()

	categorization := c.app.engine.Categorize(ctx, content, folderNames, mode)
	tags := c.app.engine.GenerateTags(ctx, content)

	c.mu.Lock()
	c.suggestion = &categorization
	c.suggestedTags = tags
	if f, ok := c.app.Folders.GetByName(categorization.Folder); ok {
		c.selectedFolderID = f.ID
	}
	c.busy = false
	c.state = CaptureReady
	c.mu.Unlock()
}

// Submit persists the draft as a new idea. On success the flow resets to
// Idle; on failure it returns to EditingContent with the typed content
// retained. An empty draft or missing folder selection is a guarded no-op.
func (c *Capture) Submit(ctx context.Context) (*idea.Idea, error) {
	c.mu.Lock()
	if c.content == "" {
		c.mu.Unlock()
		return nil, errors.NewPrecondition("nothing to submit")
	}
	if c.busy {
		c.mu.Unlock()
		return nil, errors.NewPrecondition("suggestions still pending")
	}
	content := c.content
	folderID := c.selectedFolderID
	tags := append([]string(nil), c.suggestedTags...)
	c.state = CaptureSubmitting
	c.mu.Unlock()

	created, err := c.app.SubmitIdea(ctx, content, folderID, tags)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		// Content retained for retry
		c.state = CaptureEditing
		return nil, err
	}
	c.content = ""
	c.suggestion = nil
	c.suggestedTags = nil
	c.selectedFolderID = ""
	c.state = CaptureIdle
	return created, nil
}

// SubmitIdea runs the submit path: ensure the destination folder exists
// (falling back to the default folder), create the idea, and then, if the
// session enables it, regenerate and persist the destination folder's
// description from all ideas currently in it, read from the idea store.
// Each step's result is awaited before the next begins.
func (a *App) SubmitIdea(ctx context.Context, content, folderID string, tags []string) (*idea.Idea, error) {
	if content == "" {
		return nil, errors.NewInvalidRequest("content is required")
	}

	folder, ok := a.Folders.Get(folderID)
	if !ok {
		created, err := a.EnsureFolder(ctx, idea.FallbackFolderName)
		if err != nil {
			return nil, err
		}
		folder = *created
		folderID = created.ID
	}

	created, err := a.remote.CreateIdea(ctx, remote.NewIdea{
		SessionID:                a.sessionID,
		Content:                  content,
		FolderID:                 folderID,
		Tags:                     idea.NormalizeTags(tags),
		AICategorizationAccepted: true,
	})
	if err != nil {
		return nil, errors.NewPersistence("create idea", err)
	}
	a.Ideas.InsertOne(*created)

	if s, ok := a.Settings.Get(); ok && s.AutoUpdateDescriptions {
		if err := a.refreshFolderDescription(ctx, folder); err != nil {
			return nil, err
		}
	}

	a.log.Debug().Str("idea", created.ID).Str("folder", folder.Name).Msg("idea captured")
	return created, nil
}

// refreshFolderDescription recomputes a folder's description from the live
// idea collection and persists it. The denormalized idea count is refreshed
// opportunistically since the record is being patched anyway.
func (a *App) refreshFolderDescription(ctx context.Context, folder idea.Folder) error {
	folderIdeas := a.Ideas.ByFolder(folder.ID)
	description := a.engine.GenerateFolderDescription(ctx, folder.Name, folderIdeas)

	now := a.now()
	count := len(folderIdeas)
	patch := store.FolderPatch{
		Description: &description,
		IdeaCount:   &count,
		UpdatedAt:   &now,
	}
	if _, err := a.remote.UpdateFolder(ctx, folder.ID, patch); err != nil {
		return errors.NewPersistence("update folder description", err)
	}
	a.Folders.PatchOne(folder.ID, patch)
	return nil
}
