// Package app is the orchestration layer. It sequences store mutations,
// persistence calls, and downstream AI calls for the capture, merge, search,
// and settings flows.
//
// The stores follow a read-through, write-after-confirm pattern: a store is
// mutated only after the corresponding persistence call has resolved, so the
// in-memory state never contradicts a successful write. AI failures are
// absorbed by the engine's fallbacks; persistence failures abort forward
// progress and surface to the caller with user state preserved.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/asismo/idea-management-mvp/internal/engine"
	"github.com/asismo/idea-management-mvp/internal/errors"
	"github.com/asismo/idea-management-mvp/internal/idea"
	"github.com/asismo/idea-management-mvp/internal/remote"
	"github.com/asismo/idea-management-mvp/internal/store"
)

// App owns the per-session state containers and external clients. Construct
// one per session/application root and inject it; there is no ambient
// singleton.
type App struct {
	sessionID string

	Ideas    *store.IdeaStore
	Folders  *store.FolderStore
	Settings *store.SettingsStore

	remote *remote.Client
	engine *engine.Engine
	log    zerolog.Logger

	now func() int64 // overridable for tests
}

// New creates an App for one session.
func New(sessionID string, rc *remote.Client, eng *engine.Engine, log zerolog.Logger) *App {
	return &App{
		sessionID: sessionID,
		Ideas:     store.NewIdeaStore(),
		Folders:   store.NewFolderStore(),
		Settings:  store.NewSettingsStore(),
		remote:    rc,
		engine:    eng,
		log:       log,
		now:       func() int64 { return time.Now().Unix() },
	}
}

// SessionID returns the opaque identifier scoping this App's records.
func (a *App) SessionID() string {
	return a.sessionID
}

// Load hydrates the three stores from the record store. Settings are lazily
// created with defaults if the session has none yet.
func (a *App) Load(ctx context.Context) error {
	ideas, err := a.remote.ListIdeas(ctx, a.sessionID)
	if err != nil {
		return errors.NewPersistence("list ideas", err)
	}
	folders, err := a.remote.ListFolders(ctx, a.sessionID)
	if err != nil {
		return errors.NewPersistence("list folders", err)
	}

	settings, err := a.remote.GetSettings(ctx, a.sessionID)
	if err != nil {
		return errors.NewPersistence("get settings", err)
	}
	if settings == nil {
		created, err := a.remote.PutSettings(ctx, idea.DefaultSettings(a.sessionID))
		if err != nil {
			return errors.NewPersistence("create settings", err)
		}
		settings = created
	}

	a.Ideas.ReplaceAll(ideas)
	a.Folders.ReplaceAll(folders)
	a.Settings.Replace(*settings)

	a.log.Debug().
		Int("ideas", len(ideas)).
		Int("folders", len(folders)).
		Msg("session hydrated")
	return nil
}

// CategorizationMode returns the session's categorization mode,
// defaulting to simple before settings are loaded.
func (a *App) CategorizationMode() idea.Mode {
	if s, ok := a.Settings.Get(); ok {
		return s.CategorizationMode
	}
	return idea.ModeSimple
}

// SearchMode returns the session's search mode, defaulting to simple.
func (a *App) SearchMode() idea.Mode {
	if s, ok := a.Settings.Get(); ok {
		return s.SearchMode
	}
	return idea.ModeSimple
}

// FolderIdeaCount returns the live idea count for a folder, computed from
// the idea collection. The stored Folder.IdeaCount is never trusted.
func (a *App) FolderIdeaCount(folderID string) int {
	return a.Ideas.CountByFolder(folderID)
}
