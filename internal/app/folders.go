package app

import (
	"context"
	"strings"

	"github.com/asismo/idea-management-mvp/internal/errors"
	"github.com/asismo/idea-management-mvp/internal/idea"
	"github.com/asismo/idea-management-mvp/internal/remote"
	"github.com/asismo/idea-management-mvp/internal/store"
)

// CreateFolder persists a new folder and inserts it into the store.
func (a *App) CreateFolder(ctx context.Context, name, description, icon string) (*idea.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewInvalidRequest("folder name is required")
	}
	if _, exists := a.Folders.GetByName(name); exists {
		return nil, errors.NewConflict("folder " + name + " already exists")
	}
	if icon == "" {
		icon = pickIcon(name)
	}

	created, err := a.remote.CreateFolder(ctx, remote.NewFolder{
		SessionID:   a.sessionID,
		Name:        name,
		Description: description,
		Icon:        icon,
		IdeaCount:   0,
		Tags:        []string{},
	})
	if err != nil {
		return nil, errors.NewPersistence("create folder", err)
	}

	a.Folders.InsertOne(*created)
	a.log.Debug().Str("folder", created.Name).Str("id", created.ID).Msg("folder created")
	return created, nil
}

// EnsureFolder returns the folder with the given name, creating it if absent.
// The capture flow uses this so every idea's folder reference resolves to a
// live folder at the moment of creation.
func (a *App) EnsureFolder(ctx context.Context, name string) (*idea.Folder, error) {
	if f, ok := a.Folders.GetByName(name); ok {
		return &f, nil
	}
	return a.CreateFolder(ctx, name, "Auto-generated folder", pickIcon(name))
}

// DeleteFolder removes a folder. Its ideas are reassigned to the fallback
// folder first (created on demand) rather than cascaded.
func (a *App) DeleteFolder(ctx context.Context, id string) error {
	folder, ok := a.Folders.Get(id)
	if !ok {
		return errors.NewPrecondition("folder does not exist: " + id)
	}

	orphans := a.Ideas.ByFolder(id)
	if len(orphans) > 0 {
		if strings.EqualFold(folder.Name, idea.FallbackFolderName) {
			return errors.NewPrecondition("cannot delete the fallback folder while it has ideas")
		}
		fallback, err := a.EnsureFolder(ctx, idea.FallbackFolderName)
		if err != nil {
			return err
		}
		if err := a.reassignIdeas(ctx, orphans, fallback.ID); err != nil {
			return err
		}
	}

	if err := a.remote.DeleteFolder(ctx, id); err != nil {
		return errors.NewPersistence("delete folder", err)
	}
	a.Folders.RemoveOne(id)
	a.log.Debug().Str("folder", folder.Name).Msg("folder deleted")
	return nil
}

// DescribeFolder regenerates one folder's description on demand and returns
// the updated record.
func (a *App) DescribeFolder(ctx context.Context, folderID string) (*idea.Folder, error) {
	folder, ok := a.Folders.Get(folderID)
	if !ok {
		return nil, errors.NewNotFound("folder", folderID)
	}
	if err := a.refreshFolderDescription(ctx, folder); err != nil {
		return nil, err
	}
	updated, _ := a.Folders.Get(folderID)
	return &updated, nil
}

// reassignIdeas moves ideas to a new folder, persistence first, store after.
func (a *App) reassignIdeas(ctx context.Context, ideas []idea.Idea, folderID string) error {
	now := a.now()
	for _, it := range ideas {
		patch := store.IdeaPatch{FolderID: &folderID, UpdatedAt: &now}
		if _, err := a.remote.UpdateIdea(ctx, it.ID, patch); err != nil {
			return errors.NewPersistence("reassign idea", err)
		}
		a.Ideas.PatchOne(it.ID, patch)
	}
	return nil
}

// pickIcon deterministically picks a glyph for a folder name.
func pickIcon(name string) string {
	if strings.EqualFold(name, idea.FallbackFolderName) {
		return idea.DefaultFolderIcon
	}
	var sum int
	for _, r := range strings.ToLower(name) {
		sum += int(r)
	}
	return idea.FolderIcons[sum%len(idea.FolderIcons)]
}
