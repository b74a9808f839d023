package app

import (
	"context"

	"github.com/asismo/idea-management-mvp/internal/errors"
	"github.com/asismo/idea-management-mvp/internal/idea"
	"github.com/asismo/idea-management-mvp/internal/store"
)

// UpdateIdea applies an edit or re-tag to an existing idea, persistence
// first, store after confirmation.
func (a *App) UpdateIdea(ctx context.Context, id string, patch store.IdeaPatch) (*idea.Idea, error) {
	if _, ok := a.Ideas.Get(id); !ok {
		return nil, errors.NewNotFound("idea", id)
	}
	if patch.FolderID != nil {
		if _, ok := a.Folders.Get(*patch.FolderID); !ok {
			return nil, errors.NewPrecondition("destination folder does not exist: " + *patch.FolderID)
		}
	}
	if patch.Tags != nil {
		normalized := idea.NormalizeTags(*patch.Tags)
		patch.Tags = &normalized
	}
	if patch.UpdatedAt == nil {
		now := a.now()
		patch.UpdatedAt = &now
	}

	updated, err := a.remote.UpdateIdea(ctx, id, patch)
	if err != nil {
		return nil, errors.NewPersistence("update idea", err)
	}
	a.Ideas.PatchOne(id, patch)
	return updated, nil
}

// DeleteIdea removes an idea, persistence first, store after confirmation.
func (a *App) DeleteIdea(ctx context.Context, id string) error {
	if _, ok := a.Ideas.Get(id); !ok {
		return errors.NewNotFound("idea", id)
	}
	if err := a.remote.DeleteIdea(ctx, id); err != nil {
		return errors.NewPersistence("delete idea", err)
	}
	a.Ideas.RemoveOne(id)
	a.log.Debug().Str("idea", id).Msg("idea deleted")
	return nil
}
