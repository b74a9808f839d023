package app

import (
	"context"

	"github.com/asismo/idea-management-mvp/internal/errors"
	"github.com/asismo/idea-management-mvp/internal/idea"
	"github.com/asismo/idea-management-mvp/internal/store"
)

// MergeFolders consolidates the source folder into the target:
//
//  1. collect the ideas of both folders from the idea store,
//  2. regenerate the target's description over the combined set,
//  3. persist the target update, reassign the source's ideas to the target,
//     and delete the source,
//  4. update the folder store: target absorbs the duplicate-free tag union
//     and the summed idea count; source is removed.
//
// Both folders must exist and be distinct. The guard at entry means merging
// an already-merged source fails instead of double-deducting.
func (a *App) MergeFolders(ctx context.Context, sourceID, targetID string) error {
	if sourceID == targetID {
		return errors.NewPrecondition("cannot merge a folder into itself")
	}
	source, ok := a.Folders.Get(sourceID)
	if !ok {
		return errors.NewPrecondition("source folder does not exist: " + sourceID)
	}
	target, ok := a.Folders.Get(targetID)
	if !ok {
		return errors.NewPrecondition("target folder does not exist: " + targetID)
	}

	sourceIdeas := a.Ideas.ByFolder(sourceID)
	targetIdeas := a.Ideas.ByFolder(targetID)
	combined := append(append([]idea.Idea(nil), sourceIdeas...), targetIdeas...)

	description := a.engine.GenerateFolderDescription(ctx, target.Name, combined)

	now := a.now()
	mergedTags := idea.MergeTags(source.Tags, target.Tags)
	count := source.IdeaCount + target.IdeaCount

	patch := store.FolderPatch{
		Description: &description,
		Tags:        &mergedTags,
		IdeaCount:   &count,
		UpdatedAt:   &now,
	}
	if _, err := a.remote.UpdateFolder(ctx, targetID, patch); err != nil {
		return errors.NewPersistence("update target folder", err)
	}

	// The moved ideas keep their folder reference alive: reassign before the
	// source is deleted.
	if err := a.reassignIdeas(ctx, sourceIdeas, targetID); err != nil {
		return err
	}

	if err := a.remote.DeleteFolder(ctx, sourceID); err != nil {
		return errors.NewPersistence("delete source folder", err)
	}

	a.Folders.PatchOne(targetID, patch)
	a.Folders.RemoveOne(sourceID)

	a.log.Info().
		Str("source", source.Name).
		Str("target", target.Name).
		Int("ideas", len(combined)).
		Msg("folders merged")
	return nil
}
