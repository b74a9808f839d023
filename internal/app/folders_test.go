package app

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/asismo/idea-management-mvp/internal/errors"
	"github.com/asismo/idea-management-mvp/internal/store"
)

func wantCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()
	var appErr *errors.Error
	if !stderrors.As(err, &appErr) || appErr.Code != code {
		t.Fatalf("error = %v, want code %s", err, code)
	}
}

func TestCreateFolder_DuplicateNameIsConflict(t *testing.T) {
	h := newHarness(t)

	if _, err := h.app.CreateFolder(context.Background(), "Cooking", "", ""); err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	_, err := h.app.CreateFolder(context.Background(), "cooking", "", "")
	wantCode(t, err, errors.ErrConflict)
}

func TestCreateFolder_BlankNameRejected(t *testing.T) {
	h := newHarness(t)

	_, err := h.app.CreateFolder(context.Background(), "   ", "", "")
	wantCode(t, err, errors.ErrInvalidRequest)
}

func TestEnsureFolder_ReturnsExisting(t *testing.T) {
	h := newHarness(t)

	created, err := h.app.CreateFolder(context.Background(), "Cooking", "", "")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	ensured, err := h.app.EnsureFolder(context.Background(), "COOKING")
	if err != nil {
		t.Fatalf("EnsureFolder: %v", err)
	}
	if ensured.ID != created.ID {
		t.Errorf("EnsureFolder created a duplicate: %q vs %q", ensured.ID, created.ID)
	}
}

func TestMergeFolders(t *testing.T) {
	h := newHarness(t)
	h.setGenerator(routeGenerator(t, nil))

	source, err := h.app.CreateFolder(context.Background(), "Recipes", "", "")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	target, err := h.app.CreateFolder(context.Background(), "Cooking", "", "")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}

	if _, err := h.app.SubmitIdea(context.Background(), "pasta from scratch", source.ID, []string{"pasta"}); err != nil {
		t.Fatalf("SubmitIdea: %v", err)
	}
	if _, err := h.app.SubmitIdea(context.Background(), "searing technique", target.ID, []string{"technique"}); err != nil {
		t.Fatalf("SubmitIdea: %v", err)
	}

	sourceTags := []string{"pasta", "shared"}
	targetTags := []string{"technique", "shared"}
	h.app.Folders.PatchOne(source.ID, store.FolderPatch{Tags: &sourceTags})
	h.app.Folders.PatchOne(target.ID, store.FolderPatch{Tags: &targetTags})

	if err := h.app.MergeFolders(context.Background(), source.ID, target.ID); err != nil {
		t.Fatalf("MergeFolders: %v", err)
	}

	// The source's ideas now live in the target.
	if got := h.app.Ideas.CountByFolder(target.ID); got != 2 {
		t.Errorf("target idea count = %d, want 2", got)
	}
	if got := h.app.Ideas.CountByFolder(source.ID); got != 0 {
		t.Errorf("source still owns %d ideas", got)
	}

	merged, ok := h.app.Folders.Get(target.ID)
	if !ok {
		t.Fatal("target folder missing")
	}
	if strings.Join(merged.Tags, ",") != "pasta,shared,technique" {
		t.Errorf("merged tags = %v, want duplicate-free union", merged.Tags)
	}
	if merged.IdeaCount != 2 {
		t.Errorf("merged IdeaCount = %d, want summed 2", merged.IdeaCount)
	}

	if _, ok := h.app.Folders.Get(source.ID); ok {
		t.Error("source folder should be removed")
	}
	if _, ok := h.fake.folderByID(source.ID); ok {
		t.Error("source folder record should be deleted")
	}

	// Merging the already-merged source fails instead of double-deducting.
	err = h.app.MergeFolders(context.Background(), source.ID, target.ID)
	wantCode(t, err, errors.ErrPrecondition)
}

func TestMergeFolders_SelfMergeGuarded(t *testing.T) {
	h := newHarness(t)

	folder, err := h.app.CreateFolder(context.Background(), "Cooking", "", "")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	err = h.app.MergeFolders(context.Background(), folder.ID, folder.ID)
	wantCode(t, err, errors.ErrPrecondition)
}

func TestDeleteFolder_ReassignsIdeasToFallback(t *testing.T) {
	h := newHarness(t)
	h.setGenerator(routeGenerator(t, nil))

	folder, err := h.app.CreateFolder(context.Background(), "Cooking", "", "")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	created, err := h.app.SubmitIdea(context.Background(), "weeknight meal prep", folder.ID, nil)
	if err != nil {
		t.Fatalf("SubmitIdea: %v", err)
	}

	if err := h.app.DeleteFolder(context.Background(), folder.ID); err != nil {
		t.Fatalf("DeleteFolder: %v", err)
	}

	fallback, ok := h.app.Folders.GetByName("General")
	if !ok {
		t.Fatal("fallback folder not created")
	}
	moved, _ := h.app.Ideas.Get(created.ID)
	if moved.FolderID != fallback.ID {
		t.Errorf("idea FolderID = %q, want fallback %q", moved.FolderID, fallback.ID)
	}
	if _, ok := h.app.Folders.Get(folder.ID); ok {
		t.Error("deleted folder still present")
	}
}

func TestDeleteFolder_FallbackWithIdeasIsGuarded(t *testing.T) {
	h := newHarness(t)
	h.setGenerator(routeGenerator(t, nil))

	fallback, err := h.app.EnsureFolder(context.Background(), "General")
	if err != nil {
		t.Fatalf("EnsureFolder: %v", err)
	}
	if _, err := h.app.SubmitIdea(context.Background(), "unfiled thought", fallback.ID, nil); err != nil {
		t.Fatalf("SubmitIdea: %v", err)
	}

	err = h.app.DeleteFolder(context.Background(), fallback.ID)
	wantCode(t, err, errors.ErrPrecondition)
}

func TestDescribeFolder(t *testing.T) {
	h := newHarness(t)
	h.setGenerator(routeGenerator(t, nil))

	folder, err := h.app.CreateFolder(context.Background(), "Cooking", "", "")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if _, err := h.app.SubmitIdea(context.Background(), "fermentation basics", folder.ID, nil); err != nil {
		t.Fatalf("SubmitIdea: %v", err)
	}

	updated, err := h.app.DescribeFolder(context.Background(), folder.ID)
	if err != nil {
		t.Fatalf("DescribeFolder: %v", err)
	}
	if updated.Description != "Recipes and kitchen experiments." {
		t.Errorf("Description = %q", updated.Description)
	}

	_, err = h.app.DescribeFolder(context.Background(), "missing")
	wantCode(t, err, errors.ErrNotFound)
}
