package store

import (
	"strings"
	"sync"

	"github.com/asismo/idea-management-mvp/internal/idea"
)

// FolderStore is the in-memory folder collection, most-recent-first.
type FolderStore struct {
	subscribers

	mu      sync.RWMutex
	folders []idea.Folder
}

// NewFolderStore creates an empty folder collection.
func NewFolderStore() *FolderStore {
	return &FolderStore{}
}

// FolderPatch is a partial folder update; nil fields are left unchanged.
type FolderPatch struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Icon        *string   `json:"icon,omitempty"`
	IdeaCount   *int      `json:"idea_count,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	UpdatedAt   *int64    `json:"updated_at,omitempty"`
}

// ReplaceAll swaps the whole collection (hydration from the record store).
func (s *FolderStore) ReplaceAll(folders []idea.Folder) {
	s.mu.Lock()
	s.folders = append([]idea.Folder(nil), folders...)
	s.mu.Unlock()
	s.notify()
}

// InsertOne prepends a record.
func (s *FolderStore) InsertOne(f idea.Folder) {
	s.mu.Lock()
	s.folders = append([]idea.Folder{f}, s.folders...)
	s.mu.Unlock()
	s.notify()
}

// PatchOne applies a partial update to the folder with the given id.
func (s *FolderStore) PatchOne(id string, patch FolderPatch) bool {
	s.mu.Lock()
	found := false
	for i := range s.folders {
		if s.folders[i].ID != id {
			continue
		}
		if patch.Name != nil {
			s.folders[i].Name = *patch.Name
		}
		if patch.Description != nil {
			s.folders[i].Description = *patch.Description
		}
		if patch.Icon != nil {
			s.folders[i].Icon = *patch.Icon
		}
		if patch.IdeaCount != nil {
			s.folders[i].IdeaCount = *patch.IdeaCount
		}
		if patch.Tags != nil {
			s.folders[i].Tags = append([]string(nil), (*patch.Tags)...)
		}
		if patch.UpdatedAt != nil {
			s.folders[i].UpdatedAt = *patch.UpdatedAt
		}
		found = true
		break
	}
	s.mu.Unlock()
	if found {
		s.notify()
	}
	return found
}

// RemoveOne drops the folder with the given id.
func (s *FolderStore) RemoveOne(id string) bool {
	s.mu.Lock()
	found := false
	for i := range s.folders {
		if s.folders[i].ID == id {
			s.folders = append(s.folders[:i], s.folders[i+1:]...)
			found = true
			break
		}
	}
	s.mu.Unlock()
	if found {
		s.notify()
	}
	return found
}

// All returns a copy of the collection in display order.
func (s *FolderStore) All() []idea.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]idea.Folder(nil), s.folders...)
}

// Get returns the folder with the given id.
func (s *FolderStore) Get(id string) (idea.Folder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.folders {
		if f.ID == id {
			return f, true
		}
	}
	return idea.Folder{}, false
}

// GetByName returns the folder whose name matches, case-insensitive.
func (s *FolderStore) GetByName(name string) (idea.Folder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.folders {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return idea.Folder{}, false
}

// Names returns all folder names in display order.
func (s *FolderStore) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, len(s.folders))
	for i, f := range s.folders {
		names[i] = f.Name
	}
	return names
}

// Len returns the collection size.
func (s *FolderStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.folders)
}
