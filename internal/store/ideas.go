package store

import (
	"strings"
	"sync"

	"github.com/asismo/idea-management-mvp/internal/idea"
)

// IdeaStore is the in-memory idea collection, most-recent-first.
type IdeaStore struct {
	subscribers

	mu    sync.RWMutex
	ideas []idea.Idea
}

// NewIdeaStore creates an empty idea collection.
func NewIdeaStore() *IdeaStore {
	return &IdeaStore{}
}

// IdeaPatch is a partial idea update; nil fields are left unchanged.
type IdeaPatch struct {
	Content   *string   `json:"content,omitempty"`
	Tags      *[]string `json:"tags,omitempty"`
	FolderID  *string   `json:"folder_id,omitempty"`
	UpdatedAt *int64    `json:"updated_at,omitempty"`
}

// ReplaceAll swaps the whole collection (hydration from the record store).
func (s *IdeaStore) ReplaceAll(ideas []idea.Idea) {
	s.mu.Lock()
	s.ideas = append([]idea.Idea(nil), ideas...)
	s.mu.Unlock()
	s.notify()
}

// InsertOne prepends a record; display convention is most-recent-first.
func (s *IdeaStore) InsertOne(it idea.Idea) {
	s.mu.Lock()
	s.ideas = append([]idea.Idea{it}, s.ideas...)
	s.mu.Unlock()
	s.notify()
}

// PatchOne applies a partial update to the idea with the given id.
// Returns false if the id is not present.
func (s *IdeaStore) PatchOne(id string, patch IdeaPatch) bool {
	s.mu.Lock()
	found := false
	for i := range s.ideas {
		if s.ideas[i].ID != id {
			continue
		}
		if patch.Content != nil {
			s.ideas[i].Content = *patch.Content
		}
		if patch.Tags != nil {
			s.ideas[i].Tags = append([]string(nil), (*patch.Tags)...)
		}
		if patch.FolderID != nil {
			s.ideas[i].FolderID = *patch.FolderID
		}
		if patch.UpdatedAt != nil {
			s.ideas[i].UpdatedAt = *patch.UpdatedAt
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

// RemoveOne drops the idea with the given id. Returns false if absent.
func (s *IdeaStore) RemoveOne(id string) bool {
	s.mu.Lock()
	found := false
	for i := range s.ideas {
		if s.ideas[i].ID == id {
			s.ideas = append(s.ideas[:i], s.ideas[i+1:]...)
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
func (s *IdeaStore) All() []idea.Idea {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]idea.Idea(nil), s.ideas...)
}

// Get returns the idea with the given id.
func (s *IdeaStore) Get(id string) (idea.Idea, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.ideas {
		if it.ID == id {
			return it, true
		}
	}
	return idea.Idea{}, false
}

// ByFolder returns the ideas in the given folder, preserving display order.
func (s *IdeaStore) ByFolder(folderID string) []idea.Idea {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]idea.Idea, 0)
	for _, it := range s.ideas {
		if it.FolderID == folderID {
			out = append(out, it)
		}
	}
	return out
}

// CountByFolder returns the live idea count for a folder. The denormalized
// Folder.IdeaCount field is never trusted for display; this is.
func (s *IdeaStore) CountByFolder(folderID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, it := range s.ideas {
		if it.FolderID == folderID {
			n++
		}
	}
	return n
}

// BySubstring returns ideas whose content or tags contain the query,
// case-insensitive. This is the cheap filter used for display filtering;
// ranked search lives in the engine.
func (s *IdeaStore) BySubstring(query string) []idea.Idea {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.All()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]idea.Idea, 0)
	for _, it := range s.ideas {
		if strings.Contains(strings.ToLower(it.Content), q) {
			out = append(out, it)
			continue
		}
		for _, tag := range it.Tags {
			if strings.Contains(strings.ToLower(tag), q) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// Len returns the collection size.
func (s *IdeaStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ideas)
}
