package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/asismo/idea-management-mvp/internal/ai"
	"github.com/asismo/idea-management-mvp/internal/engine"
	"github.com/asismo/idea-management-mvp/internal/idea"
	"github.com/asismo/idea-management-mvp/internal/remote"
	"github.com/asismo/idea-management-mvp/internal/store"
)

// fakeRecordStore is an in-memory implementation of the persistence contract,
// served over httptest. Failure injection flags let tests exercise the
// write-after-confirm paths.
type fakeRecordStore struct {
	mu      sync.Mutex
	ideas   []idea.Idea
	folders []idea.Folder
	sets    map[string]idea.Settings
	nextID  int

	failCreateIdea    bool
	failPatchSettings bool
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{sets: make(map[string]idea.Settings)}
}

func (f *fakeRecordStore) newID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s_%d", prefix, f.nextID)
}

func (f *fakeRecordStore) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/ideas", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeTestJSON(w, http.StatusOK, append([]idea.Idea{}, f.ideas...))
	})
	mux.HandleFunc("POST /v1/ideas", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.failCreateIdea {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		var fields remote.NewIdea
		_ = json.NewDecoder(r.Body).Decode(&fields)
		now := time.Now().Unix()
		it := idea.Idea{
			ID:                       f.newID("idea"),
			SessionID:                fields.SessionID,
			Content:                  fields.Content,
			Tags:                     fields.Tags,
			FolderID:                 fields.FolderID,
			AICategorizationAccepted: fields.AICategorizationAccepted,
			CreatedAt:                now,
			UpdatedAt:                now,
		}
		f.ideas = append(f.ideas, it)
		writeTestJSON(w, http.StatusCreated, it)
	})
	mux.HandleFunc("PATCH /v1/ideas/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var patch store.IdeaPatch
		_ = json.NewDecoder(r.Body).Decode(&patch)
		for i := range f.ideas {
			if f.ideas[i].ID != r.PathValue("id") {
				continue
			}
			if patch.Content != nil {
				f.ideas[i].Content = *patch.Content
			}
			if patch.Tags != nil {
				f.ideas[i].Tags = *patch.Tags
			}
			if patch.FolderID != nil {
				f.ideas[i].FolderID = *patch.FolderID
			}
			writeTestJSON(w, http.StatusOK, f.ideas[i])
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("DELETE /v1/ideas/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.ideas {
			if f.ideas[i].ID == r.PathValue("id") {
				f.ideas = append(f.ideas[:i], f.ideas[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	})

	mux.HandleFunc("GET /v1/folders", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeTestJSON(w, http.StatusOK, append([]idea.Folder{}, f.folders...))
	})
	mux.HandleFunc("POST /v1/folders", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var fields remote.NewFolder
		_ = json.NewDecoder(r.Body).Decode(&fields)
		now := time.Now().Unix()
		folder := idea.Folder{
			ID:          f.newID("folder"),
			SessionID:   fields.SessionID,
			Name:        fields.Name,
			Description: fields.Description,
			Icon:        fields.Icon,
			IdeaCount:   fields.IdeaCount,
			Tags:        fields.Tags,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		f.folders = append(f.folders, folder)
		writeTestJSON(w, http.StatusCreated, folder)
	})
	mux.HandleFunc("PATCH /v1/folders/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var patch store.FolderPatch
		_ = json.NewDecoder(r.Body).Decode(&patch)
		for i := range f.folders {
			if f.folders[i].ID != r.PathValue("id") {
				continue
			}
			if patch.Name != nil {
				f.folders[i].Name = *patch.Name
			}
			if patch.Description != nil {
				f.folders[i].Description = *patch.Description
			}
			if patch.IdeaCount != nil {
				f.folders[i].IdeaCount = *patch.IdeaCount
			}
			if patch.Tags != nil {
				f.folders[i].Tags = *patch.Tags
			}
			writeTestJSON(w, http.StatusOK, f.folders[i])
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("DELETE /v1/folders/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.folders {
			if f.folders[i].ID == r.PathValue("id") {
				f.folders = append(f.folders[:i], f.folders[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	})

	mux.HandleFunc("GET /v1/settings/{session}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		s, ok := f.sets[r.PathValue("session")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeTestJSON(w, http.StatusOK, s)
	})
	mux.HandleFunc("PUT /v1/settings/{session}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var s idea.Settings
		_ = json.NewDecoder(r.Body).Decode(&s)
		s.SessionID = r.PathValue("session")
		f.sets[s.SessionID] = s
		writeTestJSON(w, http.StatusOK, s)
	})
	mux.HandleFunc("PATCH /v1/settings/{session}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.failPatchSettings {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		s, ok := f.sets[r.PathValue("session")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var patch store.SettingsPatch
		_ = json.NewDecoder(r.Body).Decode(&patch)
		if patch.CategorizationMode != nil {
			s.CategorizationMode = *patch.CategorizationMode
		}
		if patch.SearchMode != nil {
			s.SearchMode = *patch.SearchMode
		}
		if patch.Theme != nil {
			s.Theme = *patch.Theme
		}
		if patch.AutoUpdateDescriptions != nil {
			s.AutoUpdateDescriptions = *patch.AutoUpdateDescriptions
		}
		if patch.OnboardingCompleted != nil {
			s.OnboardingCompleted = *patch.OnboardingCompleted
		}
		f.sets[s.SessionID] = s
		writeTestJSON(w, http.StatusOK, s)
	})

	return mux
}

func (f *fakeRecordStore) ideaCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ideas)
}

func (f *fakeRecordStore) folderByID(id string) (idea.Folder, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, folder := range f.folders {
		if folder.ID == id {
			return folder, true
		}
	}
	return idea.Folder{}, false
}

func writeTestJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// harness wires an App against the fake record store and a swappable
// generator function.
type harness struct {
	app   *App
	fake  *fakeRecordStore
	srv   *httptest.Server
	genMu sync.Mutex
	gen   func(ctx context.Context, prompt string) (string, error)
}

func (h *harness) setGenerator(fn func(ctx context.Context, prompt string) (string, error)) {
	h.genMu.Lock()
	h.gen = fn
	h.genMu.Unlock()
}

func (h *harness) generate(ctx context.Context, prompt string) (string, error) {
	h.genMu.Lock()
	fn := h.gen
	h.genMu.Unlock()
	if fn == nil {
		return "", fmt.Errorf("no generator configured")
	}
	return fn(ctx, prompt)
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{fake: newFakeRecordStore()}
	h.srv = httptest.NewServer(h.fake.handler())
	t.Cleanup(h.srv.Close)

	rc := remote.New(h.srv.URL, remote.WithMaxRetryElapsed(200*time.Millisecond))
	gen := ai.GeneratorFunc(h.generate)
	eng := engine.New(gen, ai.NewCache(64, time.Minute), zerolog.Nop())

	h.app = New("session_test", rc, eng, zerolog.Nop())
	if err := h.app.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return h
}

// tagsResponse builds a canned tag generation response.
func tagsResponse(tags ...string) string {
	quoted := make([]string, len(tags))
	for i, tag := range tags {
		quoted[i] = fmt.Sprintf("%q", tag)
	}
	return fmt.Sprintf(`{"tags": [%s]}`, strings.Join(quoted, ", "))
}
