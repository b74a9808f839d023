package devserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/asismo/idea-management-mvp/internal/idea"
	"github.com/asismo/idea-management-mvp/internal/remote"
	"github.com/asismo/idea-management-mvp/internal/store"
)

// Handlers contains the HTTP route handlers for the record store.
type Handlers struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewServer wires the record store routes onto an http.Server.
func NewServer(db *sql.DB, log zerolog.Logger, bind string, port int) *http.Server {
	h := &Handlers{db: db, log: log}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/ideas", h.HandleListIdeas)
	mux.HandleFunc("POST /v1/ideas", h.HandleCreateIdea)
	mux.HandleFunc("PATCH /v1/ideas/{id}", h.HandlePatchIdea)
	mux.HandleFunc("DELETE /v1/ideas/{id}", h.HandleDeleteIdea)

	mux.HandleFunc("GET /v1/folders", h.HandleListFolders)
	mux.HandleFunc("POST /v1/folders", h.HandleCreateFolder)
	mux.HandleFunc("PATCH /v1/folders/{id}", h.HandlePatchFolder)
	mux.HandleFunc("DELETE /v1/folders/{id}", h.HandleDeleteFolder)

	mux.HandleFunc("GET /v1/settings/{session}", h.HandleGetSettings)
	mux.HandleFunc("PUT /v1/settings/{session}", h.HandlePutSettings)
	mux.HandleFunc("PATCH /v1/settings/{session}", h.HandlePatchSettings)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", bind, port),
		Handler: mux,
	}
}

// Run starts the server and handles graceful shutdown on SIGINT/SIGTERM.
func Run(srv *http.Server, log zerolog.Logger) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Info().Str("addr", srv.Addr).Msg("record store listening")

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Info().Msg("shutting down record store")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

func (h *Handlers) HandleListIdeas(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}
	ideas, err := listIdeas(r.Context(), h.db, sessionID)
	if err != nil {
		h.internal(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ideas)
}

func (h *Handlers) HandleCreateIdea(w http.ResponseWriter, r *http.Request) {
	var fields remote.NewIdea
	if !decodeBody(w, r, &fields) {
		return
	}
	if fields.SessionID == "" || fields.Content == "" || fields.FolderID == "" {
		writeError(w, http.StatusBadRequest, "session_id, content and folder_id are required")
		return
	}
	created, err := insertIdea(r.Context(), h.db, fields)
	if err != nil {
		h.internal(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handlers) HandlePatchIdea(w http.ResponseWriter, r *http.Request) {
	var patch store.IdeaPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	updated, err := patchIdea(r.Context(), h.db, r.PathValue("id"), patch)
	if err == sql.ErrNoRows {
		writeError(w, http.StatusNotFound, "idea not found")
		return
	}
	if err != nil {
		h.internal(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handlers) HandleDeleteIdea(w http.ResponseWriter, r *http.Request) {
	found, err := deleteIdea(r.Context(), h.db, r.PathValue("id"))
	if err != nil {
		h.internal(w, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "idea not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleListFolders(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}
	folders, err := listFolders(r.Context(), h.db, sessionID)
	if err != nil {
		h.internal(w, err)
		return
	}
	writeJSON(w, http.StatusOK, folders)
}

func (h *Handlers) HandleCreateFolder(w http.ResponseWriter, r *http.Request) {
	var fields remote.NewFolder
	if !decodeBody(w, r, &fields) {
		return
	}
	if fields.SessionID == "" || fields.Name == "" {
		writeError(w, http.StatusBadRequest, "session_id and name are required")
		return
	}
	created, err := insertFolder(r.Context(), h.db, fields)
	if err != nil {
		h.internal(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handlers) HandlePatchFolder(w http.ResponseWriter, r *http.Request) {
	var patch store.FolderPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	updated, err := patchFolder(r.Context(), h.db, r.PathValue("id"), patch)
	if err == sql.ErrNoRows {
		writeError(w, http.StatusNotFound, "folder not found")
		return
	}
	if err != nil {
		h.internal(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handlers) HandleDeleteFolder(w http.ResponseWriter, r *http.Request) {
	found, err := deleteFolder(r.Context(), h.db, r.PathValue("id"))
	if err != nil {
		h.internal(w, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "folder not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := getSettings(r.Context(), h.db, r.PathValue("session"))
	if err == sql.ErrNoRows {
		writeError(w, http.StatusNotFound, "settings not found")
		return
	}
	if err != nil {
		h.internal(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *Handlers) HandlePutSettings(w http.ResponseWriter, r *http.Request) {
	var settings idea.Settings
	if !decodeBody(w, r, &settings) {
		return
	}
	stored, err := putSettings(r.Context(), h.db, r.PathValue("session"), settings)
	if err != nil {
		h.internal(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

func (h *Handlers) HandlePatchSettings(w http.ResponseWriter, r *http.Request) {
	var patch store.SettingsPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	updated, err := patchSettings(r.Context(), h.db, r.PathValue("session"), patch)
	if err == sql.ErrNoRows {
		writeError(w, http.StatusNotFound, "settings not found")
		return
	}
	if err != nil {
		h.internal(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handlers) internal(w http.ResponseWriter, err error) {
	h.log.Error().Err(err).Msg("record store request failed")
	writeError(w, http.StatusInternalServerError, "internal error")
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
