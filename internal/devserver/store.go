package devserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/asismo/idea-management-mvp/internal/idea"
	"github.com/asismo/idea-management-mvp/internal/remote"
	"github.com/asismo/idea-management-mvp/internal/store"
)

// encodeTags serializes a tag slice for storage; nil becomes the empty set.
func encodeTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	b, _ := json.Marshal(tags)
	return string(b)
}

func decodeTags(raw string) []string {
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}

func insertIdea(ctx context.Context, db *sql.DB, fields remote.NewIdea) (*idea.Idea, error) {
	id, err := newID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate id: %w", err)
	}
	now := time.Now().Unix()

	_, err = db.ExecContext(ctx, `
		INSERT INTO ideas (id, session_id, content, tags_json, folder_id, ai_accepted, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, fields.SessionID, fields.Content, encodeTags(fields.Tags),
		fields.FolderID, boolToInt(fields.AICategorizationAccepted), now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert idea: %w", err)
	}
	return getIdea(ctx, db, id)
}

func getIdea(ctx context.Context, db *sql.DB, id string) (*idea.Idea, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, session_id, content, tags_json, folder_id, ai_accepted, created_at, updated_at
		FROM ideas WHERE id = ?`, id)
	return scanIdea(row)
}

func listIdeas(ctx context.Context, db *sql.DB, sessionID string) ([]idea.Idea, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, session_id, content, tags_json, folder_id, ai_accepted, created_at, updated_at
		FROM ideas WHERE session_id = ?
		ORDER BY created_at DESC, id DESC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ideas: %w", err)
	}
	defer rows.Close()

	out := []idea.Idea{}
	for rows.Next() {
		it, err := scanIdea(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}

func patchIdea(ctx context.Context, db *sql.DB, id string, patch store.IdeaPatch) (*idea.Idea, error) {
	current, err := getIdea(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if patch.Content != nil {
		current.Content = *patch.Content
	}
	if patch.Tags != nil {
		current.Tags = *patch.Tags
	}
	if patch.FolderID != nil {
		current.FolderID = *patch.FolderID
	}
	if patch.UpdatedAt != nil {
		current.UpdatedAt = *patch.UpdatedAt
	} else {
		current.UpdatedAt = time.Now().Unix()
	}

	_, err = db.ExecContext(ctx, `
		UPDATE ideas SET content = ?, tags_json = ?, folder_id = ?, updated_at = ?
		WHERE id = ?`,
		current.Content, encodeTags(current.Tags), current.FolderID, current.UpdatedAt, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update idea: %w", err)
	}
	return current, nil
}

func deleteIdea(ctx context.Context, db *sql.DB, id string) (bool, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM ideas WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete idea: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func insertFolder(ctx context.Context, db *sql.DB, fields remote.NewFolder) (*idea.Folder, error) {
	id, err := newID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate id: %w", err)
	}
	now := time.Now().Unix()

	_, err = db.ExecContext(ctx, `
		INSERT INTO folders (id, session_id, name, description, icon, idea_count, tags_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, fields.SessionID, fields.Name, fields.Description, fields.Icon,
		fields.IdeaCount, encodeTags(fields.Tags), now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert folder: %w", err)
	}
	return getFolder(ctx, db, id)
}

func getFolder(ctx context.Context, db *sql.DB, id string) (*idea.Folder, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, session_id, name, description, icon, idea_count, tags_json, created_at, updated_at
		FROM folders WHERE id = ?`, id)
	return scanFolder(row)
}

func listFolders(ctx context.Context, db *sql.DB, sessionID string) ([]idea.Folder, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, session_id, name, description, icon, idea_count, tags_json, created_at, updated_at
		FROM folders WHERE session_id = ?
		ORDER BY created_at DESC, id DESC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	defer rows.Close()

	out := []idea.Folder{}
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *f)
	}
	return out, rows.Err()
}

func patchFolder(ctx context.Context, db *sql.DB, id string, patch store.FolderPatch) (*idea.Folder, error) {
	current, err := getFolder(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		current.Name = *patch.Name
	}
	if patch.Description != nil {
		current.Description = *patch.Description
	}
	if patch.Icon != nil {
		current.Icon = *patch.Icon
	}
	if patch.IdeaCount != nil {
		current.IdeaCount = *patch.IdeaCount
	}
	if patch.Tags != nil {
		current.Tags = *patch.Tags
	}
	if patch.UpdatedAt != nil {
		current.UpdatedAt = *patch.UpdatedAt
	} else {
		current.UpdatedAt = time.Now().Unix()
	}

	_, err = db.ExecContext(ctx, `
		UPDATE folders SET name = ?, description = ?, icon = ?, idea_count = ?, tags_json = ?, updated_at = ?
		WHERE id = ?`,
		current.Name, current.Description, current.Icon, current.IdeaCount,
		encodeTags(current.Tags), current.UpdatedAt, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update folder: %w", err)
	}
	return current, nil
}

func deleteFolder(ctx context.Context, db *sql.DB, id string) (bool, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete folder: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func getSettings(ctx context.Context, db *sql.DB, sessionID string) (*idea.Settings, error) {
	row := db.QueryRowContext(ctx, `
		SELECT session_id, categorization_mode, search_mode, input_method, audio_service,
		       audio_api_key, theme, auto_update, onboarding, created_at, updated_at
		FROM settings WHERE session_id = ?`, sessionID)

	var s idea.Settings
	var autoUpdate, onboarding int
	err := row.Scan(&s.SessionID, &s.CategorizationMode, &s.SearchMode, &s.InputMethod,
		&s.AudioService, &s.AudioAPIKey, &s.Theme, &autoUpdate, &onboarding,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.AutoUpdateDescriptions = autoUpdate != 0
	s.OnboardingCompleted = onboarding != 0
	return &s, nil
}

func putSettings(ctx context.Context, db *sql.DB, sessionID string, s idea.Settings) (*idea.Settings, error) {
	now := time.Now().Unix()
	s.SessionID = sessionID
	if s.CreatedAt == 0 {
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	_, err := db.ExecContext(ctx, `
		INSERT INTO settings (session_id, categorization_mode, search_mode, input_method,
		  audio_service, audio_api_key, theme, auto_update, onboarding, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
		  categorization_mode = excluded.categorization_mode,
		  search_mode = excluded.search_mode,
		  input_method = excluded.input_method,
		  audio_service = excluded.audio_service,
		  audio_api_key = excluded.audio_api_key,
		  theme = excluded.theme,
		  auto_update = excluded.auto_update,
		  onboarding = excluded.onboarding,
		  updated_at = excluded.updated_at`,
		s.SessionID, string(s.CategorizationMode), string(s.SearchMode), s.InputMethod,
		s.AudioService, s.AudioAPIKey, s.Theme,
		boolToInt(s.AutoUpdateDescriptions), boolToInt(s.OnboardingCompleted),
		s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert settings: %w", err)
	}
	return getSettings(ctx, db, sessionID)
}

func patchSettings(ctx context.Context, db *sql.DB, sessionID string, patch store.SettingsPatch) (*idea.Settings, error) {
	current, err := getSettings(ctx, db, sessionID)
	if err != nil {
		return nil, err
	}
	if patch.CategorizationMode != nil {
		current.CategorizationMode = *patch.CategorizationMode
	}
	if patch.SearchMode != nil {
		current.SearchMode = *patch.SearchMode
	}
	if patch.InputMethod != nil {
		current.InputMethod = *patch.InputMethod
	}
	if patch.AudioService != nil {
		current.AudioService = *patch.AudioService
	}
	if patch.AudioAPIKey != nil {
		current.AudioAPIKey = *patch.AudioAPIKey
	}
	if patch.Theme != nil {
		current.Theme = *patch.Theme
	}
	if patch.AutoUpdateDescriptions != nil {
		current.AutoUpdateDescriptions = *patch.AutoUpdateDescriptions
	}
	if patch.OnboardingCompleted != nil {
		current.OnboardingCompleted = *patch.OnboardingCompleted
	}
	return putSettings(ctx, db, sessionID, *current)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanIdea(row scanner) (*idea.Idea, error) {
	var it idea.Idea
	var tagsJSON string
	var accepted int
	err := row.Scan(&it.ID, &it.SessionID, &it.Content, &tagsJSON, &it.FolderID,
		&accepted, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	it.Tags = decodeTags(tagsJSON)
	it.AICategorizationAccepted = accepted != 0
	return &it, nil
}

func scanFolder(row scanner) (*idea.Folder, error) {
	var f idea.Folder
	var tagsJSON string
	err := row.Scan(&f.ID, &f.SessionID, &f.Name, &f.Description, &f.Icon,
		&f.IdeaCount, &tagsJSON, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	f.Tags = decodeTags(tagsJSON)
	return &f, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
