package idea

// Idea is a single captured thought, scoped to one session.
type Idea struct {
	// ID uniquely identifies the idea; assigned by the persistence service.
	ID string `json:"id"`

	// SessionID scopes the idea to one user session
	SessionID string `json:"session_id"`

	// Content is the user-authored free text (unbounded; display truncates)
	Content string `json:"content"`

	// Tags is an ordered set of short lowercase strings; insertion order
	// is preserved for display
	Tags []string `json:"tags"`

	// FolderID references a live folder at creation time
	FolderID string `json:"folder_id"`

	// AICategorizationAccepted is true for ideas created via the capture flow
	AICategorizationAccepted bool `json:"ai_categorization_accepted"`

	// CreatedAt is the Unix timestamp when the idea was created
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the Unix timestamp when the idea was last updated
	UpdatedAt int64 `json:"updated_at"`
}

// Folder groups ideas under a name, with an optional AI-generated description.
type Folder struct {
	ID          string `json:"id"`
	SessionID   string `json:"session_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`

	// IdeaCount is denormalized; the live count is always recomputed from
	// the idea collection. The stored value is refreshed only when the
	// folder record is patched for another reason.
	IdeaCount int `json:"idea_count"`

	// Tags is the merged, duplicate-free tag set drawn from the folder's ideas
	Tags []string `json:"tags"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// Settings holds the per-session configuration record. Exactly one exists
// per session; it is lazily created with defaults on first load.
type Settings struct {
	SessionID              string `json:"session_id"`
	CategorizationMode     Mode   `json:"categorization_mode"`
	SearchMode             Mode   `json:"search_mode"`
	InputMethod            string `json:"input_method"`
	AudioService           string `json:"audio_service,omitempty"`
	AudioAPIKey            string `json:"audio_api_key,omitempty"`
	Theme                  string `json:"theme"`
	AutoUpdateDescriptions bool   `json:"auto_update_descriptions"`
	OnboardingCompleted    bool   `json:"onboarding_completed"`
	CreatedAt              int64  `json:"created_at"`
	UpdatedAt              int64  `json:"updated_at"`
}
