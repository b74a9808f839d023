package idea

// Mode selects the heuristic-local or AI-delegated variant of an operation.
type Mode string

const (
	ModeSimple   Mode = "simple"
	ModeAdvanced Mode = "advanced"
)

// ValidMode reports whether m is a known mode.
func ValidMode(m Mode) bool {
	return m == ModeSimple || m == ModeAdvanced
}

// Tag count bounds applied to generated tag lists.
const (
	MinTags = 2
	MaxTags = 5
)

// FallbackFolderName is the folder used when categorization has no match
// and when a capture targets a folder that no longer exists.
const FallbackFolderName = "General"

// FillerTag pads generated tag lists up to MinTags.
const FillerTag = "general"

// Input methods
const (
	InputText  = "text"
	InputVoice = "voice"
)

// Themes
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// AudioServices lists the supported transcription backends. Transcription
// itself is out of scope; the setting is carried for the presentation layer.
var AudioServices = []string{"google", "openai", "deepgram", "assemblyai"}

// FolderIcons is the glyph set for auto-created folders.
var FolderIcons = []string{"📁", "📚", "💡", "🎯", "🔬", "📊", "🎨", "🚀", "💼", "📝"}

// DefaultFolderIcon is used when no icon is chosen.
const DefaultFolderIcon = "📁"

// DefaultSettings returns the settings record created on first load.
func DefaultSettings(sessionID string) Settings {
	return Settings{
		SessionID:              sessionID,
		CategorizationMode:     ModeSimple,
		SearchMode:             ModeSimple,
		InputMethod:            InputText,
		Theme:                  ThemeSystem,
		AutoUpdateDescriptions: true,
		OnboardingCompleted:    false,
	}
}
