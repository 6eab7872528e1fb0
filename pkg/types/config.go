package types

// ExtractBackend selects how text is pulled out of a .docx file.
type ExtractBackend string

const (
	// BackendAuto picks the first usable backend: markitdown CLI, then the
	// markitdown container, then the native reader.
	BackendAuto       ExtractBackend = "auto"
	BackendMarkitdown ExtractBackend = "markitdown"
	BackendContainer  ExtractBackend = "container"
	BackendNative     ExtractBackend = "native"
)

// ConvertConfig holds settings for legacy .doc conversion.
type ConvertConfig struct {
	// Soffice is the LibreOffice executable looked up on PATH (default "soffice").
	Soffice string `json:"soffice" yaml:"soffice" mapstructure:"soffice"`
}

// ExtractConfig holds settings for the extraction stage.
type ExtractConfig struct {
	// Backend selects the extraction backend (default "auto").
	Backend ExtractBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Markitdown is the markitdown CLI executable (default "markitdown").
	Markitdown string `json:"markitdown" yaml:"markitdown" mapstructure:"markitdown"`

	// Image is the markitdown container image used by the container backend.
	Image string `json:"image" yaml:"image" mapstructure:"image"`
}

// WorkspaceConfig controls where per-file conversion workspaces are created.
type WorkspaceConfig struct {
	// Dir is the parent of conversion workspaces. Empty means os.TempDir().
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// ArchiveConfig groups all settings for an archive run.
type ArchiveConfig struct {
	Convert   ConvertConfig   `json:"convert" yaml:"convert" mapstructure:"convert"`
	Extract   ExtractConfig   `json:"extract" yaml:"extract" mapstructure:"extract"`
	Workspace WorkspaceConfig `json:"workspace" yaml:"workspace" mapstructure:"workspace"`
	Verbose   bool            `json:"verbose" yaml:"verbose" mapstructure:"verbose"`
}

// DefaultArchiveConfig returns the settings used when nothing is configured.
func DefaultArchiveConfig() ArchiveConfig {
	return ArchiveConfig{
		Convert: ConvertConfig{Soffice: "soffice"},
		Extract: ExtractConfig{
			Backend:    BackendAuto,
			Markitdown: "markitdown",
			Image:      "markitdown:latest",
		},
	}
}
