package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Settings holds all configuration options.
//
// A Settings value is constructed once at startup (from defaults, an
// optional JSON file, and command line flags) and then passed unchanged
// to every component that needs it. Nothing re-reads configuration
// mid-run.
type Settings struct {
	// Library input
	LibraryPath      string `json:"library_path"`
	BatchFilePattern string `json:"batch_file_pattern"`

	// Note output
	OutputPath string `json:"output_path"`

	// TemplatePath optionally points at a note template file replacing the
	// built-in default. An unreadable file falls back to the default with a
	// warning.
	TemplatePath string `json:"template_path"`

	// Storefront request settings
	RequestDelaySeconds float64 `json:"request_delay_seconds"`
	CountryCode         string  `json:"country_code"`
	Language            string  `json:"language"`

	// Cover art settings
	SaveCoverArt    bool `json:"save_cover_art"`
	CoverArtMaxSize int  `json:"cover_art_max_size"`

	// MaxConcurrentScans bounds the local note-directory scan performed
	// before processing starts. It never affects storefront requests,
	// which are strictly sequential.
	MaxConcurrentScans int `json:"max_concurrent_scans"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		LibraryPath:      filepath.Join(homeDir, "SteamLibrary", "scans"),
		BatchFilePattern: "games_*.json",
		OutputPath:       filepath.Join(homeDir, "SteamLibrary", "notes"),

		RequestDelaySeconds: 1.5,
		CountryCode:         "us",
		Language:            "en",

		SaveCoverArt:    false,
		CoverArtMaxSize: 1000,

		MaxConcurrentScans: 8,
	}
}

// Load reads settings from a JSON file.
//
// A missing file is not an error; defaults are returned instead.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file, creating parent directories.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
