// Package config provides configuration management for the notes generator.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Reads batches from ~/SteamLibrary/scans
//	// Writes notes to ~/SteamLibrary/notes
//	// 1.5 second delay between storefront requests
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Defaults are used if the file doesn't exist
//	}
//
// # Immutability
//
// Settings are built once at startup and passed explicitly to each
// component. No component re-reads shared file-backed configuration
// while a run is in progress.
package config
