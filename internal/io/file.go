package ioutils

import (
	"context"
	"os"
)

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing.
//
// Parameters:
//   - ctx: Context for cancellation (currently unused but reserved for future use)
//   - path: File path to write to
//   - data: Bytes to write
//
// Example:
//
//	note := []byte("# Portal 2\n...")
//	err := WriteFile(ctx, "/notes/Portal2.md", note)
func WriteFile(ctx context.Context, path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

// ReadFileIfExists reads a file and returns its content, or ("", false)
// when the file does not exist. Other read errors are also reported as
// absence; the caller treats the artifact as not yet written.
func ReadFileIfExists(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
//
// Example:
//
//	err := EnsureDir("/home/user/SteamLibrary/notes")
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
