// Package ioutils provides file system and image processing utilities.
//
// # File Operations
//
//	// Write a rendered note
//	err := ioutils.WriteFile(ctx, "/notes/Portal2.md", content)
//
//	// Read a prior note for the skip check
//	text, ok := ioutils.ReadFileIfExists("/notes/Portal2.md")
//
//	// Ensure the output directory exists
//	err := ioutils.EnsureDir("/notes")
//
// # Image Processing
//
// The ImageService normalizes cover art before it is saved:
//
//	svc := ioutils.NewImageService()
//	cover, err := svc.ResizeToJPEG(ctx, imageData, 1000)
package ioutils
