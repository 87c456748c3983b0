// Package http provides an HTTP client configured for Steam storefront
// API requests.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Timeout handling
//   - In-memory fetches for API responses and cover art
//
// # Basic Usage
//
//	client := http.NewClient()
//
//	// Fetch an appdetails response
//	body, err := client.Get(ctx, detailsURL)
//
//	// Fetch cover art bytes
//	img, err := client.DownloadBytes(ctx, headerImageURL)
package http
