package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rokuso/mangadl/internal/version"
)

// Client wraps HTTP operations against the upstream manga source.
//
// Client provides:
//   - A stable User-Agent header
//   - Timeout handling
//   - Page image download into memory
//   - File size retrieval via HEAD requests
//
// Example usage:
//
//	client := NewClient()
//
//	// Fetch API metadata
//	body, err := client.GetString(ctx, "https://api.example.com/title/100056")
//
//	// Download one page image
//	data, err := client.DownloadBytes(ctx, page.URL)
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client.
//
// The client is configured with a 60 second timeout and a
// "mangadl/<version>" User-Agent header.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		userAgent: fmt.Sprintf("%s/%s", version.AppName, version.Version),
	}
}

// Get performs a GET request and returns the response body as bytes.
//
// The request includes the configured User-Agent header.
//
// Returns an error if:
//   - The request fails
//   - The response status is not 200 OK
//   - Reading the body fails
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// GetString performs a GET request and returns the response body as a string.
//
// This is a convenience wrapper around Get for fetching text content
// like API responses.
func (c *Client) GetString(ctx context.Context, url string) (string, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// GetFileSize returns the size of a file at the given URL via HEAD request.
//
// This is useful for pre-calculating the total download size of a
// chapter before fetching its pages.
//
// Returns an error if the request fails or the server doesn't return a
// Content-Length header.
func (c *Client) GetFileSize(ctx context.Context, url string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.ContentLength < 0 {
		return 0, fmt.Errorf("no Content-Length header for %s", url)
	}

	return resp.ContentLength, nil
}

// DownloadBytes downloads a file and returns the bytes in memory.
//
// Page images are held in memory so the exporters can buffer whole
// chapters before committing anything to disk.
func (c *Client) DownloadBytes(ctx context.Context, url string) ([]byte, error) {
	return c.Get(ctx, url)
}
