package assets

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// FetchProgress represents the current state of a download.
type FetchProgress struct {
	TotalBytes int64   // Total size in bytes (0 if unknown)
	Downloaded int64   // Bytes downloaded so far
	Percentage float64 // Completion percentage (0-100)
}

// ProgressFunc is called periodically during download with progress updates.
type ProgressFunc func(FetchProgress)

// FetchResult contains the outcome of a download.
type FetchResult struct {
	Path     string // Final file path
	Size     int64  // Bytes downloaded
	Checksum string // SHA-256 of the downloaded file
}

// Fetcher handles HTTP file downloads with progress tracking.
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher creates a Fetcher using the given HTTP client, or
// http.DefaultClient when nil.
func NewFetcher(httpClient *http.Client) *Fetcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Fetcher{
		httpClient: httpClient,
	}
}

// Fetch downloads url into destPath. The file is written to a temporary
// sibling first and renamed into place, so a failed download never leaves a
// partial file that a later run would mistake for a finished asset.
func (f *Fetcher) Fetch(ctx context.Context, url, destPath string, progressFn ProgressFunc) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return nil, fmt.Errorf("creating directory: %w", err)
	}

	tempPath := destPath + ".tmp"
	file, err := os.Create(tempPath)
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}
	defer func() {
		file.Close()
		os.Remove(tempPath) // Clean up temp file on error
	}()

	hasher := sha256.New()

	reader := &progressReader{
		reader:     resp.Body,
		totalBytes: resp.ContentLength,
		progressFn: progressFn,
	}

	written, err := io.Copy(file, io.TeeReader(reader, hasher))
	if err != nil {
		return nil, fmt.Errorf("downloading file: %w", err)
	}

	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("closing file: %w", err)
	}

	if err := os.Rename(tempPath, destPath); err != nil {
		return nil, fmt.Errorf("renaming file: %w", err)
	}

	return &FetchResult{
		Path:     destPath,
		Size:     written,
		Checksum: hex.EncodeToString(hasher.Sum(nil)),
	}, nil
}

// progressReader wraps an io.Reader to track download progress.
type progressReader struct {
	reader     io.Reader
	totalBytes int64
	downloaded int64
	progressFn ProgressFunc
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	if n > 0 {
		r.downloaded += int64(n)
		if r.progressFn != nil {
			progress := FetchProgress{
				TotalBytes: r.totalBytes,
				Downloaded: r.downloaded,
			}
			if r.totalBytes > 0 {
				progress.Percentage = float64(r.downloaded) / float64(r.totalBytes) * 100
			}
			r.progressFn(progress)
		}
	}
	return n, err
}
