// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/internal/httputil"
	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/pkg/types"
)

// ErrDownloadFailed reports a transport failure, a non-success HTTP
// status, or a payload that is not a PDF.
var ErrDownloadFailed = errors.New("pdf download failed")

// DownloadPDF streams url to destPath through a temporary file in the
// destination directory, renaming into place on success so no partial
// file is ever observable at destPath. Rate-limited responses are retried
// with backoff. The payload must sniff as application/pdf; this catches
// HTML error pages served with a 200 status.
func DownloadPDF(ctx context.Context, client *http.Client, url, destPath string, cfg types.AcquireConfig) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("creating download directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := httputil.DoWithRetry(ctx, client, req, cfg.MaxRetries)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: HTTP %d from %s", ErrDownloadFailed, resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".download-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	mtype, err := mimetype.DetectFile(tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("sniffing download: %w", err)
	}
	if !mtype.Is("application/pdf") {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: server sent %s, not a PDF", ErrDownloadFailed, mtype)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
