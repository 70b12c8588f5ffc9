package installer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"awscli-update/internal/logger"
)

// HTTPClient is the minimal HTTP client used for downloads, so tests can swap it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// downloadFile downloads the content located at the specified URL and saves it to the destination path.
// It returns an error if the download or file write fails.
func downloadFile(ctx context.Context, client HTTPClient, url, destPath string) error {
	logger.Debug("[DEBUG] Downloading %s to %s\n", url, destPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to GET %s: %w", url, err)
	}
	// Ensure the response body stream is closed when the function returns.
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Error("[ERROR] Failed to close response body: %s\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to GET %s: HTTP status %d", url, resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", destPath, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil {
			logger.Error("[ERROR] Failed to close destination file: %s\n", cerr)
		}
	}()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to write response to file: %w", err)
	}

	logger.Debug("[DEBUG] Downloaded %s\n", destPath)
	return nil
}

// makeTempDir creates the per-install working directory under base
// (the system temp directory when base is empty).
func makeTempDir(base string) (string, error) {
	dir, err := os.MkdirTemp(base, "awscli-update-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	logger.Debug("[DEBUG] Created temp directory %s\n", dir)
	return dir, nil
}

// removeTempDir removes the working directory and everything in it.
// Meant to be deferred right after makeTempDir succeeds.
func removeTempDir(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		logger.Error("[ERROR] Failed to remove temp directory %s: %v\n", dir, err)
		return
	}
	logger.Debug("[DEBUG] Removed temp directory %s\n", dir)
}
