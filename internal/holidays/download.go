package holidays

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// DefaultURL is where the published holidays file lives.
const DefaultURL = "https://raw.githubusercontent.com/lululau/lucal/main/holidays.json"

// maxDownloadSize caps the response body; the published file is a few
// hundred kilobytes.
const maxDownloadSize = 16 << 20

// Download fetches url, checks that it decodes and covers at least one year,
// and only then replaces dest. A failed download leaves dest untouched.
func Download(ctx context.Context, client *http.Client, url, dest string) (YearRange, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return YearRange{}, fmt.Errorf("failed to start download: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return YearRange{}, fmt.Errorf("failed to start download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return YearRange{}, fmt.Errorf("failed to download holidays: HTTP %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadSize))
	if err != nil {
		return YearRange{}, fmt.Errorf("failed to read download: %w", err)
	}
	set, err := Decode(bytes.NewReader(data))
	if err != nil {
		return YearRange{}, err
	}
	years, err := set.Years()
	if err != nil {
		return YearRange{}, err
	}

	if err := writeFile(dest, data); err != nil {
		return YearRange{}, err
	}
	return years, nil
}

// writeFile replaces path through a temp file in the same directory.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".holidays-*.json")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
