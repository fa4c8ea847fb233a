package uploads

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Storage persists an uploaded object and returns the URL it is served at.
type Storage interface {
	Put(ctx context.Context, key, contentType string, r io.Reader) (string, error)
}

// DiskStorage writes objects under Dir; they are served under PublicPath.
type DiskStorage struct {
	Dir        string
	PublicPath string
}

func (s *DiskStorage) Put(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	dst := filepath.Join(s.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return path.Join("/", s.PublicPath, key), nil
}

// HTTPStorage uploads to a Supabase-compatible storage API and returns the
// object's public URL.
type HTTPStorage struct {
	BaseURL   string
	SecretKey string
	Bucket    string
	Client    *http.Client
}

func (s *HTTPStorage) Put(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	if s.Client == nil {
		s.Client = &http.Client{Timeout: 30 * time.Second}
	}
	if s.BaseURL == "" {
		return "", fmt.Errorf("storage: STORAGE_URL is not set")
	}
	if s.SecretKey == "" {
		return "", fmt.Errorf("storage: STORAGE_SECRET_KEY is not set")
	}
	base := strings.TrimRight(s.BaseURL, "/")
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", base, s.Bucket, key)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, r)
	if err != nil {
		return "", err
	}
	// Same key in both headers, as supabase-js sends it
	req.Header.Set("apikey", s.SecretKey)
	req.Header.Set("Authorization", "Bearer "+s.SecretKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		bodyStr := string(body)
		if resp.StatusCode == 400 || resp.StatusCode == 403 {
			if strings.Contains(bodyStr, "Invalid Compact JWS") || strings.Contains(bodyStr, "Unauthorized") {
				return "", fmt.Errorf("storage requires the service_role key, not the anon key (raw body: %s)", bodyStr)
			}
		}
		return "", fmt.Errorf("storage error: status %d body: %s", resp.StatusCode, bodyStr)
	}
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", base, s.Bucket, key), nil
}
