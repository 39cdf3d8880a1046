// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package objstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const fetchTimeout = 60 * time.Second

// FS is a local-filesystem Resolver rooted at a directory. Storage paths map
// to files under the root and resolve to file:// URLs. It backs the CLI and
// tests; remote object stores implement the same interface elsewhere.
type FS struct {
	root   string
	client *http.Client
}

// NewFS creates a filesystem resolver rooted at dir, creating it if needed.
func NewFS(dir string) (*FS, error) {
	if dir == "" {
		return nil, fmt.Errorf("objstore: root directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("objstore: create root: %w", err)
	}
	return &FS{
		root:   dir,
		client: &http.Client{Timeout: fetchTimeout},
	}, nil
}

// ResolveURL resolves a storage path to a file:// URL under the root.
// References that already are URLs pass through unchanged.
func (f *FS) ResolveURL(ctx context.Context, path string) (string, error) {
	if IsURL(path) {
		return path, nil
	}
	abs, err := filepath.Abs(filepath.Join(f.root, filepath.FromSlash(path)))
	if err != nil {
		return "", fmt.Errorf("objstore: resolve %s: %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("objstore: resolve %s: %w", path, err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}

// Upload writes the bytes to a file under the root, creating directories as
// needed. The content type is not recorded on a plain filesystem.
func (f *FS) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	abs := filepath.Join(f.root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("objstore: upload %s: %w", path, err)
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return fmt.Errorf("objstore: upload %s: %w", path, err)
	}
	return nil
}

// Fetch retrieves the bytes behind a file:// or http(s):// URL.
func (f *FS) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	switch {
	case strings.HasPrefix(rawURL, "file://"):
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("objstore: fetch %s: %w", rawURL, err)
		}
		data, err := os.ReadFile(filepath.FromSlash(u.Path))
		if err != nil {
			return nil, fmt.Errorf("objstore: fetch %s: %w", rawURL, err)
		}
		return data, nil

	case IsURL(rawURL):
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("objstore: fetch %s: %w", rawURL, err)
		}
		resp, err := f.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("objstore: fetch %s: %w", rawURL, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("objstore: fetch %s: status %d", rawURL, resp.StatusCode)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("objstore: fetch %s: %w", rawURL, err)
		}
		return data, nil

	default:
		return nil, fmt.Errorf("objstore: fetch %s: not a URL", rawURL)
	}
}
