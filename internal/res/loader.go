// Copyright 2024 Humanitec
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package res

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Loader loads the raw bytes behind a resolved Path.
type Loader interface {
	Load(ctx context.Context, p Path) ([]byte, error)
}

// FileLoader loads local resources relative to a project root directory.
type FileLoader struct {
	Root string
}

func (f *FileLoader) Load(ctx context.Context, p Path) ([]byte, error) {
	if !p.IsLocal() {
		return nil, fmt.Errorf("FileLoader cannot load remote resource '%s' from '%s'", p.Path, p.Remote)
	}
	full := filepath.Join(f.Root, filepath.FromSlash(p.Path))
	return os.ReadFile(full)
}

// HTTPLoader loads remote resources from GitHub raw-content URLs.
type HTTPLoader struct {
	Client *http.Client
}

func (h *HTTPLoader) Load(ctx context.Context, p Path) ([]byte, error) {
	if p.IsLocal() {
		return nil, fmt.Errorf("HTTPLoader cannot load local resource '%s'", p.Path)
	}
	owner, repo, ref := splitRemote(p.Remote)
	refPart := ref
	if refPart == "" {
		refPart = defaultReference
	}
	url := "https://raw.githubusercontent.com/" + owner + "/" + repo + "/" + refPart + "/" + p.Path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch '%s': status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func splitRemote(remote string) (owner, repo, ref string) {
	main := remote
	if idx := strings.IndexByte(remote, ':'); idx >= 0 {
		main = remote[:idx]
		ref = remote[idx+1:]
	}
	parts := strings.SplitN(main, "/", 2)
	if len(parts) == 2 {
		owner, repo = parts[0], parts[1]
	}
	return
}

// CachingLoader memoizes Load results for the lifetime of a single compile
// run, so a resource `use`d from multiple documents is only fetched once.
type CachingLoader struct {
	Inner Loader

	mu    sync.Mutex
	cache map[string][]byte
	errs  map[string]error
}

func NewCachingLoader(inner Loader) *CachingLoader {
	return &CachingLoader{Inner: inner, cache: make(map[string][]byte), errs: make(map[string]error)}
}

func cacheKey(p Path) string {
	return p.Remote + "\x00" + p.Path
}

func (c *CachingLoader) Load(ctx context.Context, p Path) ([]byte, error) {
	key := cacheKey(p)
	c.mu.Lock()
	if b, ok := c.cache[key]; ok {
		c.mu.Unlock()
		return b, nil
	}
	if err, ok := c.errs[key]; ok {
		c.mu.Unlock()
		return nil, err
	}
	c.mu.Unlock()

	b, err := c.Inner.Load(ctx, p)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.errs[key] = err
		return nil, err
	}
	c.cache[key] = b
	return b, nil
}

// LoadImageURL returns a displayable URL for an icon/image resource: remote
// resources resolve to their raw GitHub URL unchanged, local resources are
// base64-data-URL-encoded using a MIME type inferred from their extension.
func LoadImageURL(ctx context.Context, loader Loader, p Path) (string, error) {
	if !p.IsLocal() {
		owner, repo, ref := splitRemote(p.Remote)
		refPart := ref
		if refPart == "" {
			refPart = defaultReference
		}
		return "https://raw.githubusercontent.com/" + owner + "/" + repo + "/" + refPart + "/" + p.Path, nil
	}
	data, err := loader.Load(ctx, p)
	if err != nil {
		return "", err
	}
	mime := mimeTypeFromExt(p.Path)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func mimeTypeFromExt(p string) string {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".svg":
		return "image/svg+xml"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
