// Package assets resolves texture sources to local files, downloading
// remote sources into a cache directory.
package assets

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	getter "github.com/hashicorp/go-getter"
)

// IsRemote reports whether src is a getter address rather than a local path.
func IsRemote(src string) bool {
	return strings.Contains(src, "://") || strings.Contains(src, "::")
}

// CachePath returns where a remote source is stored inside cacheDir.
// The name is stable for a given source.
func CachePath(src, cacheDir string) string {
	sum := sha256.Sum256([]byte(src))
	name := hex.EncodeToString(sum[:8])

	// Keep the extension so image loaders can sniff the format
	base := src
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}
	if ext := path.Ext(base); ext != "" && !strings.ContainsAny(ext, "/:") {
		name += ext
	}
	return filepath.Join(cacheDir, name)
}

// Fetch returns a local path for src. Local paths are returned as-is
// and must exist. Remote sources are downloaded once into cacheDir and
// the cached copy is reused afterwards.
func Fetch(ctx context.Context, src, cacheDir string) (string, error) {
	if src == "" {
		return "", fmt.Errorf("fetching asset: empty source")
	}

	if !IsRemote(src) {
		if _, err := os.Stat(src); err != nil {
			return "", fmt.Errorf("fetching asset: %w", err)
		}
		return src, nil
	}

	dst := CachePath(src, cacheDir)
	if _, err := os.Stat(dst); err == nil {
		slog.Debug("asset cache hit", "src", src, "path", dst)
		return dst, nil
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("creating asset cache: %w", err)
	}

	pwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}

	client := &getter.Client{
		Ctx:     ctx,
		Src:     src,
		Dst:     dst,
		Pwd:     pwd,
		Mode:    getter.ClientModeFile,
		Getters: copyingGetters(),
	}

	slog.Info("downloading asset", "src", src, "path", dst)
	if err := client.Get(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("downloading %s: %w", src, err)
	}
	return dst, nil
}

// copyingGetters returns the default getters with file sources copied
// into the cache instead of symlinked.
func copyingGetters() map[string]getter.Getter {
	getters := make(map[string]getter.Getter, len(getter.Getters))
	for k, v := range getter.Getters {
		getters[k] = v
	}
	getters["file"] = &getter.FileGetter{Copy: true}
	return getters
}
