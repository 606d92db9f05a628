package middleware

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// LandingAssets are the static files referenced by the landing page, relative to the static dir
var LandingAssets = []string{
	"css/landing.css",
	"js/landing.js",
	"images/logo.svg",
}

var (
	assetVersions = map[string]string{}
	assetMu       sync.RWMutex
)

// InitAssetVersions computes file hashes for cache busting. Missing files
// keep the default version.
func InitAssetVersions(staticDir string, logger *zap.Logger) {
	versions := make(map[string]string, len(LandingAssets))
	for _, name := range LandingAssets {
		version := computeFileHash(filepath.Join(staticDir, filepath.FromSlash(name)))
		if version == "" {
			logger.Warn("asset not found, using default version", zap.String("asset", name))
			continue
		}
		versions[name] = version
	}

	assetMu.Lock()
	assetVersions = versions
	assetMu.Unlock()
	logger.Info("asset versions initialized", zap.Int("assets", len(versions)))
}

// computeFileHash returns the first 8 characters of the MD5 hash of a file
func computeFileHash(path string) string {
	file, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return ""
	}

	return hex.EncodeToString(hash.Sum(nil))[:8]
}

// AssetVersion returns the version hash of a static file, "1" when unknown
func AssetVersion(name string) string {
	assetMu.RLock()
	defer assetMu.RUnlock()
	if v, ok := assetVersions[name]; ok {
		return v
	}
	return "1"
}

// AssetURL returns the cache busted URL of a static file
func AssetURL(name string) string {
	return "/static/" + name + "?v=" + AssetVersion(name)
}
