package version

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const (
	cacheFile = "version_cache.json"
	cacheTTL  = 3 * time.Hour
)

// CacheEntry stores cached version check result.
type CacheEntry struct {
	LatestVersion  string    `json:"latestVersion"`
	CurrentVersion string    `json:"currentVersion"`
	CheckedAt      time.Time `json:"checkedAt"`
	HasUpdate      bool      `json:"hasUpdate"`
}

// CachePath returns the cache file inside dir.
func CachePath(dir string) string {
	return filepath.Join(dir, cacheFile)
}

// LoadCache reads a cached version check result.
func LoadCache(path string) (*CacheEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// SaveCache writes a version check result.
func SaveCache(path string, entry *CacheEntry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// IsCacheValid checks if cache exists and is not expired.
// Also invalidates if user version changed (upgrade or downgrade).
func IsCacheValid(entry *CacheEntry, currentVersion string, now time.Time) bool {
	if entry == nil {
		return false
	}
	if entry.CurrentVersion != currentVersion {
		return false
	}
	return now.Sub(entry.CheckedAt) < cacheTTL
}

// CachedCheck returns the cached result for currentVersion when fresh,
// otherwise checks GitHub and refreshes the cache. Cache write failures are
// ignored.
func CachedCheck(path, currentVersion string, now time.Time) CheckResult {
	if entry, err := LoadCache(path); err == nil && IsCacheValid(entry, currentVersion, now) {
		return CheckResult{
			CurrentVersion: currentVersion,
			LatestVersion:  entry.LatestVersion,
			HasUpdate:      entry.HasUpdate,
		}
	}

	result := Check(currentVersion)
	if result.Error == nil && result.LatestVersion != "" {
		_ = SaveCache(path, &CacheEntry{
			LatestVersion:  result.LatestVersion,
			CurrentVersion: currentVersion,
			CheckedAt:      now,
			HasUpdate:      result.HasUpdate,
		})
	}
	return result
}
