package cache

import (
	"context"
	"fmt"
	"strings"
)

// Open returns the backend selected by rawURL:
//
//	""                   FileCache in defaultDir
//	"none"               NullCache
//	"file:///some/dir"   FileCache in /some/dir
//	"redis://host:6379"  RedisCache (also rediss://)
func Open(ctx context.Context, rawURL, defaultDir string) (Cache, error) {
	switch {
	case rawURL == "":
		return NewFileCache(defaultDir)
	case rawURL == "none" || rawURL == "null":
		return NewNullCache(), nil
	case strings.HasPrefix(rawURL, "file://"):
		dir := strings.TrimPrefix(rawURL, "file://")
		if dir == "" {
			dir = defaultDir
		}
		return NewFileCache(dir)
	case strings.HasPrefix(rawURL, "redis://"), strings.HasPrefix(rawURL, "rediss://"):
		rc, err := NewRedisCache(ctx, RedisConfig{URL: rawURL, Prefix: "sectionflow:"})
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	return nil, fmt.Errorf("%w: %q (want file://, redis:// or none)", ErrInvalidURL, rawURL)
}
