package platform

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
)

// Thumbnail limits
const (
	DefaultThumbnailTimeout = 10 * time.Second
	MaxThumbnailBytes       = 10 << 20
	ThumbnailCacheTTL       = 30 * time.Minute
	ThumbnailCacheCleanup   = 10 * time.Minute
)

// ThumbnailService downloads preview images and keeps them in memory for a while
type ThumbnailService struct {
	client   *http.Client
	cache    *cache.Cache
	maxBytes int64
}

// NewThumbnailService creates a new thumbnail service
func NewThumbnailService() *ThumbnailService {
	return &ThumbnailService{
		client:   &http.Client{Timeout: DefaultThumbnailTimeout},
		cache:    cache.New(ThumbnailCacheTTL, ThumbnailCacheCleanup),
		maxBytes: MaxThumbnailBytes,
	}
}

// Fetch returns the image bytes at url
func (t *ThumbnailService) Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty thumbnail URL")
	}
	if cached, ok := t.cache.Get(url); ok {
		return cached.([]byte), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build thumbnail request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch thumbnail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("thumbnail request returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, t.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read thumbnail: %w", err)
	}
	if int64(len(data)) > t.maxBytes {
		return nil, fmt.Errorf("thumbnail exceeds %d bytes", t.maxBytes)
	}

	t.cache.Set(url, data, cache.DefaultExpiration)
	return data, nil
}
