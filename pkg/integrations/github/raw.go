package github

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/cmsecosystem/pkg/cache"
	"github.com/matzehuels/cmsecosystem/pkg/errors"
	"github.com/matzehuels/cmsecosystem/pkg/integrations"
)

// Location of the ecosystem document.
const (
	DocumentOwner = "django-cms"
	DocumentRepo  = "djangocms-ecosystem"
	DocumentRef   = "refs/heads/main"
	DocumentPath  = "README.md"

	// DefaultDocumentURL is the raw URL of the ecosystem README.
	DefaultDocumentURL = rawBaseURL + "/" + DocumentOwner + "/" + DocumentRepo + "/" + DocumentRef + "/" + DocumentPath
)

const rawBaseURL = "https://raw.githubusercontent.com"

// Download is a file body and the time it was downloaded. Cached downloads
// keep their original time.
type Download struct {
	Text      string    `json:"text"`
	FetchedAt time.Time `json:"fetched_at"`
}

// RawClient downloads files from raw.githubusercontent.com (or any plain
// HTTP URL). Bodies are cached under the "raw:" prefix.
type RawClient struct {
	*integrations.Client
	baseURL string
	now     func() time.Time
}

// NewRawClient creates a client using backend for caching. Responses are
// kept for cacheTTL. userAgent may be empty.
func NewRawClient(backend cache.Cache, cacheTTL time.Duration, userAgent string) *RawClient {
	var headers map[string]string
	if userAgent != "" {
		headers = map[string]string{"User-Agent": userAgent}
	}
	return &RawClient{
		Client:  integrations.NewClient(backend, "raw:", cacheTTL, headers),
		baseURL: rawBaseURL,
		now:     time.Now,
	}
}

// FetchFile downloads path from owner/repo at ref ("main",
// "refs/heads/main", a tag or a commit).
func (c *RawClient) FetchFile(ctx context.Context, owner, repo, ref, path string, refresh bool) (Download, error) {
	if _, _, err := ParseRepoRef(owner + "/" + repo); err != nil {
		return Download{}, err
	}
	if err := ValidateRef(ref); err != nil {
		return Download{}, err
	}
	if err := errors.ValidatePath(path); err != nil {
		return Download{}, err
	}
	return c.FetchURL(ctx, fmt.Sprintf("%s/%s/%s/%s/%s", c.baseURL, owner, repo, ref, path), refresh)
}

// FetchURL downloads url as text. Transient failures are retried; a 404
// is reported as [integrations.ErrNotFound]. With refresh set the cache is
// skipped and overwritten.
func (c *RawClient) FetchURL(ctx context.Context, url string, refresh bool) (Download, error) {
	if err := errors.ValidateURL(url); err != nil {
		return Download{}, err
	}
	var d Download
	err := c.Cached(ctx, cache.Key("url", url), refresh, &d, func() error {
		body, err := c.GetText(ctx, url)
		if err != nil {
			return err
		}
		d = Download{Text: body, FetchedAt: c.now()}
		return nil
	})
	if err != nil {
		return Download{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	return d, nil
}

// FetchDocument downloads the ecosystem README from its default location.
func (c *RawClient) FetchDocument(ctx context.Context, refresh bool) (Download, error) {
	return c.FetchFile(ctx, DocumentOwner, DocumentRepo, DocumentRef, DocumentPath, refresh)
}
