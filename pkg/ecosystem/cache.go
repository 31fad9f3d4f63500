package ecosystem

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cmsecosystem/pkg/observability"
)

// DefaultMaxAge is how long a parsed document is served before the next
// read fetches it again.
const DefaultMaxAge = 24 * time.Hour

// Source is the raw markdown of the ecosystem document. FetchedAt is when
// the text was downloaded upstream; the zero time means just now.
type Source struct {
	Text      string
	FetchedAt time.Time
}

// FetchFunc returns the document. With refresh set it must bypass any
// intermediate cache and download the text again.
type FetchFunc func(ctx context.Context, refresh bool) (Source, error)

// Cache holds the most recently parsed Document and refreshes it lazily.
//
// A read re-fetches when nothing is cached yet, when the cached document has
// no chapters, or when at least one whole MaxAge period (a day by default)
// has elapsed since the text was downloaded. The first load may be served
// from the fetcher's own cache; every later load goes upstream.
// Refreshes are not serialised: concurrent readers of a stale cache may
// each fetch, and the last one to finish wins. The cached document is
// swapped as a whole, so readers never see a partially built state.
type Cache struct {
	fetch  FetchFunc
	now    func() time.Time
	maxAge time.Duration
	logger *log.Logger

	current atomic.Pointer[snapshot]
}

type snapshot struct {
	doc       *Document
	fetchedAt time.Time
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithMaxAge overrides [DefaultMaxAge]. Non-positive values are ignored.
func WithMaxAge(d time.Duration) CacheOption {
	return func(c *Cache) {
		if d > 0 {
			c.maxAge = d
		}
	}
}

// WithLogger sets the logger used for refresh messages.
func WithLogger(l *log.Logger) CacheOption {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCache creates an empty cache backed by fetch.
func NewCache(fetch FetchFunc, opts ...CacheOption) *Cache {
	c := &Cache{
		fetch:  fetch,
		now:    time.Now,
		maxAge: DefaultMaxAge,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Read returns the cached document, fetching and parsing it first when the
// cache is empty or stale. Fetch errors are returned as-is and leave any
// previously cached document in place.
func (c *Cache) Read(ctx context.Context) (*Document, error) {
	s := c.current.Load()
	if s != nil && !c.stale(s) {
		observability.Cache().OnCacheHit(ctx, "document")
		return s.doc, nil
	}
	observability.Cache().OnCacheMiss(ctx, "document")
	return c.load(ctx, s != nil)
}

// Refresh downloads and parses the document unconditionally.
func (c *Cache) Refresh(ctx context.Context) (*Document, error) {
	return c.load(ctx, true)
}

func (c *Cache) load(ctx context.Context, refresh bool) (*Document, error) {
	start := time.Now()
	observability.Document().OnRefreshStart(ctx)

	s, bytes, err := c.fetchSnapshot(ctx, refresh)
	if err == nil && !refresh && c.expired(s.fetchedAt) {
		// The fetcher's cache handed back text older than maxAge.
		s, bytes, err = c.fetchSnapshot(ctx, true)
	}
	if err != nil {
		observability.Document().OnRefreshComplete(ctx, 0, time.Since(start), err)
		return nil, err
	}
	c.current.Store(s)

	observability.Document().OnRefreshComplete(ctx, len(s.doc.Chapters), time.Since(start), nil)
	c.logger.Debug("ecosystem document refreshed",
		"chapters", len(s.doc.Chapters), "bytes", bytes, "fetched_at", s.fetchedAt)
	return s.doc, nil
}

func (c *Cache) fetchSnapshot(ctx context.Context, refresh bool) (*snapshot, int, error) {
	src, err := c.fetch(ctx, refresh)
	if err != nil {
		return nil, 0, err
	}
	at := src.FetchedAt
	if at.IsZero() {
		at = c.now()
	}
	return &snapshot{doc: ParseString(src.Text), fetchedAt: at}, len(src.Text), nil
}

// Chapter reads the document and returns the chapter titled title, or nil.
func (c *Cache) Chapter(ctx context.Context, title string) (*Chapter, error) {
	doc, err := c.Read(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Chapter(title), nil
}

// Invalidate drops the cached document; the next Read fetches again.
func (c *Cache) Invalidate() {
	c.current.Store(nil)
}

// FetchedAt returns when the cached document was fetched, and false when
// nothing is cached.
func (c *Cache) FetchedAt() (time.Time, bool) {
	s := c.current.Load()
	if s == nil {
		return time.Time{}, false
	}
	return s.fetchedAt, true
}

// stale reports whether at least one whole maxAge period has passed. A
// document without chapters is never kept.
func (c *Cache) stale(s *snapshot) bool {
	if len(s.doc.Chapters) == 0 {
		return true
	}
	return c.expired(s.fetchedAt)
}

func (c *Cache) expired(at time.Time) bool {
	return c.now().Sub(at)/c.maxAge >= 1
}

// Age returns how long ago the cached text was downloaded, measured with
// the cache clock. ok is false when nothing is cached.
func (c *Cache) Age() (age time.Duration, ok bool) {
	at, ok := c.FetchedAt()
	if !ok {
		return 0, false
	}
	return c.now().Sub(at), true
}
