package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/cmsecosystem/pkg/cache"
	"github.com/matzehuels/cmsecosystem/pkg/ecosystem"
	cmserrors "github.com/matzehuels/cmsecosystem/pkg/errors"
	"github.com/matzehuels/cmsecosystem/pkg/integrations"
)

func testRawClient(t *testing.T, serverURL string) *RawClient {
	t.Helper()
	backend, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := NewRawClient(backend, time.Hour, "cmsecosystem-test")
	c.baseURL = serverURL
	return c
}

func TestRawClient_FetchFile(t *testing.T) {
	var hits atomic.Int32
	var userAgent atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		userAgent.Store(r.UserAgent())
		if r.URL.Path != "/django-cms/djangocms-ecosystem/refs/heads/main/README.md" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("## django CMS\n"))
	}))
	defer server.Close()

	c := testRawClient(t, server.URL)
	ctx := context.Background()

	d, err := c.FetchDocument(ctx, false)
	if err != nil {
		t.Fatalf("FetchDocument: %v", err)
	}
	if d.Text != "## django CMS\n" {
		t.Errorf("text = %q", d.Text)
	}
	if d.FetchedAt.IsZero() {
		t.Error("FetchedAt should be set")
	}
	if ua, _ := userAgent.Load().(string); ua != "cmsecosystem-test" {
		t.Errorf("User-Agent = %q", ua)
	}

	if _, err := c.FetchDocument(ctx, false); err != nil {
		t.Fatal(err)
	}
	if hits.Load() != 1 {
		t.Errorf("second fetch should be cached, hits = %d", hits.Load())
	}

	if _, err := c.FetchDocument(ctx, true); err != nil {
		t.Fatal(err)
	}
	if hits.Load() != 2 {
		t.Errorf("refresh should hit the server, hits = %d", hits.Load())
	}
}

func TestRawClient_NotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := testRawClient(t, server.URL).FetchFile(context.Background(), "django-cms", "missing", "main", "README.md", false)
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestRawClient_InvalidArguments(t *testing.T) {
	c := testRawClient(t, "http://127.0.0.1:0")
	ctx := context.Background()

	tests := []struct {
		name                   string
		owner, repo, ref, path string
	}{
		{"bad owner", "-nope", "repo", "main", "README.md"},
		{"bad repo", "owner", "re po", "main", "README.md"},
		{"traversing ref", "owner", "repo", "../main", "README.md"},
		{"absolute path", "owner", "repo", "main", "/etc/passwd"},
		{"traversing path", "owner", "repo", "main", "../README.md"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.FetchFile(ctx, tt.owner, tt.repo, tt.ref, tt.path, false)
			if !cmserrors.Is(err, cmserrors.ErrCodeInvalidInput) && !cmserrors.Is(err, cmserrors.ErrCodeInvalidPath) {
				t.Errorf("error = %v, want validation error", err)
			}
		})
	}

	if _, err := c.FetchURL(ctx, "ftp://example.com/file", false); !cmserrors.Is(err, cmserrors.ErrCodeInvalidInput) {
		t.Errorf("FetchURL(ftp) error = %v", err)
	}
}

func TestDefaultDocumentURL(t *testing.T) {
	want := "https://raw.githubusercontent.com/django-cms/djangocms-ecosystem/refs/heads/main/README.md"
	if DefaultDocumentURL != want {
		t.Errorf("DefaultDocumentURL = %q", DefaultDocumentURL)
	}
}

func TestParseRepoRef(t *testing.T) {
	tests := []struct {
		in      string
		owner   string
		repo    string
		wantErr bool
	}{
		{"django-cms/django-cms", "django-cms", "django-cms", false},
		{"django-cms/djangocms-text.git", "django-cms", "djangocms-text.git", false},
		{"noslash", "", "", true},
		{"/repo", "", "", true},
		{"owner/", "", "", true},
	}
	for _, tt := range tests {
		owner, repo, err := ParseRepoRef(tt.in)
		if (err != nil) != tt.wantErr || owner != tt.owner || repo != tt.repo {
			t.Errorf("ParseRepoRef(%q) = %q, %q, %v", tt.in, owner, repo, err)
		}
	}
}

func TestRawClient_CachedDownloadKeepsTime(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("body"))
	}))
	defer server.Close()

	c := testRawClient(t, server.URL)
	first := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return first }
	ctx := context.Background()

	if _, err := c.FetchURL(ctx, server.URL+"/doc", false); err != nil {
		t.Fatal(err)
	}
	c.now = func() time.Time { return first.Add(5 * time.Hour) }

	cached, err := c.FetchURL(ctx, server.URL+"/doc", false)
	if err != nil {
		t.Fatal(err)
	}
	if !cached.FetchedAt.Equal(first) {
		t.Errorf("cached FetchedAt = %v, want %v", cached.FetchedAt, first)
	}
	fresh, err := c.FetchURL(ctx, server.URL+"/doc", true)
	if err != nil {
		t.Fatal(err)
	}
	if !fresh.FetchedAt.Equal(first.Add(5 * time.Hour)) {
		t.Errorf("refreshed FetchedAt = %v", fresh.FetchedAt)
	}
}

// upstreamDoc serves a replaceable document and counts requests.
type upstreamDoc struct {
	text atomic.Value
	hits atomic.Int32
}

func (u *upstreamDoc) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u.hits.Add(1)
	w.Write([]byte(u.text.Load().(string)))
}

// documentCache stacks an ecosystem.Cache on top of the raw client, the way
// the command line wires them.
func documentCache(c *RawClient, url string, now func() time.Time) *ecosystem.Cache {
	return ecosystem.NewCache(func(ctx context.Context, refresh bool) (ecosystem.Source, error) {
		d, err := c.FetchURL(ctx, url, refresh)
		return ecosystem.Source{Text: d.Text, FetchedAt: d.FetchedAt}, err
	}, ecosystem.WithClock(now))
}

func TestRawClient_StaleDocumentReachesUpstream(t *testing.T) {
	up := &upstreamDoc{}
	up.text.Store("## Old\n")
	server := httptest.NewServer(up)
	defer server.Close()

	clock := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }
	c := testRawClient(t, server.URL)
	c.now = now
	docs := documentCache(c, server.URL+"/README.md", now)
	ctx := context.Background()

	if doc, err := docs.Read(ctx); err != nil || doc.Chapter("Old") == nil {
		t.Fatalf("first Read = %v, %v", doc, err)
	}

	up.text.Store("## New\n")
	clock = clock.Add(25 * time.Hour)

	doc, err := docs.Read(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Chapter("New") == nil {
		t.Errorf("stale document served from the raw cache")
	}
	if got := up.hits.Load(); got != 2 {
		t.Errorf("upstream hits = %d, want 2", got)
	}
}

func TestRawClient_PreviouslyCachedTextKeepsItsAge(t *testing.T) {
	up := &upstreamDoc{}
	up.text.Store("## Old\n")
	server := httptest.NewServer(up)
	defer server.Close()

	clock := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }
	c := testRawClient(t, server.URL)
	c.now = now
	url := server.URL + "/README.md"
	ctx := context.Background()

	// An earlier run filled the raw cache.
	if _, err := c.FetchURL(ctx, url, false); err != nil {
		t.Fatal(err)
	}
	up.text.Store("## New\n")
	clock = clock.Add(23 * time.Hour)

	docs := documentCache(c, url, now)
	if doc, err := docs.Read(ctx); err != nil || doc.Chapter("Old") == nil {
		t.Fatalf("Read = %v, %v", doc, err)
	}
	if age, _ := docs.Age(); age != 23*time.Hour {
		t.Errorf("Age() = %v, want 23h", age)
	}

	clock = clock.Add(time.Hour)
	doc, err := docs.Read(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Chapter("New") == nil || up.hits.Load() != 2 {
		t.Errorf("document a day past its download was not refreshed, hits = %d", up.hits.Load())
	}
}
