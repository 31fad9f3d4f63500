package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	d := NoopDocumentHooks{}
	d.OnRefreshStart(ctx)
	d.OnRefreshComplete(ctx, 4, time.Second, nil)
	d.OnRefreshComplete(ctx, 0, time.Second, errors.New("boom"))

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "document")
	c.OnCacheMiss(ctx, "http")
	c.OnCacheSet(ctx, "http", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "raw.githubusercontent.com", "/django-cms/djangocms-ecosystem/README.md")
	h.OnResponse(ctx, "GET", "raw.githubusercontent.com", "/django-cms/djangocms-ecosystem/README.md", 200, time.Second)
	h.OnError(ctx, "GET", "pypi.org", "/pypi/django-cms/json", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Document().(NoopDocumentHooks); !ok {
		t.Error("Document() should return NoopDocumentHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	doc := &testDocumentHooks{}
	SetDocumentHooks(doc)
	if Document() != doc {
		t.Error("SetDocumentHooks should set custom hooks")
	}

	cache := &testCacheHooks{}
	SetCacheHooks(cache)
	if Cache() != cache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	httpHooks := &testHTTPHooks{}
	SetHTTPHooks(httpHooks)
	if HTTP() != httpHooks {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Document().(NoopDocumentHooks); !ok {
		t.Error("Reset() should restore NoopDocumentHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	custom := &testDocumentHooks{}
	SetDocumentHooks(custom)
	SetDocumentHooks(nil)

	if Document() != custom {
		t.Error("SetDocumentHooks(nil) should be ignored")
	}
}

type testDocumentHooks struct{ NoopDocumentHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
