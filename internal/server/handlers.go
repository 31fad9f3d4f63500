package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/cmsecosystem/pkg/ecosystem"
	"github.com/matzehuels/cmsecosystem/pkg/errors"
	"github.com/matzehuels/cmsecosystem/pkg/report"
)

type chapterSummary struct {
	Title    string `json:"title"`
	Sections int    `json:"sections"`
}

type versions struct {
	DjangoCMS []string `json:"django_cms"`
	Python    []string `json:"python"`
	Django    []string `json:"django"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{"status": "ok"}
	if aged, ok := s.docs.(interface{ Age() (time.Duration, bool) }); ok {
		if age, ok := aged.Age(); ok {
			body["document_age_seconds"] = int(age.Seconds())
		}
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleChapters(w http.ResponseWriter, r *http.Request) {
	doc, err := s.read(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make([]chapterSummary, 0, len(doc.Chapters))
	for _, c := range doc.Chapters {
		out = append(out, chapterSummary{Title: c.Title, Sections: len(c.Sections)})
	}
	writeJSON(w, http.StatusOK, map[string]any{"chapters": out})
}

func (s *Server) handleChapter(w http.ResponseWriter, r *http.Request) {
	// chi routes on RawPath when it is set, leaving the parameter escaped.
	title := chi.URLParam(r, "title")
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(title); err == nil {
			title = unescaped
		}
	}
	if err := errors.ValidateChapterTitle(title); err != nil {
		s.fail(w, r, err)
		return
	}

	doc, err := s.read(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	c := doc.Chapter(title)
	if c == nil {
		s.fail(w, r, errors.New(errors.ErrCodeChapterNotFound, "no chapter %q", title))
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleVersions(w http.ResponseWriter, r *http.Request) {
	doc, err := s.read(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, versions{
		DjangoCMS: doc.CMSVersions(),
		Python:    doc.PythonVersions(),
		Django:    doc.DjangoVersions(),
	})
}

func (s *Server) handleCompatibility(w http.ResponseWriter, r *http.Request) {
	s.writeReport(w, r, func(out io.Writer, doc *ecosystem.Document) error {
		return report.WriteCompatibility(out, doc)
	})
}

func (s *Server) handleLTS(w http.ResponseWriter, r *http.Request) {
	past, err := boolParam(r, "past")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeReport(w, r, func(out io.Writer, doc *ecosystem.Document) error {
		return report.WriteLTS(out, doc, !past, s.now())
	})
}

func (s *Server) handlePluginReport(w http.ResponseWriter, r *http.Request) {
	deprecated, err := boolParam(r, "deprecated")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	chapter := r.URL.Query().Get("chapter")
	if chapter != "" {
		if err := errors.ValidateChapterTitle(chapter); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	s.writeReport(w, r, func(out io.Writer, doc *ecosystem.Document) error {
		return report.WritePlugins(out, doc, chapter, deprecated)
	})
}

func (s *Server) handlePlugins(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"plugins": s.registry.List()})
}

func (s *Server) handleRenderPlugin(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.renderer.Render(r.Context(), &buf, chi.URLParam(r, "name")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// writeReport renders a text report into a buffer so that failures can
// still be answered with an error status.
func (s *Server) writeReport(w http.ResponseWriter, r *http.Request, write func(io.Writer, *ecosystem.Document) error) {
	doc, err := s.read(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := write(&buf, doc); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	buf.WriteTo(w)
}

// read returns the current document. Uncoded failures come from fetching
// upstream and are reported as network errors.
func (s *Server) read(ctx context.Context) (*ecosystem.Document, error) {
	doc, err := s.docs.Read(ctx)
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "read ecosystem document")
	}
	return doc, nil
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "path", r.URL.Path, "err", err)
	}
	jsonError(w, errors.UserMessage(err), status)
}

func boolParam(r *http.Request, key string) (bool, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "%s must be a boolean, got %q", key, v)
	}
	return b, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
