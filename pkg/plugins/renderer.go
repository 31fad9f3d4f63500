package plugins

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"io"
	"io/fs"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/matzehuels/cmsecosystem/pkg/ecosystem"
	"github.com/matzehuels/cmsecosystem/pkg/errors"
)

//go:embed templates/*.html
var embedded embed.FS

// ChapterSource supplies chapters by title. *ecosystem.Cache implements it.
type ChapterSource interface {
	Chapter(ctx context.Context, title string) (*ecosystem.Chapter, error)
}

// Entry is the template view of one section.
type Entry struct {
	Title       string
	Description template.HTML
	Grade       string
	Versions    []string
	Deprecated  bool
	Properties  ecosystem.Properties
}

// Renderer executes plugin templates over chapters from a ChapterSource.
type Renderer struct {
	registry  *Registry
	source    ChapterSource
	templates *template.Template
	markdown  goldmark.Markdown
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer) error

// WithTemplates parses templates matching patterns in fsys in addition to
// the embedded ones. A template with the same name replaces the embedded
// one.
func WithTemplates(fsys fs.FS, patterns ...string) RendererOption {
	return func(r *Renderer) error {
		t, err := r.templates.ParseFS(fsys, patterns...)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse templates")
		}
		r.templates = t
		return nil
	}
}

// NewRenderer creates a Renderer for the plugins in registry.
func NewRenderer(registry *Registry, source ChapterSource, opts ...RendererOption) (*Renderer, error) {
	t, err := template.New("").ParseFS(embedded, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse embedded templates")
	}
	r := &Renderer{
		registry:  registry,
		source:    source,
		templates: t,
		markdown:  goldmark.New(goldmark.WithExtensions(extension.GFM, extension.Linkify)),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Render writes the fragment of the plugin called name to w. Nothing is
// written when rendering fails. A chapter missing from the document
// renders with empty content.
func (r *Renderer) Render(ctx context.Context, w io.Writer, name string) error {
	p, ok := r.registry.Get(name)
	if !ok {
		return errors.New(errors.ErrCodePluginNotFound, "unknown plugin %q", name)
	}

	chapter, err := r.source.Chapter(ctx, p.Chapter)
	if err != nil {
		if errors.GetCode(err) != "" {
			return err
		}
		return errors.Wrap(errors.ErrCodeNetwork, err, "read chapter %q", p.Chapter)
	}

	content, err := r.Entries(chapter)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	data := map[string]any{"plugin": p, "content": content}
	if err := r.templates.ExecuteTemplate(&buf, p.Template, data); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "render plugin %s", name)
	}
	_, err = buf.WriteTo(w)
	return err
}

// Entries converts the sections of chapter into template entries. A nil
// chapter yields an empty slice.
func (r *Renderer) Entries(chapter *ecosystem.Chapter) ([]Entry, error) {
	if chapter == nil {
		return []Entry{}, nil
	}
	out := make([]Entry, 0, len(chapter.Sections))
	for _, s := range chapter.Sections {
		var desc bytes.Buffer
		if err := r.markdown.Convert([]byte(s.Description), &desc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render description of %s", s.Title)
		}
		out = append(out, Entry{
			Title: s.Title,
			// goldmark escapes raw HTML unless html.WithUnsafe is set.
			Description: template.HTML(desc.String()),
			Grade:       s.Properties.String(ecosystem.PropGrade, "unknown"),
			Versions:    s.Properties.Items(ecosystem.PropDjangoCMS),
			Deprecated:  s.Properties.Get(ecosystem.PropDeprecated).Truthy(),
			Properties:  s.Properties,
		})
	}
	return out, nil
}
