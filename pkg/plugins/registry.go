package plugins

import (
	"sort"
	"sync"

	"github.com/matzehuels/cmsecosystem/pkg/ecosystem"
	"github.com/matzehuels/cmsecosystem/pkg/errors"
)

// Plugin is a named render unit over one chapter.
type Plugin struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Chapter  string `json:"chapter"`
	Template string `json:"template"`
}

// PackagesTemplate is the embedded template shared by the default plugins.
const PackagesTemplate = "packages.html"

// Registry is a concurrency-safe set of plugins keyed by name.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]Plugin)}
}

// DefaultRegistry returns a registry with the two package listings.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, p := range []Plugin{
		{Name: "cms_packages", Label: "Official CMS packages", Chapter: ecosystem.ChapterCMSPackages, Template: PackagesTemplate},
		{Name: "django_packages", Label: "Official Django packages", Chapter: ecosystem.ChapterDjangoPackages, Template: PackagesTemplate},
	} {
		if err := r.Register(p); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds p. The name must be valid and unused, and a chapter and
// template are required.
func (r *Registry) Register(p Plugin) error {
	if err := errors.ValidatePluginName(p.Name); err != nil {
		return err
	}
	if p.Chapter == "" || p.Template == "" {
		return errors.New(errors.ErrCodeInvalidInput, "plugin %s: chapter and template are required", p.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.plugins[p.Name]; exists {
		return errors.New(errors.ErrCodeInvalidInput, "plugin %s already registered", p.Name)
	}
	r.plugins[p.Name] = p
	return nil
}

// Get looks up a plugin by name.
func (r *Registry) Get(name string) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[name]
	return p, ok
}

// List returns all plugins sorted by name.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Plugin, 0, len(r.plugins))
	for _, p := range r.plugins {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
