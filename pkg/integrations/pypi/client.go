package pypi

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/cmsecosystem/pkg/cache"
	cmserrors "github.com/matzehuels/cmsecosystem/pkg/errors"
	"github.com/matzehuels/cmsecosystem/pkg/integrations"
)

var (
	depRE    = regexp.MustCompile(`^([a-zA-Z0-9._-]+)`)
	markerRE = regexp.MustCompile(`;\s*(.+)`)
	skipRE   = regexp.MustCompile(`extra|dev|test`)
)

// Trove classifier prefixes that carry framework versions.
const (
	djangoClassifier    = "Framework :: Django :: "
	djangoCMSClassifier = "Framework :: Django CMS :: "
)

// PackageInfo is the subset of PyPI metadata shown next to ecosystem
// entries.
type PackageInfo struct {
	Name           string            `json:"name"`
	Version        string            `json:"version"`
	Summary        string            `json:"summary,omitempty"`
	License        string            `json:"license,omitempty"`
	RequiresPython string            `json:"requires_python,omitempty"`
	HomePage       string            `json:"home_page,omitempty"`
	ProjectURLs    map[string]string `json:"project_urls,omitempty"`
	Repository     string            `json:"repository,omitempty"`
	Dependencies   []string          `json:"dependencies,omitempty"`
	// Django and DjangoCMS list the framework versions declared through
	// trove classifiers, newest first as PyPI reports them.
	Django    []string `json:"django,omitempty"`
	DjangoCMS []string `json:"django_cms,omitempty"`
}

// DependsOn reports whether pkg is a direct runtime dependency.
func (p *PackageInfo) DependsOn(pkg string) bool {
	return slices.Contains(p.Dependencies, integrations.NormalizePkgName(pkg))
}

// Client reads package metadata from the PyPI JSON API.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a PyPI client caching responses in backend for
// cacheTTL.
func NewClient(backend cache.Cache, cacheTTL time.Duration, userAgent string) *Client {
	var headers map[string]string
	if userAgent != "" {
		headers = map[string]string{"User-Agent": userAgent}
	}
	return &Client{
		Client:  integrations.NewClient(backend, "pypi:", cacheTTL, headers),
		baseURL: "https://pypi.org/pypi",
	}
}

// FetchPackage returns the metadata of the latest release of pkg. The name
// is normalised first. A missing package yields an error matching
// [integrations.ErrNotFound].
func (c *Client) FetchPackage(ctx context.Context, pkg string, refresh bool) (*PackageInfo, error) {
	if err := cmserrors.ValidatePythonPackageName(pkg); err != nil {
		return nil, err
	}
	pkg = integrations.NormalizePkgName(pkg)

	var info PackageInfo
	err := c.Cached(ctx, pkg, refresh, &info, func() error {
		return c.fetch(ctx, pkg, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) fetch(ctx context.Context, pkg string, info *PackageInfo) error {
	var data apiResponse
	if err := c.Get(ctx, fmt.Sprintf("%s/%s/json", c.baseURL, pkg), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: pypi package %s", err, pkg)
		}
		return err
	}

	urls := make(map[string]string, len(data.Info.ProjectURLs))
	for k, v := range data.Info.ProjectURLs {
		if s, ok := v.(string); ok {
			urls[k] = s
		}
	}

	*info = PackageInfo{
		Name:           data.Info.Name,
		Version:        data.Info.Version,
		Summary:        data.Info.Summary,
		License:        extractLicenseType(data.Info.License, data.Info.Classifiers),
		RequiresPython: data.Info.RequiresPython,
		HomePage:       data.Info.HomePage,
		ProjectURLs:    urls,
		Dependencies:   extractDeps(data.Info.RequiresDist),
		Django:         classifierVersions(data.Info.Classifiers, djangoClassifier),
		DjangoCMS:      classifierVersions(data.Info.Classifiers, djangoCMSClassifier),
	}
	if owner, repo, ok := integrations.ExtractRepoURL(integrations.GitHubRepoRE, urls, data.Info.HomePage); ok {
		info.Repository = "https://github.com/" + owner + "/" + repo
	} else {
		info.Repository = sourceURL(urls)
	}
	return nil
}

// sourceURL returns the first source-code project URL, for repositories
// hosted outside GitHub.
func sourceURL(urls map[string]string) string {
	for _, key := range []string{"Source", "Source Code", "Repository", "Code"} {
		if u := urls[key]; u != "" {
			return integrations.NormalizeRepoURL(u)
		}
	}
	return ""
}

// extractDeps returns the normalised runtime dependencies, skipping those
// behind extra, dev or test markers.
func extractDeps(requires []string) []string {
	seen := make(map[string]bool)
	var deps []string
	for _, req := range requires {
		if m := markerRE.FindStringSubmatch(req); len(m) > 1 && skipRE.MatchString(m[1]) {
			continue
		}
		if m := depRE.FindStringSubmatch(req); len(m) > 1 {
			dep := integrations.NormalizePkgName(m[1])
			if !seen[dep] {
				seen[dep] = true
				deps = append(deps, dep)
			}
		}
	}
	return deps
}

// classifierVersions collects "Framework :: Django :: 4.2" style versions.
// Classifiers without a version ("Framework :: Django") are ignored.
func classifierVersions(classifiers []string, prefix string) []string {
	var versions []string
	for _, c := range classifiers {
		if v, ok := strings.CutPrefix(c, prefix); ok && v != "" && !strings.Contains(v, "::") {
			versions = append(versions, v)
		}
	}
	return versions
}

// extractLicenseType prefers the license classifier ("License :: OSI
// Approved :: BSD License" gives "BSD License") and falls back to a short
// license field or its first line.
func extractLicenseType(license string, classifiers []string) string {
	for _, c := range classifiers {
		if parts := strings.Split(c, " :: "); len(parts) >= 3 && parts[0] == "License" {
			return parts[len(parts)-1]
		}
	}
	license = strings.TrimSpace(license)
	if license == "" {
		return ""
	}
	if len(license) < 100 && !strings.Contains(license, "\n") {
		return license
	}
	if first, _, _ := strings.Cut(license, "\n"); len(strings.TrimSpace(first)) < 50 {
		return strings.TrimSpace(first)
	}
	return ""
}

type apiResponse struct {
	Info apiInfo `json:"info"`
}

type apiInfo struct {
	Name           string         `json:"name"`
	Version        string         `json:"version"`
	Summary        string         `json:"summary"`
	License        string         `json:"license"`
	Classifiers    []string       `json:"classifiers"`
	RequiresDist   []string       `json:"requires_dist"`
	RequiresPython string         `json:"requires_python"`
	ProjectURLs    map[string]any `json:"project_urls"`
	HomePage       string         `json:"home_page"`
}
