package integrations

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/matzehuels/cmsecosystem/pkg/cache"
)

// DefaultTimeout bounds a single upstream request.
const DefaultTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when the upstream answers 404. It is the same
	// value as cache.ErrNotFound.
	ErrNotFound = cache.ErrNotFound

	// ErrNetwork is returned for transport failures and unexpected status
	// codes. It is the same value as cache.ErrNetwork.
	ErrNetwork = cache.ErrNetwork
)

// NewHTTPClient returns an http.Client with [DefaultTimeout].
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
}

// NormalizePkgName applies PEP 503 normalisation: lower case, with runs of
// "_", "." and "-" collapsed into "-".
func NormalizePkgName(name string) string {
	return pkgSeparators.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

var pkgSeparators = regexp.MustCompile(`[-_.]+`)

var repoURLReplacer = strings.NewReplacer(
	"git@github.com:", "https://github.com/",
	"git://github.com/", "https://github.com/",
)

// NormalizeRepoURL rewrites git@, git:// and git+ repository URLs to plain
// https and strips a trailing ".git".
func NormalizeRepoURL(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "git+")
	s = repoURLReplacer.Replace(s)
	return strings.TrimSuffix(s, ".git")
}

// GitHubRepoRE matches GitHub repository URLs, capturing owner and name.
var GitHubRepoRE = regexp.MustCompile(`github\.com[/:]([^/\s]+)/([^/\s#?]+)`)

var repoURLKeys = []string{"Source", "Source Code", "Repository", "Code", "Homepage"}

// ExtractRepoURL looks through project URLs, preferring the usual source
// keys, then any URL, then homepage, for one matched by re. re must capture
// owner and repository name.
func ExtractRepoURL(re *regexp.Regexp, urls map[string]string, homepage string) (owner, repo string, ok bool) {
	match := func(u string) bool {
		if strings.Contains(u, "/sponsors/") {
			return false
		}
		if m := re.FindStringSubmatch(u); len(m) >= 3 {
			owner, repo, ok = m[1], strings.TrimSuffix(m[2], ".git"), true
			return true
		}
		return false
	}

	for _, key := range repoURLKeys {
		if u, exists := urls[key]; exists && match(u) {
			return
		}
	}
	for _, u := range urls {
		if match(u) {
			return
		}
	}
	if homepage != "" {
		match(homepage)
	}
	return
}
