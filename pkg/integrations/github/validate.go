package github

import (
	"regexp"
	"strings"

	"github.com/matzehuels/cmsecosystem/pkg/errors"
)

var (
	// GitHub users and organisations: 1-39 alphanumerics or hyphens, no
	// leading hyphen.
	validOwner = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,38}$`)
	// Repository names: 1-100 alphanumerics, hyphens, underscores or dots.
	validRepo = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,100}$`)
	// Branch, tag or "refs/heads/..." references.
	validRef = regexp.MustCompile(`^[a-zA-Z0-9._/-]{1,255}$`)
)

// ValidateOwner checks a GitHub user or organisation name.
func ValidateOwner(owner string) error {
	if owner == "" {
		return errors.New(errors.ErrCodeInvalidInput, "owner is required")
	}
	if !validOwner.MatchString(owner) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid owner %q", owner)
	}
	return nil
}

// ValidateRepo checks a repository name.
func ValidateRepo(repo string) error {
	if repo == "" {
		return errors.New(errors.ErrCodeInvalidInput, "repo is required")
	}
	if !validRepo.MatchString(repo) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid repo %q", repo)
	}
	return nil
}

// ValidateRef checks a branch, tag or full ref name.
func ValidateRef(ref string) error {
	if !validRef.MatchString(ref) || strings.Contains(ref, "..") {
		return errors.New(errors.ErrCodeInvalidInput, "invalid ref %q", ref)
	}
	return nil
}

// ParseRepoRef splits and validates "owner/repo".
func ParseRepoRef(ref string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(ref, "/")
	if !ok {
		return "", "", errors.New(errors.ErrCodeInvalidInput, "invalid repository %q: use owner/repo", ref)
	}
	if err := ValidateOwner(owner); err != nil {
		return "", "", err
	}
	if err := ValidateRepo(repo); err != nil {
		return "", "", err
	}
	return owner, repo, nil
}
