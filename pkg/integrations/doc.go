// Package integrations holds the HTTP clients for the upstream services:
//
//   - [github]: raw file downloads of the ecosystem README
//   - [pypi]: package metadata from the Python Package Index
//
// Both build on [Client], which retries transient failures (network errors,
// 429 and 5xx responses) with back-off and caches responses in a
// [cache.Cache] under a per-client key prefix. A 404 surfaces as
// [ErrNotFound]; everything else that fails as [ErrNetwork].
//
// [github]: github.com/matzehuels/cmsecosystem/pkg/integrations/github
// [pypi]: github.com/matzehuels/cmsecosystem/pkg/integrations/pypi
// [cache.Cache]: github.com/matzehuels/cmsecosystem/pkg/cache.Cache
package integrations
