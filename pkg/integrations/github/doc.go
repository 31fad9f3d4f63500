// Package github downloads raw files from GitHub repositories.
//
// The ecosystem document lives at [DefaultDocumentURL]; [RawClient] fetches
// it (or any other raw URL) as text, with retries and caching:
//
//	client := github.NewRawClient(backend, 24*time.Hour, buildinfo.UserAgent())
//	md, err := client.FetchDocument(ctx, false)
//
// Owner, repository and ref arguments are validated before any request is
// made.
package github
