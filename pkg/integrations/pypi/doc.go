// Package pypi reads package metadata from the Python Package Index.
//
// The ecosystem document lists packages by name; [Client.FetchPackage] adds
// the latest released version, the supported Python range and the Django /
// django CMS versions the package declares through trove classifiers:
//
//	client := pypi.NewClient(backend, 24*time.Hour, buildinfo.UserAgent())
//	info, err := client.FetchPackage(ctx, "djangocms-text", false)
//	fmt.Println(info.Version, info.DjangoCMS)
//
// Responses are cached; pass refresh=true to bypass the cache.
package pypi
