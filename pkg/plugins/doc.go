// Package plugins renders ecosystem chapters as embeddable HTML fragments.
//
// A [Plugin] names a render unit ("cms_packages"), the chapter it shows and
// the template it uses. The template receives the chapter's sections as the
// variable content, one [Entry] per section:
//
//	r, err := plugins.NewRenderer(plugins.DefaultRegistry(), cache)
//	err = r.Render(ctx, w, "cms_packages")
//
// Section descriptions are markdown and are rendered to HTML with goldmark.
// Raw HTML inside descriptions is not passed through.
package plugins
