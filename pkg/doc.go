// Package pkg holds the cmsecosystem libraries.
//
// The data flow:
//
//	djangocms-ecosystem README (HTTP)
//	         ↓
//	    [integrations/github] raw fetch through [cache]
//	         ↓
//	    [ecosystem] parse, cache the Document, answer queries
//	         ↓
//	    [report] text tables, or [plugins] HTML fragments
//
// [errors], [observability] and [buildinfo] are shared by the CLI and the
// HTTP server under internal/.
package pkg
