// Package ecosystem parses the django CMS ecosystem document and answers
// version questions about it.
//
// # Document format
//
// The upstream README is informal markdown. Only three line kinds carry
// structure: "## " opens a [Chapter], "### " opens a [Section] inside the
// current chapter, and "* key: value" adds a property to the current
// section. Everything else that is not blank becomes description prose.
// A value containing ", " is a list; anything else is a scalar:
//
//	## django CMS
//	### django CMS 4.1
//	* python: 3.9, 3.10, 3.11
//	* django: 4.2
//	* LTS: 4.2
//
// # Queries
//
// Version lookups are methods on [Document] and never fail: a missing
// chapter or release section gives an empty result. Version lists are
// ordered by [SortVersions], newest first.
//
//	doc := ecosystem.ParseString(src)
//	doc.PythonVersions()     // ["3.11", "3.10", "3.9"]
//	doc.PythonSupport("4.1") // ["3.9", "3.10", "3.11"], as declared
//
// # Caching
//
// [Cache] keeps one parsed document in memory and re-fetches it through a
// [FetchFunc] once the downloaded text is a day old. The clock is injectable
// with [WithClock].
package ecosystem
