// Package report writes the ecosystem reports as fixed-width
// reStructuredText grid tables.
//
// Three tables are available:
//
//   - [WriteCompatibility]: django CMS releases against Python and Django versions
//   - [WriteLTS]: long-term-support Django versions with their end of support
//   - [WritePlugins]: a package directory built from one chapter
//
// Column widths are fixed, so the output can be pasted into documentation
// as-is. Supported cells are marked with "✓", unsupported ones with "×".
package report
