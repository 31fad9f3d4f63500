package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/cmsecosystem/pkg/ecosystem"
)

// WriteCompatibility writes the django CMS compatibility matrix: one row per
// django CMS release, one column per Python version followed by one column
// per Django version. A Django cell reads "LTS" when the release is a
// long-term-support release for that Django version. Releases that declare
// neither Python nor Django support are left out.
func WriteCompatibility(w io.Writer, doc *ecosystem.Document) error {
	pythons := doc.PythonVersions()
	djangos := doc.DjangoVersions()

	separator := "========== " + repeat("==== ", len(pythons)-1) + "==== " + repeat("==== ", len(djangos)-1) + "===="
	subSeparator := "---------- " + repeat("-----", len(pythons)-1) + "---- " + repeat("-----", len(djangos)-1) + "----"

	header := make([]string, len(pythons))
	for i, py := range pythons {
		header[i] = fmt.Sprintf("%-4s", py)
	}

	t := &tableWriter{w: w}
	t.line(separator)
	t.linef("Django CMS %-*sDjango", 5*len(pythons), "Python")
	t.line(subSeparator)
	t.line(`\          ` + strings.Join(header, " ") + " " + strings.Join(djangos, "  "))
	t.line(separator)

	for _, cms := range doc.CMSVersions() {
		release := doc.Release(cms)
		if !declares(release, ecosystem.PropPython) && !declares(release, ecosystem.PropDjango) {
			continue
		}
		python := release.Properties.Get(ecosystem.PropPython)
		django := release.Properties.Get(ecosystem.PropDjango)
		longTerm := release.Properties.Get(ecosystem.PropLTS)

		pyCells := make([]string, len(pythons))
		for i, py := range pythons {
			pyCells[i] = marker(python.Contains(py)) + " "
		}
		djCells := make([]string, len(djangos))
		for i, dj := range djangos {
			switch {
			case !django.Contains(dj):
				djCells[i] = cross
			case longTerm.Contains(dj):
				djCells[i] = lts
			default:
				djCells[i] = check
			}
		}
		t.linef("%-10s %s %s", cms+".x", strings.Join(pyCells, " "), strings.Join(djCells, "  "))
	}
	t.line(separator)
	return t.err
}

// declares reports whether s carries a non-empty value under key.
func declares(s *ecosystem.Section, key string) bool {
	return s != nil && s.Properties.Get(key).Truthy()
}

func marker(supported bool) string {
	if supported {
		return check
	}
	return cross
}
