package report

import (
	"io"
	"time"

	"github.com/matzehuels/cmsecosystem/pkg/ecosystem"
)

const (
	ltsSeparator = "========== ============== ====== ========================"
	ltsHeader    = "django CMS Feature freeze Django End of long-term support"

	unknownDate = "unknown"
)

// WriteLTS writes the long-term-support table. Each django CMS release with
// an LTS property contributes one row per LTS Django version. The end of
// support is looked up in the "Django timelines" chapter.
//
// With current set, only rows whose end of support falls in or after the
// month of now are written; otherwise only the rows that have already
// ended. Dates that are not "MM/YYYY" count as December 2099.
//
// Nothing is written when the document has no "django CMS" chapter.
func WriteLTS(w io.Writer, doc *ecosystem.Document, current bool, now time.Time) error {
	cms := doc.Chapter(ecosystem.ChapterDjangoCMS)
	if cms == nil {
		return nil
	}
	timelines := doc.Chapter(ecosystem.ChapterDjangoTimelines)

	t := &tableWriter{w: w}
	t.line(ltsSeparator)
	t.line(ltsHeader)
	t.line(ltsSeparator)

	thisYear, thisMonth := now.Format("2006"), now.Format("01")
	for _, release := range cms.Sections {
		if !release.IsRelease() || !release.Properties.Has(ecosystem.PropLTS) {
			continue
		}
		freeze := EnglishDate(release.Properties.String(ecosystem.PropFeatureFreeze, "-"))
		for _, django := range release.Properties.Items(ecosystem.PropLTS) {
			eos := endOfSupport(timelines, django)
			month, year, ok := splitDate(eos)
			if !ok {
				month, year = "12", "2099"
			}
			// Plain string comparison; both sides are zero-padded.
			supported := year == thisYear && month >= thisMonth || year > thisYear
			if supported != current {
				continue
			}
			t.linef("%-10s %-14s %-6s %s", release.ReleaseVersion()+".x", freeze, django, EnglishDate(eos))
		}
	}
	t.line(ltsSeparator)
	return t.err
}

// endOfSupport returns the end-of-support date of a Django version from the
// timelines chapter, or "unknown".
func endOfSupport(timelines *ecosystem.Chapter, django string) string {
	s := timelines.Section(django)
	if s == nil {
		return unknownDate
	}
	return s.Properties.String(ecosystem.PropEndOfSupport, unknownDate)
}
