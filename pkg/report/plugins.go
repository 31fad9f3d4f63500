package report

import (
	"io"
	"strings"

	"github.com/matzehuels/cmsecosystem/pkg/ecosystem"
)

const (
	pluginSeparator = "============================== ============================================================ =========== =================="
	pluginHeader    = "Package                        Description                                                  Status      Supported Versions"

	unknownGrade = "unknown"
)

// WritePlugins writes the package directory of chapter (the "CMS packages"
// chapter when empty). Only sections whose deprecated property is truthy
// exactly when deprecated is set are listed. Descriptions wrap at
// [DescriptionWidth] characters with continuation lines kept in the
// description column.
//
// Nothing is written when the chapter does not exist.
func WritePlugins(w io.Writer, doc *ecosystem.Document, chapter string, deprecated bool) error {
	if chapter == "" {
		chapter = ecosystem.ChapterCMSPackages
	}
	ch := doc.Chapter(chapter)
	if ch == nil {
		return nil
	}

	t := &tableWriter{w: w}
	t.line(pluginSeparator)
	t.line(pluginHeader)
	t.line(pluginSeparator)

	for _, plugin := range ch.Sections {
		if plugin.Properties.Get(ecosystem.PropDeprecated).Truthy() != deprecated {
			continue
		}
		grade := plugin.Properties.String(ecosystem.PropGrade, unknownGrade)
		versions := strings.Join(plugin.Properties.Items(ecosystem.PropDjangoCMS), ", ")

		lines := SplitDescription(plugin.Description, DescriptionWidth)
		if len(lines) == 0 {
			lines = []string{""}
		}
		t.linef("%-30s %-60s %-13s %s", plugin.Title, lines[0], grade, versions)
		for _, l := range lines[1:] {
			t.linef("%-30s %-60s", "", l)
		}
	}
	t.line(pluginSeparator)
	return t.err
}
