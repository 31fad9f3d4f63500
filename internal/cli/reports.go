package cli

import (
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cmsecosystem/pkg/ecosystem"
	"github.com/matzehuels/cmsecosystem/pkg/errors"
	"github.com/matzehuels/cmsecosystem/pkg/report"
)

// now is the clock used by the LTS report.
var now = time.Now

// reportCommand builds a command that renders one text report.
func (c *CLI) reportCommand(use, short string, write func(io.Writer, *ecosystem.Document) error) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.readDocument(cmd.Context())
			if err != nil {
				return err
			}
			return writeOutput(output, func(w io.Writer) error {
				return write(w, doc)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to a file")
	return cmd
}

func (c *CLI) compatCommand() *cobra.Command {
	return c.reportCommand("compat", "Print the django CMS compatibility matrix", func(w io.Writer, doc *ecosystem.Document) error {
		return report.WriteCompatibility(w, doc)
	})
}

func (c *CLI) ltsCommand() *cobra.Command {
	var past bool
	cmd := c.reportCommand("lts", "Print the long-term-support table", func(w io.Writer, doc *ecosystem.Document) error {
		return report.WriteLTS(w, doc, !past, now())
	})
	cmd.Long = `Print the long-term-support table of django CMS releases.

By default only support windows that have not ended yet are listed. Use
--past for the ones that already ended.`
	cmd.Flags().BoolVar(&past, "past", false, "list support windows that have ended")
	return cmd
}

func (c *CLI) pluginsCommand() *cobra.Command {
	var (
		chapter    string
		deprecated bool
	)
	cmd := c.reportCommand("plugins", "Print the package directory of a chapter", func(w io.Writer, doc *ecosystem.Document) error {
		return report.WritePlugins(w, doc, chapter, deprecated)
	})
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		return errors.ValidateChapterTitle(chapter)
	}
	cmd.Flags().StringVar(&chapter, "chapter", ecosystem.ChapterCMSPackages, "chapter to list")
	cmd.Flags().BoolVar(&deprecated, "deprecated", false, "list deprecated packages instead")
	return cmd
}
