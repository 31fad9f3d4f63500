package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cmsecosystem/pkg/ecosystem"
	"github.com/matzehuels/cmsecosystem/pkg/errors"
)

// chaptersCommand lists chapters, or the sections of one chapter.
func (c *CLI) chaptersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chapters [title]",
		Short: "List chapters or the sections of a chapter",
		Long: `List the chapters of the ecosystem document with their section counts.

With a title, print every section of that chapter with its properties.
Titles are matched exactly, including case.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.readDocument(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) == 0 {
				fmt.Fprintln(stdout, chapterTable(doc))
				return nil
			}

			title := args[0]
			if err := errors.ValidateChapterTitle(title); err != nil {
				return err
			}
			ch := doc.Chapter(title)
			if ch == nil {
				return errors.New(errors.ErrCodeChapterNotFound, "no chapter %q", title)
			}
			printChapter(ch)
			return nil
		},
	}
}

// versionsCommand prints the django CMS, Python and Django versions.
func (c *CLI) versionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List django CMS, Python and Django versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.readDocument(cmd.Context())
			if err != nil {
				return err
			}
			printKeyValue("django CMS", strings.Join(doc.CMSVersions(), ", "))
			printKeyValue("Python", strings.Join(doc.PythonVersions(), ", "))
			printKeyValue("Django", strings.Join(doc.DjangoVersions(), ", "))
			return nil
		},
	}
}

func chapterTable(doc *ecosystem.Document) string {
	rows := make([][]string, 0, len(doc.Chapters))
	for _, ch := range doc.Chapters {
		rows = append(rows, []string{ch.Title, strconv.Itoa(len(ch.Sections))})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Chapter", "Sections").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case col == 1:
				return StyleNumber
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func printChapter(ch *ecosystem.Chapter) {
	printTitle(ch.Title)
	if ch.Description != "" {
		printDetail("%s", strings.TrimSpace(ch.Description))
	}
	for _, s := range ch.Sections {
		printNewline()
		fmt.Fprintln(stdout, StyleValue.Bold(true).Render(s.Title))
		if s.Description != "" {
			printDetail("%s", strings.TrimSpace(s.Description))
		}
		for _, key := range s.Properties.Keys() {
			printKeyValue(key, s.Properties.Get(key).String())
		}
	}
}
