package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cmsecosystem/pkg/ecosystem"
	"github.com/matzehuels/cmsecosystem/pkg/errors"
	"github.com/matzehuels/cmsecosystem/pkg/integrations/pypi"
)

// maxParallelFetches bounds concurrent PyPI requests.
const maxParallelFetches = 8

// chapterDependency names the PyPI project every package of a chapter is
// expected to require.
var chapterDependency = map[string]string{
	ecosystem.ChapterCMSPackages:    "django-cms",
	ecosystem.ChapterDjangoPackages: "django",
}

type release struct {
	name string
	info *pypi.PackageInfo
	err  error
}

// releasesCommand lists the latest PyPI release of each package in a chapter.
func (c *CLI) releasesCommand() *cobra.Command {
	var chapter string

	cmd := &cobra.Command{
		Use:   "releases",
		Short: "Show the latest PyPI release of each package",
		Long: `Show the latest PyPI release of each package listed in a chapter.

Section titles are taken as PyPI project names. Packages that cannot be
found on PyPI are reported but do not fail the command, and so are
packages that do not declare a dependency on the framework their chapter
is about.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := errors.ValidateChapterTitle(chapter); err != nil {
				return err
			}

			docs, backend, err := c.newDocuments(ctx)
			if err != nil {
				return err
			}
			defer backend.Close()

			ch, err := docs.Chapter(ctx, chapter)
			if err != nil {
				return err
			}
			if ch == nil {
				return errors.New(errors.ErrCodeChapterNotFound, "no chapter %q", chapter)
			}

			spinner := newSpinner(ctx, fmt.Sprintf("Fetching %d packages from PyPI...", len(ch.Sections)))
			spinner.Start()
			prog := newProgress(loggerFromContext(ctx))
			results := fetchReleases(ctx, c.newPyPIClient(backend), ch.Sections, c.refresh)
			spinner.Stop()
			if spinner.Cancelled() {
				return ctx.Err()
			}
			prog.done(fmt.Sprintf("Fetched %d packages", len(results)))

			fmt.Fprintln(stdout, releaseTable(results))
			for _, w := range releaseWarnings(results, chapterDependency[chapter]) {
				printWarning("%s", w)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&chapter, "chapter", ecosystem.ChapterCMSPackages, "chapter whose packages to look up")
	return cmd
}

// fetchReleases looks up every section on PyPI, keeping section order.
func fetchReleases(ctx context.Context, client *pypi.Client, sections []*ecosystem.Section, refresh bool) []release {
	results := make([]release, len(sections))
	var wg sync.WaitGroup
	sem := make(chan struct{}, maxParallelFetches)

	for i, s := range sections {
		wg.Add(1)
		go func(idx int, name string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			info, err := client.FetchPackage(ctx, name, refresh)
			results[idx] = release{name: name, info: info, err: err}
		}(i, s.Title)
	}
	wg.Wait()
	return results
}

// releaseWarnings reports failed lookups and packages that do not require
// the required project. An empty required skips the dependency check.
func releaseWarnings(results []release, required string) []string {
	var warnings []string
	for _, r := range results {
		switch {
		case r.err != nil:
			warnings = append(warnings, fmt.Sprintf("%s: %s", r.name, errors.UserMessage(r.err)))
		case required != "" && !r.info.DependsOn(required):
			warnings = append(warnings, fmt.Sprintf("%s: does not depend on %s", r.name, required))
		}
	}
	return warnings
}

func releaseTable(results []release) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		if r.err != nil {
			rows = append(rows, []string{r.name, "-", "-", "-", "-", "-", "-"})
			continue
		}
		rows = append(rows, []string{
			r.name,
			r.info.Version,
			dash(r.info.RequiresPython),
			dash(strings.Join(r.info.Django, ", ")),
			dash(strings.Join(r.info.DjangoCMS, ", ")),
			dash(r.info.License),
			dash(r.info.Repository),
		})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Package", "Latest", "Python", "Django", "django CMS", "License", "Repository").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case results[row].err != nil:
				return StyleDim
			case col == 1:
				return StyleSuccess
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
