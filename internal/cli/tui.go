package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cmsecosystem/pkg/ecosystem"
	"github.com/matzehuels/cmsecosystem/pkg/report"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand opens the interactive document browser.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse chapters and sections interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.readDocument(cmd.Context())
			if err != nil {
				return err
			}
			if len(doc.Chapters) == 0 {
				printWarning("The document has no chapters")
				return nil
			}
			_, err = tea.NewProgram(NewBrowseModel(doc), tea.WithContext(cmd.Context()), tea.WithAltScreen()).Run()
			return err
		},
	}
}

// browseLevel is the depth of the browser: chapters, sections or a
// single section.
type browseLevel int

const (
	levelChapters browseLevel = iota
	levelSections
	levelDetail
)

// BrowseModel is the bubbletea model for the document browser.
type BrowseModel struct {
	Doc     *ecosystem.Document
	Level   browseLevel
	Chapter int
	Section int
	Cursor  int
	Offset  int
	Height  int
}

// NewBrowseModel starts at the chapter list.
func NewBrowseModel(doc *ecosystem.Document) BrowseModel {
	return BrowseModel{Doc: doc, Height: 15}
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

// items returns the number of entries at the current level.
func (m BrowseModel) items() int {
	switch m.Level {
	case levelChapters:
		return len(m.Doc.Chapters)
	case levelSections:
		return len(m.Doc.Chapters[m.Chapter].Sections)
	}
	return 0
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < m.items()-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", "right", "l":
			return m.descend(), nil
		case "esc", "backspace", "left", "h":
			return m.ascend(), nil
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m BrowseModel) descend() BrowseModel {
	switch m.Level {
	case levelChapters:
		if len(m.Doc.Chapters[m.Cursor].Sections) == 0 {
			return m
		}
		m.Chapter, m.Level = m.Cursor, levelSections
	case levelSections:
		m.Section, m.Level = m.Cursor, levelDetail
		return m
	default:
		return m
	}
	m.Cursor, m.Offset = 0, 0
	return m
}

func (m BrowseModel) ascend() BrowseModel {
	switch m.Level {
	case levelDetail:
		m.Level = levelSections
		m.Cursor = m.Section
	case levelSections:
		m.Level = levelChapters
		m.Cursor = m.Chapter
	default:
		return m
	}
	m.Offset = max(m.Cursor-m.Height+1, 0)
	return m
}

func (m BrowseModel) View() string {
	var b strings.Builder

	switch m.Level {
	case levelChapters:
		b.WriteString(StyleTitle.Render("Chapters"))
	case levelSections:
		b.WriteString(StyleTitle.Render(m.Doc.Chapters[m.Chapter].Title))
	case levelDetail:
		ch := m.Doc.Chapters[m.Chapter]
		b.WriteString(StyleTitle.Render(ch.Title + " › " + ch.Sections[m.Section].Title))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  esc back  q quit"))
	b.WriteString("\n\n")

	if m.Level == levelDetail {
		b.WriteString(m.detailView())
		return b.String()
	}

	labels := m.labels()
	end := min(m.Offset+m.Height, len(labels))
	for i := m.Offset; i < end; i++ {
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + labels[i]))
		} else {
			b.WriteString(listNormalStyle.Render("  " + labels[i]))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(labels))))
	return b.String()
}

func (m BrowseModel) labels() []string {
	var out []string
	if m.Level == levelChapters {
		for _, ch := range m.Doc.Chapters {
			out = append(out, fmt.Sprintf("%-40s %s", ch.Title, listDimStyle.Render(fmt.Sprintf("%d sections", len(ch.Sections)))))
		}
		return out
	}
	for _, s := range m.Doc.Chapters[m.Chapter].Sections {
		label := s.Title
		if s.Properties.Get(ecosystem.PropDeprecated).Truthy() {
			label += " " + StyleWarning.Render("(deprecated)")
		}
		out = append(out, label)
	}
	return out
}

func (m BrowseModel) detailView() string {
	s := m.Doc.Chapters[m.Chapter].Sections[m.Section]

	var b strings.Builder
	for _, line := range report.SplitDescription(s.Description, report.DescriptionWidth) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if s.Description != "" {
		b.WriteString("\n")
	}
	for _, key := range s.Properties.Keys() {
		b.WriteString(styleKey.Render(key) + " " + StyleValue.Render(s.Properties.Get(key).String()))
		b.WriteString("\n")
	}
	return b.String()
}
