package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/cmsecosystem/pkg/ecosystem"
)

func press(m BrowseModel, keys ...string) BrowseModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(BrowseModel)
	}
	return m
}

func TestBrowseNavigation(t *testing.T) {
	m := NewBrowseModel(ecosystem.ParseString(testDocument))

	if !strings.Contains(m.View(), "Django timelines") {
		t.Error("chapter list should show chapter titles")
	}

	m = press(m, "down", "down", "enter")
	if m.Level != levelSections || m.Chapter != 2 || m.Cursor != 0 {
		t.Fatalf("after opening chapter: level=%d chapter=%d cursor=%d", m.Level, m.Chapter, m.Cursor)
	}
	if view := m.View(); !strings.Contains(view, "djangocms-snippet") || !strings.Contains(view, "(deprecated)") {
		t.Errorf("section list = %s", view)
	}

	m = press(m, "enter")
	if m.Level != levelDetail {
		t.Fatalf("level = %d, want detail", m.Level)
	}
	view := m.View()
	for _, want := range []string{"Rich text editing.", "grade", "stable"} {
		if !strings.Contains(view, want) {
			t.Errorf("detail view missing %q:\n%s", want, view)
		}
	}

	m = press(m, "esc", "esc")
	if m.Level != levelChapters || m.Cursor != 2 {
		t.Errorf("after going back: level=%d cursor=%d", m.Level, m.Cursor)
	}
}

func TestBrowseBounds(t *testing.T) {
	m := NewBrowseModel(ecosystem.ParseString(testDocument))

	m = press(m, "up", "k")
	if m.Cursor != 0 {
		t.Errorf("cursor moved above first item: %d", m.Cursor)
	}
	m = press(m, "j", "j", "j", "j", "j")
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want last chapter", m.Cursor)
	}
	m = press(m, "esc")
	if m.Level != levelChapters {
		t.Error("esc at top level should stay on chapters")
	}
}

func TestBrowseEmptyChapterDoesNotOpen(t *testing.T) {
	m := NewBrowseModel(ecosystem.ParseString("## Empty\n## Full\n### s\n"))
	m = press(m, "enter")
	if m.Level != levelChapters {
		t.Error("chapter without sections should not open")
	}
}

func TestBrowseQuit(t *testing.T) {
	m := NewBrowseModel(ecosystem.ParseString(testDocument))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestBrowseWindowSize(t *testing.T) {
	m := NewBrowseModel(ecosystem.ParseString(testDocument))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	if got := next.(BrowseModel).Height; got != 5 {
		t.Errorf("Height = %d, want minimum 5", got)
	}
}
