package dashui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func TestZZDebugDumpDetailView(t *testing.T) {
	model, _ := testModel()
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	model = updated.(Model)

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	model = updated.(Model)
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	model = updated.(Model)
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	model = updated.(Model)

	view := model.View()
	stripped := ansi.Strip(view)
	t.Logf("contains raw=%v stripped=%v",
		strings.Contains(view, "Summarize overnight alerts."),
		strings.Contains(stripped, "Summarize overnight alerts."))
	for i, line := range strings.Split(stripped, "\n") {
		t.Logf("%02d|%s|", i, line)
	}
}
