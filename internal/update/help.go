package update

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/trackd/internal/views"
)

type helpKeyMap struct{}

func (helpKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "board")),
		key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "timeline")),
		key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "priority")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "command")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (k helpKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	bindings := []string{}
	switch m.CurrentView {
	case ViewBoard:
		bindings = []string{
			"[j/k] task",
			"[h/l] project",
			"[c] close task",
			"[b] cycle bonus",
			"[x] delete task",
		}
	case ViewTimeline:
		bindings = []string{
			"[j/k] project",
		}
	case ViewPriority:
		bindings = []string{
			"[j/k] row",
		}
	}
	return "\n" + views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    bindings,
		HelpView:    m.helpModel.View(helpKeyMap{}),
	})
}
