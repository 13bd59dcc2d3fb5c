package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/simonbystrom/teammate/internal/orchestrator"
)

type removeModel struct {
	orch   *orchestrator.Orchestrator
	err    string
	styles Styles

	id      string
	name    string
	details string
}

type removeDoneMsg struct {
	name string
}
type removeCancelMsg struct{}

type removeErrorMsg struct {
	err string
}

type startRemoveMsg struct {
	id      string
	name    string
	details string
}

func newRemove(s Styles, orch *orchestrator.Orchestrator, msg startRemoveMsg) removeModel {
	return removeModel{
		orch:    orch,
		id:      msg.id,
		name:    msg.name,
		details: msg.details,
		styles:  s,
	}
}

func (m removeModel) Update(msg tea.Msg) (removeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.err = ""

		switch msg.String() {
		case "esc", "n":
			return m, func() tea.Msg { return removeCancelMsg{} }
		case "y", "enter":
			id, name := m.id, m.name
			return m, func() tea.Msg {
				if err := m.orch.RemoveParticipant(id); err != nil {
					return removeErrorMsg{err: err.Error()}
				}
				return removeDoneMsg{name: name}
			}
		}
	case removeErrorMsg:
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

func (m removeModel) ViewContent() string {
	var b strings.Builder

	b.WriteString(m.styles.WizardTitle.Render("Delete Participant"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  ID:          %s\n", m.id))
	b.WriteString(fmt.Sprintf("  Participant: %s\n", m.details))
	b.WriteString("\n")
	b.WriteString(m.styles.Error.Render(fmt.Sprintf("  %s will be removed from %s.", m.name, m.orch.ParticipantsPath())))
	b.WriteString("\n")

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("  y/enter: confirm | esc/n: cancel"))

	if m.err != "" {
		b.WriteString("\n\n")
		b.WriteString(m.styles.Error.Render("  Error: " + m.err))
	}

	return b.String()
}

func (m removeModel) View() string {
	return m.styles.Border.Render(m.ViewContent())
}
