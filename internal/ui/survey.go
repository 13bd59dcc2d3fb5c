package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/simonbystrom/teammate/internal/orchestrator"
	"github.com/simonbystrom/teammate/internal/participant"
)

type surveyStep int

const (
	stepName surveyStep = iota
	stepEmail
	stepActivity
	stepSkill
	stepRole
	stepQuestions
	stepConfirm
)

// choiceItem implements list.DefaultItem for the activity and role pickers.
type choiceItem string

func (c choiceItem) Title() string       { return string(c) }
func (c choiceItem) Description() string { return "" }
func (c choiceItem) FilterValue() string { return string(c) }

type surveyModel struct {
	orch   *orchestrator.Orchestrator
	step   surveyStep
	err    string
	width  int
	styles Styles

	input      textinput.Model
	activities list.Model
	roles      list.Model

	name     string
	email    string
	activity participant.Activity
	skill    int
	role     participant.Role
	answers  []int
}

type surveyDoneMsg struct {
	participant *participant.Participant
}
type surveyCancelMsg struct{}

func newChoiceList(s Styles, items []list.Item, width int) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetHeight(1)
	delegate.SetSpacing(0)
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(s.WizardActive.GetForeground()).
		Foreground(s.WizardActive.GetForeground()).
		Padding(0, 0, 0, 1)
	delegate.Styles.NormalTitle = lipgloss.NewStyle().Padding(0, 0, 0, 2)
	delegate.Styles.DimmedTitle = lipgloss.NewStyle().
		Foreground(s.WizardDim.GetForeground()).
		Padding(0, 0, 0, 2)

	l := list.New(items, delegate, max(width-8, 20), len(items)+2)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	return l
}

func newSurvey(s Styles, orch *orchestrator.Orchestrator, width int) surveyModel {
	in := textinput.New()
	in.Placeholder = "full name"
	in.Focus()

	activities := make([]list.Item, len(participant.Activities))
	for i, a := range participant.Activities {
		activities[i] = choiceItem(a)
	}
	roles := make([]list.Item, len(participant.Roles))
	for i, r := range participant.Roles {
		roles[i] = choiceItem(r)
	}

	return surveyModel{
		orch:       orch,
		step:       stepName,
		styles:     s,
		width:      width,
		input:      in,
		activities: newChoiceList(s, activities, width),
		roles:      newChoiceList(s, roles, width),
	}
}

func (m surveyModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *surveyModel) resetInput(placeholder string) {
	m.input.SetValue("")
	m.input.Placeholder = placeholder
	m.input.Focus()
}

func (m surveyModel) Update(msg tea.Msg) (surveyModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.step == stepName || m.step == stepEmail || m.step == stepSkill {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	m.err = ""
	if keyMsg.String() == "esc" {
		return m, func() tea.Msg { return surveyCancelMsg{} }
	}

	switch m.step {
	case stepName:
		return m.updateName(keyMsg)
	case stepEmail:
		return m.updateEmail(keyMsg)
	case stepActivity:
		return m.updateActivity(keyMsg)
	case stepSkill:
		return m.updateSkill(keyMsg)
	case stepRole:
		return m.updateRole(keyMsg)
	case stepQuestions:
		return m.updateQuestions(keyMsg)
	case stepConfirm:
		return m.updateConfirm(keyMsg)
	}
	return m, nil
}

func (m surveyModel) updateName(msg tea.KeyMsg) (surveyModel, tea.Cmd) {
	if msg.String() != "enter" {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	name := strings.TrimSpace(m.input.Value())
	if name == "" {
		m.err = "name is required"
		return m, nil
	}
	m.name = name
	m.step = stepEmail
	m.resetInput("name@example.com")
	return m, nil
}

func (m surveyModel) updateEmail(msg tea.KeyMsg) (surveyModel, tea.Cmd) {
	if msg.String() != "enter" {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	email := strings.TrimSpace(m.input.Value())
	if err := participant.ValidateEmail(email); err != nil {
		m.err = err.Error()
		return m, nil
	}
	m.email = email
	m.step = stepActivity
	m.input.Blur()
	return m, nil
}

func (m surveyModel) updateActivity(msg tea.KeyMsg) (surveyModel, tea.Cmd) {
	if msg.String() != "enter" {
		var cmd tea.Cmd
		m.activities, cmd = m.activities.Update(msg)
		return m, cmd
	}
	item, ok := m.activities.SelectedItem().(choiceItem)
	if !ok {
		return m, nil
	}
	m.activity, _ = participant.ParseActivity(string(item))
	m.step = stepSkill
	m.resetInput(fmt.Sprintf("%d-%d", participant.MinSkill, participant.MaxSkill))
	return m, nil
}

func (m surveyModel) updateSkill(msg tea.KeyMsg) (surveyModel, tea.Cmd) {
	if msg.String() != "enter" {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	skill, err := strconv.Atoi(strings.TrimSpace(m.input.Value()))
	if err != nil {
		m.err = "skill must be a number"
		return m, nil
	}
	if err := participant.ValidateSkill(skill); err != nil {
		m.err = err.Error()
		return m, nil
	}
	m.skill = skill
	m.step = stepRole
	m.input.Blur()
	return m, nil
}

func (m surveyModel) updateRole(msg tea.KeyMsg) (surveyModel, tea.Cmd) {
	if msg.String() != "enter" {
		var cmd tea.Cmd
		m.roles, cmd = m.roles.Update(msg)
		return m, cmd
	}
	item, ok := m.roles.SelectedItem().(choiceItem)
	if !ok {
		return m, nil
	}
	m.role, _ = participant.ParseRole(string(item))
	m.step = stepQuestions
	m.answers = m.answers[:0]
	return m, nil
}

// updateQuestions takes one 1-5 key press per question.
func (m surveyModel) updateQuestions(msg tea.KeyMsg) (surveyModel, tea.Cmd) {
	if msg.String() == "backspace" && len(m.answers) > 0 {
		m.answers = m.answers[:len(m.answers)-1]
		return m, nil
	}
	answer, err := strconv.Atoi(msg.String())
	if err != nil || answer < participant.MinAnswer || answer > participant.MaxAnswer {
		m.err = fmt.Sprintf("answer with %d-%d", participant.MinAnswer, participant.MaxAnswer)
		return m, nil
	}
	m.answers = append(m.answers, answer)
	if len(m.answers) == len(participant.SurveyQuestions) {
		m.step = stepConfirm
	}
	return m, nil
}

func (m surveyModel) score() int {
	score, _ := participant.ScoreSurvey(m.answers)
	return score
}

func (m surveyModel) updateConfirm(msg tea.KeyMsg) (surveyModel, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		score, err := participant.ScoreSurvey(m.answers)
		if err != nil {
			m.err = err.Error()
			return m, nil
		}
		p := participant.New("", m.name, m.email, m.activity, m.skill, m.role, score)
		if err := m.orch.AddParticipant(p); err != nil {
			m.err = err.Error()
			return m, nil
		}
		return m, func() tea.Msg { return surveyDoneMsg{participant: p} }
	case "n":
		m.step = stepQuestions
		m.answers = m.answers[:0]
		return m, nil
	}
	return m, nil
}

func (m surveyModel) ViewContent() string {
	var b strings.Builder

	b.WriteString(m.styles.WizardTitle.Render("Personality Survey"))
	b.WriteString("\n\n")

	prompt := func(done, active string) {
		if done != "" {
			b.WriteString(m.styles.WizardDim.Render(done))
			b.WriteString("\n")
		}
		b.WriteString(m.styles.WizardActive.Render(active))
		b.WriteString("\n\n")
	}

	switch m.step {
	case stepName:
		prompt("", "Participant name")
		b.WriteString("  " + m.input.View())
		b.WriteString("\n\n")
		b.WriteString(m.styles.Help.Render("  enter: continue │ esc: cancel"))

	case stepEmail:
		prompt("Name: "+m.name, "Email address")
		b.WriteString("  " + m.input.View())
		b.WriteString("\n\n")
		b.WriteString(m.styles.Help.Render("  enter: continue │ esc: cancel"))

	case stepActivity:
		prompt("Email: "+m.email, "Preferred game or sport")
		b.WriteString(m.activities.View())
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("  ↑/↓: move │ enter: select │ esc: cancel"))

	case stepSkill:
		prompt("Activity: "+string(m.activity), fmt.Sprintf("Skill level (%d-%d)", participant.MinSkill, participant.MaxSkill))
		b.WriteString("  " + m.input.View())
		b.WriteString("\n\n")
		b.WriteString(m.styles.Help.Render("  enter: continue │ esc: cancel"))

	case stepRole:
		prompt(fmt.Sprintf("Skill: %d", m.skill), "Preferred role")
		b.WriteString(m.roles.View())
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("  ↑/↓: move │ enter: select │ esc: cancel"))

	case stepQuestions:
		prompt("Role: "+string(m.role), "Rate each statement from 1 (disagree) to 5 (agree)")
		for i, q := range participant.SurveyQuestions {
			switch {
			case i < len(m.answers):
				b.WriteString(m.styles.WizardDim.Render(fmt.Sprintf("  %d. %s  %d", i+1, q, m.answers[i])))
			case i == len(m.answers):
				b.WriteString(m.styles.WizardActive.Render(fmt.Sprintf("> %d. %s", i+1, q)))
			default:
				b.WriteString(fmt.Sprintf("  %d. %s", i+1, q))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("  1-5: answer │ backspace: undo │ esc: cancel"))

	case stepConfirm:
		score := m.score()
		personality := participant.PersonalityFromScore(score)
		b.WriteString(m.styles.WizardActive.Render("Confirm"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("  Name:        %s\n", m.name))
		b.WriteString(fmt.Sprintf("  Email:       %s\n", m.email))
		b.WriteString(fmt.Sprintf("  Activity:    %s\n", m.activity))
		b.WriteString(fmt.Sprintf("  Skill:       %d\n", m.skill))
		b.WriteString(fmt.Sprintf("  Role:        %s\n", m.role))
		b.WriteString(fmt.Sprintf("  Personality: %s (score %d)\n",
			m.styles.Personality(personality).Render(string(personality)), score))
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("  y/enter: save │ n: redo answers │ esc: cancel"))
	}

	if m.err != "" {
		b.WriteString("\n\n")
		b.WriteString(m.styles.Error.Render("  Error: " + m.err))
	}

	return b.String()
}

func (m surveyModel) View() string {
	return m.styles.Border.Render(m.ViewContent())
}
