package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/simonbystrom/teammate/internal/matcher"
	"github.com/simonbystrom/teammate/internal/orchestrator"
	"github.com/simonbystrom/teammate/internal/participant"
)

type formationStep int

const (
	stepTeamSize formationStep = iota
	stepRunning
	stepResults
)

const resultsHeight = 20

type formationModel struct {
	orch   *orchestrator.Orchestrator
	store  *participant.Store
	step   formationStep
	err    string
	width  int
	styles Styles

	sizeInput textinput.Model
	spinner   spinner.Model
	results   viewport.Model

	size      int
	swaps     int
	variance  float64
	formation *orchestrator.Formation
}

type formationCloseMsg struct{}

func newFormation(s Styles, orch *orchestrator.Orchestrator, store *participant.Store, defaultSize, width int) formationModel {
	in := textinput.New()
	in.Placeholder = "team size"
	in.CharLimit = 4
	if defaultSize > 0 {
		in.SetValue(strconv.Itoa(defaultSize))
	}
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.WizardActive

	return formationModel{
		orch:      orch,
		store:     store,
		step:      stepTeamSize,
		styles:    s,
		width:     width,
		sizeInput: in,
		spinner:   sp,
		results:   viewport.New(max(width-8, 40), resultsHeight),
	}
}

func (m formationModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m formationModel) Update(msg tea.Msg) (formationModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.step != stepRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case orchestrator.FormationProgressMsg:
		m.swaps = msg.Iteration
		m.variance = msg.Variance
		return m, nil

	case orchestrator.FormationDoneMsg:
		if msg.Err != nil {
			m.step = stepTeamSize
			m.err = msg.Err.Error()
			m.sizeInput.Focus()
			return m, nil
		}
		m.step = stepResults
		m.formation = msg.Formation
		if msg.Formation.SaveErr != nil {
			m.err = "teams formed but not saved: " + msg.Formation.SaveErr.Error()
		}
		m.results.SetContent(m.renderTeams())
		m.results.GotoTop()
		return m, nil

	case tea.KeyMsg:
		switch m.step {
		case stepTeamSize:
			return m.updateTeamSize(msg)
		case stepResults:
			return m.updateResults(msg)
		}
		return m, nil
	}

	if m.step == stepTeamSize {
		var cmd tea.Cmd
		m.sizeInput, cmd = m.sizeInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m formationModel) updateTeamSize(msg tea.KeyMsg) (formationModel, tea.Cmd) {
	m.err = ""
	switch msg.String() {
	case "esc":
		return m, func() tea.Msg { return formationCloseMsg{} }
	case "enter":
		size, err := strconv.Atoi(strings.TrimSpace(m.sizeInput.Value()))
		if err != nil {
			m.err = "team size must be a number"
			return m, nil
		}
		if err := orchestrator.Validate(m.store.Len(), size); err != nil {
			m.err = err.Error()
			return m, nil
		}
		m.size = size
		m.swaps = 0
		m.variance = 0
		m.step = stepRunning
		m.sizeInput.Blur()
		return m, tea.Batch(m.spinner.Tick, m.orch.FormTeamsCmd(size))
	}
	var cmd tea.Cmd
	m.sizeInput, cmd = m.sizeInput.Update(msg)
	return m, cmd
}

func (m formationModel) updateResults(msg tea.KeyMsg) (formationModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		return m, func() tea.Msg { return formationCloseMsg{} }
	case "r":
		m.step = stepTeamSize
		m.formation = nil
		m.err = ""
		m.sizeInput.Focus()
		return m, textinput.Blink
	}
	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m formationModel) renderTeams() string {
	var b strings.Builder
	for i, t := range m.formation.Teams {
		if i > 0 {
			b.WriteString("\n\n")
		}
		lines := strings.SplitN(t.String(), "\n", 2)
		b.WriteString(m.styles.Team.Render(lines[0]))
		if len(lines) > 1 {
			b.WriteString("\n")
			b.WriteString(lines[1])
		}
	}
	return b.String()
}

func (m formationModel) ViewContent() string {
	var b strings.Builder

	b.WriteString(m.styles.WizardTitle.Render("Form Teams"))
	b.WriteString("\n\n")

	switch m.step {
	case stepTeamSize:
		b.WriteString(m.styles.WizardDim.Render(fmt.Sprintf("%d participants in the pool", m.store.Len())))
		b.WriteString("\n")
		b.WriteString(m.styles.WizardActive.Render(fmt.Sprintf("Team size (at least %d, must divide the pool)", matcher.MinTeamSize)))
		b.WriteString("\n\n")
		b.WriteString("  " + m.sizeInput.View())
		b.WriteString("\n\n")
		b.WriteString(m.styles.Help.Render("  enter: form │ esc: cancel"))

	case stepRunning:
		b.WriteString(fmt.Sprintf("  %s Forming teams of %d...\n\n", m.spinner.View(), m.size))
		b.WriteString(m.styles.WizardDim.Render(fmt.Sprintf("  swaps: %d   variance: %.4f", m.swaps, m.variance)))

	case stepResults:
		f := m.formation
		b.WriteString(m.styles.WizardDim.Render(fmt.Sprintf("Run %s  seed %d", f.RunID, f.Seed)))
		b.WriteString("\n")
		summary := fmt.Sprintf("%d teams │ variance %.4f -> %.4f │ %d swaps", len(f.Teams),
			f.Stats.InitialVariance, f.Stats.FinalVariance, f.Stats.Swaps)
		if f.Stats.Exhausted {
			summary += " │ stopped at iteration limit"
		}
		b.WriteString(m.styles.WizardActive.Render(summary))
		b.WriteString("\n")
		if out, report := m.orch.OutputPaths(); f.SaveErr == nil && (out != "" || report != "") {
			b.WriteString(m.styles.WizardDim.Render(fmt.Sprintf("Saved %s %s", out, report)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.results.View())
		b.WriteString("\n\n")
		b.WriteString(m.styles.Help.Render("  ↑/↓: scroll │ r: run again │ esc/enter: close"))
	}

	if m.err != "" {
		b.WriteString("\n\n")
		b.WriteString(m.styles.Error.Render("  Error: " + m.err))
	}

	return b.String()
}

func (m formationModel) View() string {
	return m.styles.Border.Render(m.ViewContent())
}
