package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/simonbystrom/teammate/internal/config"
	"github.com/simonbystrom/teammate/internal/orchestrator"
	"github.com/simonbystrom/teammate/internal/participant"
)

type view int

const (
	viewDashboard view = iota
	viewSurvey
	viewFormation
	viewRemove
)

type AppModel struct {
	orch       *orchestrator.Orchestrator
	store      *participant.Store
	styles     Styles
	teamSize   int
	activeView view

	dashboard dashboardModel
	survey    surveyModel
	formation formationModel
	remove    removeModel

	width  int
	height int
}

func NewApp(cfg config.Config, orch *orchestrator.Orchestrator, store *participant.Store) AppModel {
	s := NewStyles(cfg.Colors)
	return AppModel{
		orch:       orch,
		store:      store,
		styles:     s,
		teamSize:   cfg.Formation.TeamSize,
		activeView: viewDashboard,
		dashboard:  newDashboard(s, orch, store),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.dashboard.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.dashboard.width = msg.Width
		m.dashboard.height = msg.Height
		m.survey.width = msg.Width
		m.formation.width = msg.Width
		return m, nil

	case orchestrator.ParticipantsLoadedMsg:
		m.dashboard, _ = m.dashboard.Update(msg)
		return m, nil

	case orchestrator.FormationProgressMsg, spinner.TickMsg:
		var cmd tea.Cmd
		m.formation, cmd = m.formation.Update(msg)
		return m, cmd

	case orchestrator.FormationDoneMsg:
		// Always notify the dashboard; the panel may already be closed.
		m.dashboard, _ = m.dashboard.Update(msg)
		if m.activeView == viewFormation {
			var cmd tea.Cmd
			m.formation, cmd = m.formation.Update(msg)
			return m, cmd
		}
		return m, nil

	case surveyDoneMsg:
		m.dashboard, _ = m.dashboard.Update(msg)
		m.activeView = viewDashboard
		return m, nil

	case surveyCancelMsg:
		m.activeView = viewDashboard
		return m, nil

	case formationCloseMsg:
		m.activeView = viewDashboard
		return m, nil

	case startRemoveMsg:
		m.activeView = viewRemove
		m.remove = newRemove(m.styles, m.orch, msg)
		return m, nil

	case removeDoneMsg:
		m.dashboard, _ = m.dashboard.Update(msg)
		m.activeView = viewDashboard
		return m, nil

	case removeCancelMsg:
		m.activeView = viewDashboard
		return m, nil
	}

	switch m.activeView {
	case viewDashboard:
		return m.updateDashboard(msg)
	case viewSurvey:
		return m.updateSurvey(msg)
	case viewFormation:
		return m.updateFormation(msg)
	case viewRemove:
		return m.updateRemove(msg)
	}

	return m, nil
}

func (m AppModel) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "n":
			m.activeView = viewSurvey
			m.survey = newSurvey(m.styles, m.orch, m.width)
			return m, m.survey.Init()
		case "f":
			m.activeView = viewFormation
			m.formation = newFormation(m.styles, m.orch, m.store, m.teamSize, m.width)
			return m, m.formation.Init()
		}
	}

	var cmd tea.Cmd
	m.dashboard, cmd = m.dashboard.Update(msg)
	return m, cmd
}

func (m AppModel) updateSurvey(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.survey, cmd = m.survey.Update(msg)
	return m, cmd
}

func (m AppModel) updateFormation(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.formation, cmd = m.formation.Update(msg)
	return m, cmd
}

func (m AppModel) updateRemove(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.remove, cmd = m.remove.Update(msg)
	return m, cmd
}

func (m AppModel) View() string {
	switch m.activeView {
	case viewSurvey:
		return m.viewSideBySide(m.survey.ViewContent())
	case viewFormation:
		return m.viewSideBySide(m.formation.ViewContent())
	case viewRemove:
		return m.viewSideBySide(m.remove.ViewContent())
	default:
		return m.dashboard.View()
	}
}

func (m AppModel) viewSideBySide(rightPanel string) string {
	maxWidth := m.width - 4
	if maxWidth < 40 {
		maxWidth = 80
	}

	// 50/50 split, minus 1 for the separator
	dashWidth := maxWidth / 2
	panelWidth := maxWidth - dashWidth - 1

	dashContent := lipgloss.NewStyle().Width(dashWidth).Render(m.dashboard.ViewContent())
	panelContent := lipgloss.NewStyle().Width(panelWidth).Render(rightPanel)

	sepHeight := max(lipgloss.Height(dashContent), lipgloss.Height(panelContent))
	sep := m.styles.Separator.Render(strings.TrimSuffix(strings.Repeat("│\n", sepHeight), "\n"))

	joined := lipgloss.JoinHorizontal(lipgloss.Top, dashContent, sep, panelContent)

	return m.styles.Border.Width(maxWidth).Render(joined)
}
