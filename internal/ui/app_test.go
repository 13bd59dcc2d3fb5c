package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/simonbystrom/teammate/internal/config"
	"github.com/simonbystrom/teammate/internal/orchestrator"
)

func newTestApp(t *testing.T) AppModel {
	t.Helper()
	orch, store, _ := newTestOrch(t)
	return NewApp(config.Default(), orch, store)
}

func TestAppModel_KeyQ_Quits(t *testing.T) {
	m := newTestApp(t)

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected a command from 'q' key")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestAppModel_KeyN_OpensSurvey(t *testing.T) {
	m := newTestApp(t)

	updated, _ := m.Update(key("n"))
	app := updated.(AppModel)

	if app.activeView != viewSurvey {
		t.Errorf("activeView = %d, want %d (viewSurvey)", app.activeView, viewSurvey)
	}
}

func TestAppModel_KeyF_OpensFormationWithDefaultSize(t *testing.T) {
	m := newTestApp(t)

	updated, _ := m.Update(key("f"))
	app := updated.(AppModel)

	if app.activeView != viewFormation {
		t.Fatalf("activeView = %d, want %d (viewFormation)", app.activeView, viewFormation)
	}
	if got := app.formation.sizeInput.Value(); got != "5" {
		t.Errorf("size input = %q, want the configured default 5", got)
	}
}

func TestAppModel_WindowSizeMsg(t *testing.T) {
	m := newTestApp(t)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app := updated.(AppModel)

	if app.width != 120 || app.height != 40 {
		t.Errorf("size = %dx%d, want 120x40", app.width, app.height)
	}
	if app.dashboard.width != 120 {
		t.Errorf("dashboard width = %d", app.dashboard.width)
	}
}

func TestAppModel_ForwardsLoadedMessage(t *testing.T) {
	m := newTestApp(t)

	updated, _ := m.Update(orchestrator.ParticipantsLoadedMsg{Count: 3})
	app := updated.(AppModel)

	if len(app.dashboard.notifications) == 0 {
		t.Error("expected notification from ParticipantsLoadedMsg")
	}
}

func TestAppModel_SurveyCancelReturns(t *testing.T) {
	m := newTestApp(t)
	m.activeView = viewSurvey

	updated, _ := m.Update(surveyCancelMsg{})
	if app := updated.(AppModel); app.activeView != viewDashboard {
		t.Errorf("activeView = %d, want %d (viewDashboard)", app.activeView, viewDashboard)
	}
}

func TestAppModel_FormationCloseReturns(t *testing.T) {
	m := newTestApp(t)
	m.activeView = viewFormation

	updated, _ := m.Update(formationCloseMsg{})
	if app := updated.(AppModel); app.activeView != viewDashboard {
		t.Errorf("activeView = %d, want %d (viewDashboard)", app.activeView, viewDashboard)
	}
}

func TestAppModel_StartRemoveOpensPanel(t *testing.T) {
	m := newTestApp(t)

	updated, _ := m.Update(startRemoveMsg{id: "P001", name: "Ada"})
	app := updated.(AppModel)
	if app.activeView != viewRemove {
		t.Fatalf("activeView = %d, want %d (viewRemove)", app.activeView, viewRemove)
	}

	updated, _ = app.Update(removeCancelMsg{})
	if app := updated.(AppModel); app.activeView != viewDashboard {
		t.Errorf("activeView = %d, want %d (viewDashboard)", app.activeView, viewDashboard)
	}
}

func TestAppModel_FormationDoneNotifiesDashboard(t *testing.T) {
	m := newTestApp(t)
	addPool(m.store, 6)
	f, err := m.orch.FormTeams(3)
	if err != nil {
		t.Fatal(err)
	}

	updated, _ := m.Update(orchestrator.FormationDoneMsg{Formation: f})
	app := updated.(AppModel)
	if len(app.dashboard.notifications) != 1 {
		t.Errorf("notifications = %d, want 1", len(app.dashboard.notifications))
	}
}

func TestAppModel_SideBySideView(t *testing.T) {
	m := newTestApp(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	updated, _ = updated.(AppModel).Update(key("f"))

	if view := updated.View(); view == "" {
		t.Error("expected a rendered view")
	}
}
