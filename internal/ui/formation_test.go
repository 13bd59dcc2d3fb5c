package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/simonbystrom/teammate/internal/matcher"
	"github.com/simonbystrom/teammate/internal/orchestrator"
	"github.com/simonbystrom/teammate/internal/participant"
)

func newTestFormation(t *testing.T, poolSize int) (formationModel, *orchestrator.Orchestrator, *participant.Store) {
	t.Helper()
	orch, store, _ := newTestOrch(t)
	addPool(store, poolSize)
	return newFormation(testStyles(), orch, store, 3, 100), orch, store
}

func TestFormation_PrefilledSize(t *testing.T) {
	m, _, _ := newTestFormation(t, 6)
	if m.sizeInput.Value() != "3" {
		t.Errorf("size = %q, want 3", m.sizeInput.Value())
	}
}

func TestFormation_EscCloses(t *testing.T) {
	m, _, _ := newTestFormation(t, 6)

	_, cmd := m.Update(key("esc"))
	if cmd == nil {
		t.Fatal("expected command from Esc")
	}
	if _, ok := cmd().(formationCloseMsg); !ok {
		t.Error("expected formationCloseMsg")
	}
}

func TestFormation_RejectsBadSize(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"abc", "must be a number"},
		{"2", matcher.ErrTeamSizeTooSmall.Error()},
		{"4", matcher.ErrUnevenPool.Error()},
	}
	for _, tt := range tests {
		m, _, _ := newTestFormation(t, 9)
		m.sizeInput.SetValue(tt.value)
		m, cmd := m.Update(key("enter"))
		if cmd != nil || m.step != stepTeamSize {
			t.Errorf("size %q should not start a run", tt.value)
		}
		if !strings.Contains(m.err, tt.want) {
			t.Errorf("size %q: err = %q, want it to mention %q", tt.value, m.err, tt.want)
		}
	}
}

func TestFormation_RejectsEmptyPool(t *testing.T) {
	m, _, _ := newTestFormation(t, 0)

	m, cmd := m.Update(key("enter"))
	if cmd != nil || m.step != stepTeamSize {
		t.Fatal("an empty pool should not start a run")
	}
	if m.err != orchestrator.ErrNoParticipants.Error() {
		t.Errorf("err = %q", m.err)
	}
	if !strings.Contains(m.ViewContent(), "no participants loaded") {
		t.Error("error should be shown in the panel")
	}
}

func TestFormation_RunAndResults(t *testing.T) {
	m, orch, _ := newTestFormation(t, 9)

	m, cmd := m.Update(key("enter"))
	if m.step != stepRunning || cmd == nil {
		t.Fatalf("step = %d, want stepRunning with a command", m.step)
	}

	m, _ = m.Update(orchestrator.FormationProgressMsg{Iteration: 2, Variance: 0.5})
	if m.swaps != 2 || !strings.Contains(m.ViewContent(), "swaps: 2") {
		t.Errorf("progress not shown: %q", m.ViewContent())
	}

	f, err := orch.FormTeams(3)
	if err != nil {
		t.Fatal(err)
	}
	m, _ = m.Update(orchestrator.FormationDoneMsg{Formation: f})
	if m.step != stepResults {
		t.Fatalf("step = %d, want stepResults", m.step)
	}
	content := m.ViewContent()
	if !strings.Contains(content, "=== TEAM 1") {
		t.Errorf("results missing team block: %q", content)
	}
	if !strings.Contains(content, f.RunID) {
		t.Error("results should show the run id")
	}

	m, _ = m.Update(key("r"))
	if m.step != stepTeamSize {
		t.Errorf("r should return to the size prompt, step = %d", m.step)
	}
}

func TestFormation_DoneWithError(t *testing.T) {
	m, _, _ := newTestFormation(t, 9)
	m.step = stepRunning

	m, _ = m.Update(orchestrator.FormationDoneMsg{Err: errors.New("pool changed")})
	if m.step != stepTeamSize || m.err != "pool changed" {
		t.Errorf("step = %d err = %q", m.step, m.err)
	}
}
