package ui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/simonbystrom/teammate/internal/config"
	"github.com/simonbystrom/teammate/internal/orchestrator"
	"github.com/simonbystrom/teammate/internal/participant"
)

func newTestOrch(t *testing.T) (*orchestrator.Orchestrator, *participant.Store, string) {
	t.Helper()
	dir := t.TempDir()
	store := participant.NewStore()
	orch := orchestrator.New(store, filepath.Join(dir, "participants.csv"),
		orchestrator.WithOutputs(filepath.Join(dir, "teams.csv"), filepath.Join(dir, "report.yaml")),
		orchestrator.WithSeed(1))
	return orch, store, dir
}

func testStyles() Styles {
	return NewStyles(config.Default().Colors)
}

func addPool(store *participant.Store, n int) {
	scores := []int{95, 60, 80}
	activities := []participant.Activity{participant.ActivityChess, participant.ActivityFIFA, participant.ActivityValorant}
	for i := 0; i < n; i++ {
		store.Add(participant.New("", "Player", "p@example.com",
			activities[i%3], 1+i%10, participant.Roles[i%len(participant.Roles)], scores[i%3]))
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
