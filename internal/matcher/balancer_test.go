package matcher

import (
	"math"
	"slices"
	"testing"

	"github.com/simonbystrom/teammate/internal/participant"
	"github.com/simonbystrom/teammate/internal/team"
)

func TestVariance(t *testing.T) {
	tests := []struct {
		values []float64
		want   float64
	}{
		{nil, 0},
		{[]float64{5}, 0},
		{[]float64{10, 1}, 20.25},
		{[]float64{2, 4, 4, 4, 5, 5, 7, 9}, 4},
	}
	for _, tt := range tests {
		if got := variance(tt.values); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("variance(%v) = %v, want %v", tt.values, got, tt.want)
		}
	}
}

// lopsided returns two teams where every strong member sits in team 1.
// One leader swap evens them out as far as the constraints allow.
func lopsided() []*team.Team {
	strong, weak := team.New(1), team.New(2)
	strong.Add(person("P001", participant.ActivityChess, 10, participant.RoleStrategist, leaderScore))
	strong.Add(person("P002", participant.ActivityFIFA, 10, participant.RoleAttacker, thinkerScore))
	strong.Add(person("P003", participant.ActivityValorant, 10, participant.RoleDefender, balancedScore))
	weak.Add(person("P004", participant.ActivityChess, 1, participant.RoleStrategist, leaderScore))
	weak.Add(person("P005", participant.ActivityFIFA, 1, participant.RoleAttacker, thinkerScore))
	weak.Add(person("P006", participant.ActivityValorant, 1, participant.RoleDefender, balancedScore))
	return []*team.Team{strong, weak}
}

func TestBalance_Converges(t *testing.T) {
	teams, stats := Balance(lopsided(), BalanceOptions{})

	if stats.Swaps != 1 || stats.Iterations != 2 {
		t.Errorf("swaps = %d, iterations = %d, want 1 and 2", stats.Swaps, stats.Iterations)
	}
	if stats.Exhausted {
		t.Error("converged run reported as exhausted")
	}
	if stats.InitialVariance != 20.25 || stats.FinalVariance != 2.25 {
		t.Errorf("variance %v -> %v, want 20.25 -> 2.25", stats.InitialVariance, stats.FinalVariance)
	}
	if got := teamIDs(teams); !slices.Equal(got[0], []string{"P004", "P002", "P003"}) {
		t.Errorf("team 1 = %v, want the leaders exchanged in place", got[0])
	}
}

func TestBalance_BudgetExhausted(t *testing.T) {
	_, stats := Balance(lopsided(), BalanceOptions{MaxIterations: 1})

	if stats.Swaps != 1 || stats.Iterations != 1 {
		t.Errorf("swaps = %d, iterations = %d, want 1 and 1", stats.Swaps, stats.Iterations)
	}
	if !stats.Exhausted {
		t.Error("expected Exhausted with a one-iteration budget")
	}
}

func TestBalance_OnSwap(t *testing.T) {
	var steps []Swap
	Balance(lopsided(), BalanceOptions{OnSwap: func(s Swap) { steps = append(steps, s) }})

	if len(steps) != 1 {
		t.Fatalf("got %d swap callbacks, want 1", len(steps))
	}
	s := steps[0]
	if s.TeamA != 1 || s.TeamB != 2 || s.Out.ID != "P001" || s.In.ID != "P004" {
		t.Errorf("swap = team %d %s <-> team %d %s", s.TeamA, s.Out.ID, s.TeamB, s.In.ID)
	}
	if s.Iteration != 1 || s.Variance != 2.25 {
		t.Errorf("iteration = %d, variance = %v", s.Iteration, s.Variance)
	}
}

func TestBalance_SortsByID(t *testing.T) {
	ts := lopsided()
	third := team.New(3)
	teams, _ := Balance([]*team.Team{third, ts[1], ts[0]}, BalanceOptions{})

	for i, tm := range teams {
		if tm.ID != i+1 {
			t.Fatalf("teams[%d].ID = %d, want %d", i, tm.ID, i+1)
		}
	}
}

func TestBalance_SingleTeam(t *testing.T) {
	teams, stats := Balance(lopsided()[:1], BalanceOptions{})
	if len(teams) != 1 || stats.Iterations != 0 || stats.Swaps != 0 {
		t.Errorf("single team: %d teams, %d iterations, %d swaps", len(teams), stats.Iterations, stats.Swaps)
	}
}

func TestLegalSwap(t *testing.T) {
	a, b := team.New(1), team.New(2)
	aLeader := person("P001", participant.ActivityChess, 5, participant.RoleStrategist, leaderScore)
	aThinker := person("P002", participant.ActivityFIFA, 5, participant.RoleAttacker, thinkerScore)
	aBal := person("P003", participant.ActivityFIFA, 5, participant.RoleDefender, balancedScore)
	a.Add(aLeader)
	a.Add(aThinker)
	a.Add(aBal)

	bLeader := person("P004", participant.ActivityChess, 5, participant.RoleStrategist, leaderScore)
	bThinker := person("P005", participant.ActivityFIFA, 5, participant.RoleSupporter, thinkerScore)
	bBal := person("P006", participant.ActivityFIFA, 5, participant.RoleCoordinator, balancedScore)
	bBal2 := person("P007", participant.ActivityValorant, 5, participant.RoleAttacker, balancedScore)
	b.Add(bLeader)
	b.Add(bThinker)
	b.Add(bBal)
	b.Add(bBal2)

	tests := []struct {
		name   string
		p1, p2 *participant.Participant
		want   bool
	}{
		{"same archetype", aLeader, bLeader, true},
		{"strips leader from a", aLeader, bBal2, false},
		{"strips thinker from b", aBal, bThinker, false},
		// b already holds FIFA twice without P007.
		{"activity cap", aBal, bBal2, false},
		{"balanced for balanced", aBal, bBal, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := legalSwap(a, b, tt.p1, tt.p2); got != tt.want {
				t.Errorf("legalSwap(%s, %s) = %v, want %v", tt.p1.ID, tt.p2.ID, got, tt.want)
			}
		})
	}
}

func TestRoleSafe(t *testing.T) {
	tm := team.New(1)
	def := person("P003", participant.ActivityChess, 5, participant.RoleDefender, balancedScore)
	tm.Add(person("P001", participant.ActivityChess, 5, participant.RoleStrategist, leaderScore))
	tm.Add(person("P002", participant.ActivityFIFA, 5, participant.RoleAttacker, thinkerScore))
	tm.Add(def)

	dupe := person("P009", participant.ActivityFIFA, 5, participant.RoleAttacker, balancedScore)
	fresh := person("P010", participant.ActivityFIFA, 5, participant.RoleSupporter, balancedScore)
	if roleSafe(tm, def, dupe) {
		t.Error("swapping Defender for a second Attacker should leave two roles")
	}
	if !roleSafe(tm, def, fresh) {
		t.Error("swapping Defender for Supporter keeps three roles")
	}
}
