package matcher

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/simonbystrom/teammate/internal/participant"
	"github.com/simonbystrom/teammate/internal/team"
)

// Personality scores that land in each archetype band.
const (
	leaderScore   = 95
	thinkerScore  = 60
	balancedScore = 80
)

func person(id string, a participant.Activity, skill int, r participant.Role, score int) *participant.Participant {
	return participant.New(id, "name-"+id, id+"@example.com", a, skill, r, score)
}

// scenarioPool is nine participants: leaders 10/8/6, thinkers 9/7/5 and
// balanced 8/6/4, spread over three activities.
func scenarioPool() []*participant.Participant {
	return []*participant.Participant{
		person("P001", participant.ActivityChess, 10, participant.RoleStrategist, leaderScore),
		person("P002", participant.ActivityChess, 8, participant.RoleAttacker, leaderScore),
		person("P003", participant.ActivityChess, 6, participant.RoleDefender, leaderScore),
		person("P004", participant.ActivityFIFA, 9, participant.RoleSupporter, thinkerScore),
		person("P005", participant.ActivityFIFA, 7, participant.RoleCoordinator, thinkerScore),
		person("P006", participant.ActivityFIFA, 5, participant.RoleAttacker, thinkerScore),
		person("P007", participant.ActivityValorant, 8, participant.RoleCoordinator, balancedScore),
		person("P008", participant.ActivityValorant, 6, participant.RoleDefender, 40),
		person("P009", participant.ActivityValorant, 4, participant.RoleCoordinator, balancedScore),
	}
}

// randomPool builds n participants with attributes drawn from seed.
func randomPool(n int, seed uint64) []*participant.Participant {
	rng := rand.New(rand.NewPCG(seed, 1))
	pool := make([]*participant.Participant, n)
	for i := range pool {
		pool[i] = person(
			fmt.Sprintf("P%03d", i+1),
			participant.Activities[rng.IntN(len(participant.Activities))],
			participant.MinSkill+rng.IntN(participant.MaxSkill),
			participant.Roles[rng.IntN(len(participant.Roles))],
			20+rng.IntN(81),
		)
	}
	return pool
}

func teamIDs(teams []*team.Team) [][]string {
	out := make([][]string, len(teams))
	for i, t := range teams {
		for _, m := range t.Members() {
			out[i] = append(out[i], m.ID)
		}
	}
	return out
}

func assertPartition(t *testing.T, pool []*participant.Participant, teams []*team.Team, size int) {
	t.Helper()
	if want := len(pool) / size; len(teams) != want {
		t.Fatalf("got %d teams, want %d", len(teams), want)
	}
	seen := make(map[*participant.Participant]int)
	for _, tm := range teams {
		if tm.Size() != size {
			t.Errorf("team %d has %d members, want %d", tm.ID, tm.Size(), size)
		}
		for _, m := range tm.Members() {
			if prev, dup := seen[m]; dup {
				t.Errorf("%s is in team %d and team %d", m.ID, prev, tm.ID)
			}
			seen[m] = tm.ID
		}
	}
	for _, p := range pool {
		if _, ok := seen[p]; !ok {
			t.Errorf("%s was not assigned to any team", p.ID)
		}
	}
}
