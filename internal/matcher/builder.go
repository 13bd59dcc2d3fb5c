package matcher

import (
	"cmp"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/simonbystrom/teammate/internal/participant"
	"github.com/simonbystrom/teammate/internal/team"
)

const (
	// MinTeamSize is the smallest team the builder accepts.
	MinTeamSize = 3
	// MaxSameActivity caps how many members of a team may share an activity.
	MaxSameActivity = 2
	// MinDistinctRoles is the role spread each team should reach.
	MinDistinctRoles = 3
)

// Build shuffles a copy of pool and draws an initial partition into
// len(pool)/size teams. It returns nil when size < MinTeamSize or the pool
// does not divide evenly; callers are expected to have checked that with
// Validate.
func Build(pool []*participant.Participant, size int, rng *rand.Rand) []*team.Team {
	if size < MinTeamSize || len(pool)%size != 0 {
		return nil
	}

	work := slices.Clone(pool)
	rng.Shuffle(len(work), func(i, j int) {
		work[i], work[j] = work[j], work[i]
	})

	var leaders, thinkers, balanced []*participant.Participant
	for _, p := range work {
		switch p.Personality() {
		case participant.PersonalityLeader:
			leaders = append(leaders, p)
		case participant.PersonalityThinker:
			thinkers = append(thinkers, p)
		default:
			balanced = append(balanced, p)
		}
	}
	sortBySkill(leaders)
	sortBySkill(thinkers)
	sortBySkill(balanced)

	teams := make([]*team.Team, len(work)/size)
	for i := range teams {
		teams[i] = team.New(i + 1)
	}

	leaders = distributeNucleus(teams, leaders, true)
	thinkers = distributeNucleus(teams, thinkers, false)
	balanced = distributeNucleus(teams, balanced, true)

	leftovers := make([]*participant.Participant, 0, len(leaders)+len(thinkers)+len(balanced))
	leftovers = append(leftovers, leaders...)
	leftovers = append(leftovers, thinkers...)
	leftovers = append(leftovers, balanced...)
	sortBySkill(leftovers)

	fillLeftovers(teams, leftovers, size)
	return teams
}

// sortBySkill orders by skill descending; ties keep their shuffled order.
func sortBySkill(ps []*participant.Participant) {
	slices.SortStableFunc(ps, func(a, b *participant.Participant) int {
		return cmp.Compare(b.Skill, a.Skill)
	})
}

// sweep returns team indices in the requested direction.
func sweep(n int, forward bool) []int {
	idx := make([]int, n)
	for i := range idx {
		if forward {
			idx[i] = i
		} else {
			idx[i] = n - 1 - i
		}
	}
	return idx
}

func activityOK(t *team.Team, p *participant.Participant) bool {
	return t.ActivityCount(p.Activity) < MaxSameActivity
}

// distributeNucleus gives each team at most one candidate from bucket,
// preferring someone who adds a new role, and returns what is left.
func distributeNucleus(teams []*team.Team, bucket []*participant.Participant, forward bool) []*participant.Participant {
	for _, i := range sweep(len(teams), forward) {
		t := teams[i]
		pick := slices.IndexFunc(bucket, func(p *participant.Participant) bool {
			return activityOK(t, p) && t.ContributesNewRole(p.Role)
		})
		if pick < 0 {
			pick = slices.IndexFunc(bucket, func(p *participant.Participant) bool {
				return activityOK(t, p)
			})
		}
		if pick < 0 {
			continue
		}
		t.Add(bucket[pick])
		bucket = slices.Delete(bucket, pick, pick+1)
	}
	return bucket
}

// fillLeftovers snakes across the teams until every seat is taken or no
// sweep places anyone. The first sweep runs backward, continuing the snake
// from the forward Balanced pass.
func fillLeftovers(teams []*team.Team, leftovers []*participant.Participant, size int) {
	forward := false
	for len(leftovers) > 0 {
		assigned := false
		for _, i := range sweep(len(teams), forward) {
			t := teams[i]
			if t.Size() >= size || len(leftovers) == 0 {
				continue
			}
			pick := bestFit(t, leftovers, size)
			if pick < 0 {
				continue
			}
			t.Add(leftovers[pick])
			leftovers = slices.Delete(leftovers, pick, pick+1)
			assigned = true
		}
		if !assigned {
			return
		}
		forward = !forward
	}
}

// bestFit picks the index of the leftover that suits t best, or -1 when
// there are no leftovers.
//
// Order of preference: a new role within the activity cap; then anyone
// within the activity cap; then the first leftover regardless. A team with
// a critical role need (more roles missing than open seats) would hold out
// for a new role, but once none is available it takes the same
// activity-capped fallback as everyone else.
func bestFit(t *team.Team, leftovers []*participant.Participant, size int) int {
	if len(leftovers) == 0 {
		return -1
	}
	if i := slices.IndexFunc(leftovers, func(p *participant.Participant) bool {
		return activityOK(t, p) && t.ContributesNewRole(p.Role)
	}); i >= 0 {
		return i
	}

	if criticalRoleNeed(t, size) {
		slog.Debug("no leftover adds a needed role", "team", t.ID, "roles", t.DistinctRoleCount(), "open", size-t.Size())
	}
	if i := slices.IndexFunc(leftovers, func(p *participant.Participant) bool {
		return activityOK(t, p)
	}); i >= 0 {
		return i
	}
	return 0
}

func criticalRoleNeed(t *team.Team, size int) bool {
	needed := MinDistinctRoles - t.DistinctRoleCount()
	return needed > size-t.Size()
}
