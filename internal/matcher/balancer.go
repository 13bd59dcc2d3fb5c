package matcher

import (
	"cmp"
	"slices"

	"github.com/simonbystrom/teammate/internal/participant"
	"github.com/simonbystrom/teammate/internal/team"
)

const (
	// DefaultMaxIterations bounds the balancer when no budget is given.
	DefaultMaxIterations = 5000
	// minImprovement is how much a swap must lower the variance to count.
	minImprovement = 1e-4
)

// Swap describes one exchange applied by the balancer.
type Swap struct {
	Iteration int
	TeamA     int
	TeamB     int
	// Out left TeamA for TeamB; In left TeamB for TeamA.
	Out      *participant.Participant
	In       *participant.Participant
	Variance float64
}

type BalanceOptions struct {
	// MaxIterations defaults to DefaultMaxIterations when <= 0.
	MaxIterations int
	// OnSwap, if set, is called after each applied swap.
	OnSwap func(Swap)
}

type BalanceStats struct {
	Iterations      int
	Swaps           int
	InitialVariance float64
	FinalVariance   float64
	// Variances holds the initial variance followed by the variance after
	// each applied swap.
	Variances []float64
	// Exhausted is set when the iteration budget ran out while swaps were
	// still being found. The partition is still usable.
	Exhausted bool
}

// Balance repeatedly applies the first legal pairwise swap that lowers the
// variance of team average skill, restarting the scan after every swap,
// until no such swap exists or the budget is spent. Teams are returned
// sorted by ID.
func Balance(teams []*team.Team, opts BalanceOptions) ([]*team.Team, BalanceStats) {
	budget := opts.MaxIterations
	if budget <= 0 {
		budget = DefaultMaxIterations
	}

	var stats BalanceStats
	avgs := averages(teams)
	stats.InitialVariance = variance(avgs)
	stats.FinalVariance = stats.InitialVariance
	stats.Variances = []float64{stats.InitialVariance}

	if len(teams) >= 2 {
		improved := true
		for improved && budget > 0 {
			budget--
			stats.Iterations++
			improved = false

			current := variance(avgs)
			if s, ok := findSwap(teams, avgs, current); ok {
				a, b := teams[s.a], teams[s.b]
				a.Replace(s.out, s.in)
				b.Replace(s.in, s.out)
				avgs[s.a] = a.AverageSkill()
				avgs[s.b] = b.AverageSkill()

				improved = true
				stats.Swaps++
				stats.FinalVariance = s.variance
				stats.Variances = append(stats.Variances, s.variance)
				if opts.OnSwap != nil {
					opts.OnSwap(Swap{
						Iteration: stats.Iterations,
						TeamA:     a.ID,
						TeamB:     b.ID,
						Out:       s.out,
						In:        s.in,
						Variance:  s.variance,
					})
				}
			}
		}
		stats.Exhausted = improved && budget == 0
	}

	slices.SortFunc(teams, func(x, y *team.Team) int {
		return cmp.Compare(x.ID, y.ID)
	})
	return teams, stats
}

type candidate struct {
	a, b     int
	out, in  *participant.Participant
	variance float64
}

// findSwap scans team pairs in order and returns the first legal swap
// that improves on current by more than minImprovement.
func findSwap(teams []*team.Team, avgs []float64, current float64) (candidate, bool) {
	trial := slices.Clone(avgs)
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			ti, tj := teams[i], teams[j]
			for _, p1 := range ti.Members() {
				for _, p2 := range tj.Members() {
					if !legalSwap(ti, tj, p1, p2) {
						continue
					}

					trial[i] = averageAfterSwap(ti, p1, p2)
					trial[j] = averageAfterSwap(tj, p2, p1)
					v := variance(trial)
					trial[i], trial[j] = avgs[i], avgs[j]

					if v < current-minImprovement {
						return candidate{a: i, b: j, out: p1, in: p2, variance: v}, true
					}
				}
			}
		}
	}
	return candidate{}, false
}

// legalSwap checks moving p1 out of a and p2 out of b into each other's
// team against the personality, activity and role constraints.
func legalSwap(a, b *team.Team, p1, p2 *participant.Participant) bool {
	if p1.Personality() != p2.Personality() {
		if !personalitySafe(a, p1, p2) || !personalitySafe(b, p2, p1) {
			return false
		}
	}
	if !activitySafe(a, p1, p2) || !activitySafe(b, p2, p1) {
		return false
	}
	return roleSafe(a, p1, p2) && roleSafe(b, p2, p1)
}

// personalitySafe reports whether t keeps at least one Leader and one
// Thinker after losing remove and gaining add.
func personalitySafe(t *team.Team, remove, add *participant.Participant) bool {
	for _, kind := range []participant.Personality{participant.PersonalityLeader, participant.PersonalityThinker} {
		n := t.PersonalityCount(kind)
		if remove.Personality() == kind {
			n--
		}
		if add.Personality() == kind {
			n++
		}
		if n <= 0 {
			return false
		}
	}
	return true
}

func activitySafe(t *team.Team, remove, add *participant.Participant) bool {
	n := 0
	for _, m := range t.Members() {
		if m != remove && m.Activity == add.Activity {
			n++
		}
	}
	return n+1 <= MaxSameActivity
}

func roleSafe(t *team.Team, remove, add *participant.Participant) bool {
	roles := map[participant.Role]struct{}{add.Role: {}}
	for _, m := range t.Members() {
		if m != remove {
			roles[m.Role] = struct{}{}
		}
	}
	return len(roles) >= MinDistinctRoles
}

func averageAfterSwap(t *team.Team, remove, add *participant.Participant) float64 {
	sum := t.SkillSum() - remove.Skill + add.Skill
	return float64(sum) / float64(t.Size())
}

func averages(teams []*team.Team) []float64 {
	out := make([]float64, len(teams))
	for i, t := range teams {
		out[i] = t.AverageSkill()
	}
	return out
}

// variance is the population variance of values (divides by len, not len-1).
func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return sumSq / float64(len(values))
}
