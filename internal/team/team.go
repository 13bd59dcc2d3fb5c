package team

import (
	"fmt"
	"strings"

	"github.com/simonbystrom/teammate/internal/participant"
)

// Team is a bounded group of participant references. It does not own the
// participants; they belong to the run's pool.
type Team struct {
	ID      int
	members []*participant.Participant
}

func New(id int) *Team {
	return &Team{ID: id}
}

// Members returns a copy of the current membership in insertion order.
func (t *Team) Members() []*participant.Participant {
	out := make([]*participant.Participant, len(t.members))
	copy(out, t.members)
	return out
}

func (t *Team) Size() int {
	return len(t.members)
}

func (t *Team) Add(p *participant.Participant) {
	t.members = append(t.members, p)
}

// Replace substitutes in for out at the same position and reports whether
// out was a member.
func (t *Team) Replace(out, in *participant.Participant) bool {
	for i, m := range t.members {
		if m == out {
			t.members[i] = in
			return true
		}
	}
	return false
}

func (t *Team) Contains(p *participant.Participant) bool {
	for _, m := range t.members {
		if m == p {
			return true
		}
	}
	return false
}

// ActivityCount returns how many members prefer a.
func (t *Team) ActivityCount(a participant.Activity) int {
	n := 0
	for _, m := range t.members {
		if m.Activity == a {
			n++
		}
	}
	return n
}

// DistinctRoleCount returns the number of different roles on the team.
func (t *Team) DistinctRoleCount() int {
	seen := make(map[participant.Role]struct{}, len(participant.Roles))
	for _, m := range t.members {
		seen[m.Role] = struct{}{}
	}
	return len(seen)
}

// ContributesNewRole reports whether no current member has role r.
func (t *Team) ContributesNewRole(r participant.Role) bool {
	for _, m := range t.members {
		if m.Role == r {
			return false
		}
	}
	return true
}

func (t *Team) PersonalityCount(p participant.Personality) int {
	n := 0
	for _, m := range t.members {
		if m.Personality() == p {
			n++
		}
	}
	return n
}

func (t *Team) SkillSum() int {
	sum := 0
	for _, m := range t.members {
		sum += m.Skill
	}
	return sum
}

// AverageSkill is the mean member skill, or 0 for an empty team.
func (t *Team) AverageSkill() float64 {
	if len(t.members) == 0 {
		return 0
	}
	return float64(t.SkillSum()) / float64(len(t.members))
}

func (t *Team) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== TEAM %d (Avg: %.2f | Roles: %d) ===", t.ID, t.AverageSkill(), t.DistinctRoleCount())
	for _, m := range t.members {
		b.WriteString("\n  -> ")
		b.WriteString(m.Details())
	}
	return b.String()
}
