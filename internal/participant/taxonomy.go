package participant

import "strings"

// Activity is the game or sport a participant prefers to play.
type Activity string

const (
	ActivityValorant   Activity = "Valorant"
	ActivityDota2      Activity = "Dota 2"
	ActivityFIFA       Activity = "FIFA"
	ActivityCSGO       Activity = "CS:GO"
	ActivityBasketball Activity = "Basketball"
	ActivityChess      Activity = "Chess"
)

// Activities lists every valid activity in display order.
var Activities = []Activity{
	ActivityValorant,
	ActivityDota2,
	ActivityFIFA,
	ActivityCSGO,
	ActivityBasketball,
	ActivityChess,
}

// ParseActivity matches s case-insensitively against the known activities
// and returns the canonical spelling ("dota 2" -> "Dota 2").
func ParseActivity(s string) (Activity, bool) {
	s = strings.TrimSpace(s)
	for _, a := range Activities {
		if strings.EqualFold(string(a), s) {
			return a, true
		}
	}
	return "", false
}

// Role is the functional position a participant prefers inside a team.
type Role string

const (
	RoleStrategist  Role = "Strategist"
	RoleAttacker    Role = "Attacker"
	RoleDefender    Role = "Defender"
	RoleSupporter   Role = "Supporter"
	RoleCoordinator Role = "Coordinator"
)

var Roles = []Role{
	RoleStrategist,
	RoleAttacker,
	RoleDefender,
	RoleSupporter,
	RoleCoordinator,
}

// ParseRole matches s case-insensitively, so both "Defender" and the
// upper-case "DEFENDER" found in older exports are accepted.
func ParseRole(s string) (Role, bool) {
	s = strings.TrimSpace(s)
	for _, r := range Roles {
		if strings.EqualFold(string(r), s) {
			return r, true
		}
	}
	return "", false
}

// Personality is the archetype derived from a personality score.
type Personality string

const (
	PersonalityLeader   Personality = "Leader"
	PersonalityThinker  Personality = "Thinker"
	PersonalityBalanced Personality = "Balanced"
)

var Personalities = []Personality{
	PersonalityLeader,
	PersonalityThinker,
	PersonalityBalanced,
}

// ParsePersonality matches s case-insensitively against the archetypes.
func ParsePersonality(s string) (Personality, bool) {
	s = strings.TrimSpace(s)
	for _, p := range Personalities {
		if strings.EqualFold(string(p), s) {
			return p, true
		}
	}
	return "", false
}

// PersonalityFromScore classifies a score. Balanced covers both the
// 70-89 band and everything below 50, with Thinker between them.
func PersonalityFromScore(score int) Personality {
	switch {
	case score >= 90:
		return PersonalityLeader
	case score >= 70:
		return PersonalityBalanced
	case score >= 50:
		return PersonalityThinker
	default:
		return PersonalityBalanced
	}
}
