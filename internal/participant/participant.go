package participant

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	MinSkill = 1
	MaxSkill = 10
)

type Participant struct {
	// Immutable once constructed; teams only hold references.
	ID       string
	Name     string
	Email    string
	Activity Activity
	Skill    int
	Role     Role

	// score and personality are set together in New and never change.
	score       int
	personality Personality
}

// New builds a participant and derives its personality archetype from score.
func New(id, name, email string, activity Activity, skill int, role Role, score int) *Participant {
	return &Participant{
		ID:          id,
		Name:        name,
		Email:       email,
		Activity:    activity,
		Skill:       skill,
		Role:        role,
		score:       score,
		personality: PersonalityFromScore(score),
	}
}

// Score returns the personality score the participant was built with.
func (p *Participant) Score() int {
	return p.score
}

// Personality returns the archetype computed when the participant was built.
func (p *Participant) Personality() Personality {
	return p.personality
}

// Details formats the participant for team listings.
func (p *Participant) Details() string {
	return fmt.Sprintf("%s (%s) - %s [%s]", p.Name, p.Activity, p.personality, p.Role)
}

func (p *Participant) String() string {
	return p.Details()
}

// Record returns the participant as a row of the participants CSV.
func (p *Participant) Record() []string {
	return []string{
		p.ID,
		p.Name,
		p.Email,
		string(p.Activity),
		strconv.Itoa(p.Skill),
		string(p.Role),
		strconv.Itoa(p.score),
		string(p.personality),
	}
}

// ValidateEmail applies the survey's loose email check: an "@", a "."
// and more than three characters.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if len(email) <= 3 || !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return fmt.Errorf("invalid email %q: must contain '@' and '.'", email)
	}
	return nil
}

// ValidateSkill reports whether skill is inside [MinSkill, MaxSkill].
func ValidateSkill(skill int) error {
	if skill < MinSkill || skill > MaxSkill {
		return fmt.Errorf("skill %d out of range %d-%d", skill, MinSkill, MaxSkill)
	}
	return nil
}
