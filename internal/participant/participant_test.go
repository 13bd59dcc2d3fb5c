package participant

import (
	"strconv"
	"strings"
	"testing"
)

func TestPersonalityFromScore(t *testing.T) {
	// Balanced appears on both sides of Thinker; these cases pin that layout.
	tests := []struct {
		score int
		want  Personality
	}{
		{100, PersonalityLeader},
		{90, PersonalityLeader},
		{89, PersonalityBalanced},
		{70, PersonalityBalanced},
		{69, PersonalityThinker},
		{50, PersonalityThinker},
		{49, PersonalityBalanced},
		{20, PersonalityBalanced},
		{0, PersonalityBalanced},
		{-5, PersonalityBalanced},
	}
	for _, tt := range tests {
		if got := PersonalityFromScore(tt.score); got != tt.want {
			t.Errorf("PersonalityFromScore(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestNew_DerivesPersonality(t *testing.T) {
	p := New("P001", "Ana", "ana@example.com", ActivityChess, 7, RoleDefender, 92)

	if p.Personality() != PersonalityLeader {
		t.Errorf("Personality() = %q, want %q", p.Personality(), PersonalityLeader)
	}
	if p.Skill != 7 {
		t.Errorf("Skill = %d, want 7", p.Skill)
	}
}

func TestRecord_ScoreAndTypeAgree(t *testing.T) {
	tests := []struct {
		score    int
		wantType Personality
	}{
		{95, PersonalityLeader},
		{55, PersonalityThinker},
		{80, PersonalityBalanced},
	}
	for _, tt := range tests {
		p := New("P001", "Ana", "ana@example.com", ActivityChess, 7, RoleDefender, tt.score)
		if p.Score() != tt.score {
			t.Errorf("Score() = %d, want %d", p.Score(), tt.score)
		}
		rec := p.Record()
		if rec[6] != strconv.Itoa(tt.score) || rec[7] != string(tt.wantType) {
			t.Errorf("Record() score/type = %s/%s, want %d/%s", rec[6], rec[7], tt.score, tt.wantType)
		}
	}
}

func TestParseActivity(t *testing.T) {
	tests := []struct {
		in     string
		want   Activity
		wantOK bool
	}{
		{"Valorant", ActivityValorant, true},
		{"dota 2", ActivityDota2, true},
		{"  cs:go ", ActivityCSGO, true},
		{"CHESS", ActivityChess, true},
		{"Tetris", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseActivity(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseActivity(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseRole(t *testing.T) {
	for _, r := range Roles {
		got, ok := ParseRole(strings.ToUpper(string(r)))
		if !ok || got != r {
			t.Errorf("ParseRole(%q) = (%q, %v), want (%q, true)", strings.ToUpper(string(r)), got, ok, r)
		}
	}
	if _, ok := ParseRole("Goalkeeper"); ok {
		t.Error("ParseRole should reject unknown roles")
	}
}

func TestParsePersonality(t *testing.T) {
	got, ok := ParsePersonality("THINKER")
	if !ok || got != PersonalityThinker {
		t.Errorf("ParsePersonality(THINKER) = (%q, %v)", got, ok)
	}
	if _, ok := ParsePersonality("Introvert"); ok {
		t.Error("ParsePersonality should reject unknown archetypes")
	}
}

func TestDetails(t *testing.T) {
	p := New("P002", "Ben", "ben@example.com", ActivityFIFA, 5, RoleAttacker, 60)
	want := "Ben (FIFA) - Thinker [Attacker]"
	if got := p.Details(); got != want {
		t.Errorf("Details() = %q, want %q", got, want)
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{"a@b.co", true},
		{"someone@example.com", true},
		{"a@b", false},
		{"ab.c", false},
		{"@.", false},
		{"", false},
	}
	for _, tt := range tests {
		err := ValidateEmail(tt.email)
		if (err == nil) != tt.ok {
			t.Errorf("ValidateEmail(%q) error = %v, want ok=%v", tt.email, err, tt.ok)
		}
	}
}

func TestValidateSkill(t *testing.T) {
	for _, s := range []int{1, 5, 10} {
		if err := ValidateSkill(s); err != nil {
			t.Errorf("ValidateSkill(%d) = %v", s, err)
		}
	}
	for _, s := range []int{0, 11, -1} {
		if err := ValidateSkill(s); err == nil {
			t.Errorf("ValidateSkill(%d) should fail", s)
		}
	}
}

func TestScoreSurvey(t *testing.T) {
	score, err := ScoreSurvey([]int{5, 5, 5, 5, 5})
	if err != nil {
		t.Fatalf("ScoreSurvey: %v", err)
	}
	if score != 100 {
		t.Errorf("score = %d, want 100", score)
	}

	score, err = ScoreSurvey([]int{3, 3, 2, 3, 3})
	if err != nil {
		t.Fatalf("ScoreSurvey: %v", err)
	}
	if score != 56 {
		t.Errorf("score = %d, want 56", score)
	}
	if PersonalityFromScore(score) != PersonalityThinker {
		t.Errorf("score 56 should classify as Thinker")
	}
}

func TestScoreSurvey_Invalid(t *testing.T) {
	if _, err := ScoreSurvey([]int{1, 2, 3}); err == nil {
		t.Error("expected error for too few answers")
	}
	if _, err := ScoreSurvey([]int{1, 2, 3, 4, 6}); err == nil {
		t.Error("expected error for out-of-range answer")
	}
}
