package participant

import "fmt"

const (
	MinAnswer = 1
	MaxAnswer = 5

	// answerWeight scales the five answers (5-25) onto a 20-100 score.
	answerWeight = 4
)

// SurveyQuestions are rated from 1 (disagree) to 5 (agree).
var SurveyQuestions = []string{
	"I enjoy taking the lead.",
	"I prefer analyzing situations.",
	"I work well with others.",
	"I am calm under pressure.",
	"I like making quick decisions.",
}

// ScoreSurvey turns the Likert answers into a personality score.
func ScoreSurvey(answers []int) (int, error) {
	if len(answers) != len(SurveyQuestions) {
		return 0, fmt.Errorf("expected %d answers, got %d", len(SurveyQuestions), len(answers))
	}
	sum := 0
	for i, a := range answers {
		if a < MinAnswer || a > MaxAnswer {
			return 0, fmt.Errorf("answer %d is %d, want %d-%d", i+1, a, MinAnswer, MaxAnswer)
		}
		sum += a
	}
	return sum * answerWeight, nil
}
