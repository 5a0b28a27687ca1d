package answers

import (
	"errors"
	"testing"

	"github.com/charlesmadere/CynanBot-sub014/trivia"
)

func questionAnswerFixture(t *testing.T, raw []string) *trivia.Question {
	t.Helper()
	cleaned, err := CompileTextAnswersList(raw, true)
	if err != nil {
		t.Fatal(err)
	}
	q, err := trivia.NewQuestionAnswerQuestion("qa1", "What mountain?", "geography",
		trivia.DifficultyEasy, trivia.SourceLocalDatabase, raw, cleaned)
	if err != nil {
		t.Fatal(err)
	}
	return q
}

func TestCheckAnswerQuestionAnswer(t *testing.T) {
	q := questionAnswerFixture(t, []string{"Mount Fuji (Fujisan)"})

	tests := []struct {
		name      string
		submitted string
		correct   bool
		matched   string
		wantErr   error
	}{
		{name: "exact", submitted: "Mount Fuji", correct: true, matched: "mount fuji"},
		{name: "case and punctuation", submitted: "  MOUNT FUJI!! ", correct: true, matched: "mount fuji"},
		{name: "leading article", submitted: "the Mount Fuji", correct: true, matched: "mount fuji"},
		{name: "parenthetical alternative", submitted: "Fujisan", correct: true, matched: "fujisan"},
		{name: "wrong answer", submitted: "Everest", correct: false},
		{name: "empty submission", submitted: "!!!", wantErr: trivia.ErrMalformedAnswer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CheckAnswer(tt.submitted, q)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if result.Correct != tt.correct {
				t.Errorf("Correct = %t, want %t", result.Correct, tt.correct)
			}
			if result.Correct && result.MatchedAnswer != tt.matched {
				t.Errorf("MatchedAnswer = %q, want %q", result.MatchedAnswer, tt.matched)
			}
		})
	}
}

// A stored answer beginning with stacked articles must accept submissions
// that carry any prefix of those articles.
func TestCheckAnswerStackedArticles(t *testing.T) {
	q := questionAnswerFixture(t, []string{"The A Team"})

	for _, submitted := range []string{"The A Team", "A Team", "team"} {
		result, err := CheckAnswer(submitted, q)
		if err != nil {
			t.Fatalf("CheckAnswer(%q) error: %v", submitted, err)
		}
		if !result.Correct {
			t.Errorf("CheckAnswer(%q) not correct, want correct", submitted)
		}
	}
}

func TestCheckAnswerNumeralVariants(t *testing.T) {
	q := questionAnswerFixture(t, []string{"7 dwarfs"})

	for _, submitted := range []string{"7 dwarfs", "seven dwarfs", "The Seven Dwarfs"} {
		result, err := CheckAnswer(submitted, q)
		if err != nil {
			t.Fatalf("CheckAnswer(%q) error: %v", submitted, err)
		}
		if !result.Correct {
			t.Errorf("CheckAnswer(%q) not correct, want correct", submitted)
		}
	}
}

func TestCheckAnswerTrueFalse(t *testing.T) {
	q, err := trivia.NewTrueFalseQuestion("tf1", "The sky is blue.", "",
		trivia.DifficultyEasy, trivia.SourceLocalDatabase, []bool{true})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		submitted string
		correct   bool
		wantErr   error
	}{
		{submitted: "true", correct: true},
		{submitted: "YES", correct: true},
		{submitted: "t", correct: true},
		{submitted: "false", correct: false},
		{submitted: "no", correct: false},
		{submitted: "blue", wantErr: trivia.ErrInvalidBoolAnswer},
	}

	for _, tt := range tests {
		result, err := CheckAnswer(tt.submitted, q)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CheckAnswer(%q) err = %v, want %v", tt.submitted, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("CheckAnswer(%q) error: %v", tt.submitted, err)
			continue
		}
		if result.Correct != tt.correct {
			t.Errorf("CheckAnswer(%q) = %t, want %t", tt.submitted, result.Correct, tt.correct)
		}
		if result.Correct && result.MatchedAnswer != "true" {
			t.Errorf("CheckAnswer(%q) matched %q, want true", tt.submitted, result.MatchedAnswer)
		}
	}
}

func TestCheckAnswerMultipleChoice(t *testing.T) {
	q, err := trivia.NewMultipleChoiceQuestion("mc1", "Largest planet?", "space",
		trivia.DifficultyMedium, trivia.SourceLocalDatabase,
		[]string{"Mars", "Jupiter", "Venus", "Saturn"}, 1)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		submitted string
		correct   bool
		matched   string
		wantErr   error
	}{
		{submitted: "b", correct: true, matched: "Jupiter"},
		{submitted: "B", correct: true, matched: "Jupiter"},
		{submitted: "2", correct: true, matched: "Jupiter"},
		{submitted: "a", correct: false},
		{submitted: "4", correct: false},
		{submitted: "5", wantErr: trivia.ErrInvalidOrdinal},
		{submitted: "jupiter", wantErr: trivia.ErrInvalidOrdinal},
	}

	for _, tt := range tests {
		result, err := CheckAnswer(tt.submitted, q)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CheckAnswer(%q) err = %v, want %v", tt.submitted, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("CheckAnswer(%q) error: %v", tt.submitted, err)
			continue
		}
		if result.Correct != tt.correct {
			t.Errorf("CheckAnswer(%q) = %t, want %t", tt.submitted, result.Correct, tt.correct)
		}
		if result.Correct && result.MatchedAnswer != tt.matched {
			t.Errorf("CheckAnswer(%q) matched %q, want %q", tt.submitted, result.MatchedAnswer, tt.matched)
		}
	}
}

// Checking the same answer repeatedly must keep returning the same result
// and leave the question untouched.
func TestCheckAnswerIsPure(t *testing.T) {
	q := questionAnswerFixture(t, []string{"Mount Fuji (Fujisan)"})
	before := len(q.QuestionAnswer.CleanedAnswers)

	for i := 0; i < 3; i++ {
		result, err := CheckAnswer("mount fuji", q)
		if err != nil {
			t.Fatal(err)
		}
		if !result.Correct {
			t.Fatalf("check %d returned incorrect, want correct", i)
		}
	}

	if len(q.QuestionAnswer.CleanedAnswers) != before {
		t.Error("question payload mutated by checking")
	}
}
