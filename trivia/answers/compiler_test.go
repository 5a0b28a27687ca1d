package answers

import (
	"errors"
	"testing"

	"github.com/charlesmadere/CynanBot-sub014/trivia"
)

func TestCompileTextAnswer(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "lowercases", raw: "Tokyo", want: "tokyo"},
		{name: "strips apostrophes", raw: "O'Brien's", want: "obriens"},
		{name: "curly apostrophe", raw: "it’s", want: "its"},
		{name: "punctuation becomes space", raw: "rock-and-roll", want: "rock and roll"},
		{name: "collapses whitespace", raw: "  New   York  ", want: "new york"},
		{name: "strips leading the", raw: "The Beatles", want: "beatles"},
		{name: "strips leading a", raw: "a dog", want: "dog"},
		{name: "strips leading an", raw: "An Apple", want: "apple"},
		{name: "article alone survives", raw: "the", want: "the"},
		{name: "stacked articles all stripped", raw: "The A Team", want: "team"},
		{name: "repeated articles leave the last word", raw: "a a a", want: "a"},
		{name: "empty input", raw: "", wantErr: true},
		{name: "punctuation only", raw: "?!...", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompileTextAnswer(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, trivia.ErrMalformedAnswer) {
					t.Fatalf("CompileTextAnswer(%q) err = %v, want ErrMalformedAnswer", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CompileTextAnswer(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("CompileTextAnswer(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCompileTextAnswerIdempotent(t *testing.T) {
	inputs := []string{"The Quick, Brown Fox!", "o'clock", "  a   b   c  ", "An Orange", "The A Team", "a a a", "an an answer"}

	for _, raw := range inputs {
		once, err := CompileTextAnswer(raw)
		if err != nil {
			t.Fatalf("first compile of %q failed: %v", raw, err)
		}
		twice, err := CompileTextAnswer(once)
		if err != nil {
			t.Fatalf("second compile of %q failed: %v", once, err)
		}
		if once != twice {
			t.Errorf("compile not idempotent for %q: %q != %q", raw, once, twice)
		}
	}
}

func TestCompileTextAnswersList(t *testing.T) {
	t.Run("expands parentheses", func(t *testing.T) {
		got, err := CompileTextAnswersList([]string{"Mount Fuji (Fujisan)"}, true)
		if err != nil {
			t.Fatal(err)
		}
		want := []string{"mount fuji", "fujisan"}
		if len(got) != len(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("answer %d = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("keeps parentheses literal when disabled", func(t *testing.T) {
		got, err := CompileTextAnswersList([]string{"Mount Fuji (Fujisan)"}, false)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0] != "mount fuji fujisan" {
			t.Errorf("got %v, want [mount fuji fujisan]", got)
		}
	})

	t.Run("dedupes preserving order", func(t *testing.T) {
		got, err := CompileTextAnswersList([]string{"Paris", "paris!", "London"}, false)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 || got[0] != "paris" || got[1] != "london" {
			t.Errorf("got %v, want [paris london]", got)
		}
	})

	t.Run("empty list", func(t *testing.T) {
		if _, err := CompileTextAnswersList(nil, true); !errors.Is(err, trivia.ErrMalformedAnswer) {
			t.Errorf("err = %v, want ErrMalformedAnswer", err)
		}
	})
}

func TestExpandNumerals(t *testing.T) {
	tests := []struct {
		answer string
		want   []string
	}{
		{answer: "7", want: []string{"7", "seven"}},
		{answer: "seven", want: []string{"seven", "7"}},
		{answer: "7 dwarfs", want: []string{"7 dwarfs", "seven dwarfs"}},
		{answer: "no numbers here", want: []string{"no numbers here"}},
		{answer: "21", want: []string{"21"}},
	}

	for _, tt := range tests {
		got := ExpandNumerals(tt.answer)
		if len(got) != len(tt.want) {
			t.Errorf("ExpandNumerals(%q) = %v, want %v", tt.answer, got, tt.want)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("ExpandNumerals(%q)[%d] = %q, want %q", tt.answer, i, got[i], tt.want[i])
			}
		}
	}
}

func TestCompileMultipleChoiceOrdinal(t *testing.T) {
	tests := []struct {
		answer  string
		want    int
		wantErr bool
	}{
		{answer: "a", want: 0},
		{answer: "B", want: 1},
		{answer: "d", want: 3},
		{answer: "c)", want: 2},
		{answer: "b.", want: 1},
		{answer: "1", want: 0},
		{answer: "4", want: 3},
		{answer: "0", want: 0},
		{answer: "5", wantErr: true},
		{answer: "e", wantErr: true},
		{answer: "abc", wantErr: true},
		{answer: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := CompileMultipleChoiceOrdinal(tt.answer)
		if tt.wantErr {
			if !errors.Is(err, trivia.ErrInvalidOrdinal) {
				t.Errorf("CompileMultipleChoiceOrdinal(%q) err = %v, want ErrInvalidOrdinal", tt.answer, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("CompileMultipleChoiceOrdinal(%q) unexpected error: %v", tt.answer, err)
			continue
		}
		if got != tt.want {
			t.Errorf("CompileMultipleChoiceOrdinal(%q) = %d, want %d", tt.answer, got, tt.want)
		}
	}
}

func TestCompileBoolAnswer(t *testing.T) {
	tests := []struct {
		answer  string
		want    bool
		wantErr bool
	}{
		{answer: "true", want: true},
		{answer: "TRUE", want: true},
		{answer: "t", want: true},
		{answer: "yes", want: true},
		{answer: "1", want: true},
		{answer: "false", want: false},
		{answer: "f", want: false},
		{answer: "No", want: false},
		{answer: "0", want: false},
		{answer: "maybe", wantErr: true},
		{answer: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := CompileBoolAnswer(tt.answer)
		if tt.wantErr {
			if !errors.Is(err, trivia.ErrInvalidBoolAnswer) {
				t.Errorf("CompileBoolAnswer(%q) err = %v, want ErrInvalidBoolAnswer", tt.answer, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("CompileBoolAnswer(%q) unexpected error: %v", tt.answer, err)
			continue
		}
		if got != tt.want {
			t.Errorf("CompileBoolAnswer(%q) = %t, want %t", tt.answer, got, tt.want)
		}
	}
}
