// Package answers turns raw answer text into comparable forms and decides
// whether a submitted answer is correct for a given question.
package answers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/charlesmadere/CynanBot-sub014/trivia"
)

var (
	apostropheRe  = regexp.MustCompile(`['’"]`)
	punctuationRe = regexp.MustCompile(`[^a-z0-9]+`)
	parentheticRe = regexp.MustCompile(`^(.+?)\s*\((.+?)\)\s*$`)
)

var leadingArticles = []string{"the ", "a ", "an "}

// CompileTextAnswer normalizes raw answer text: case-folds, drops
// apostrophes, replaces remaining punctuation with spaces, strips leading
// articles, and collapses whitespace. Normalization is idempotent. Returns
// ErrMalformedAnswer when nothing is left afterwards.
func CompileTextAnswer(raw string) (string, error) {
	s := strings.ToLower(raw)
	s = apostropheRe.ReplaceAllString(s, "")
	s = punctuationRe.ReplaceAllString(s, " ")
	s = strings.Join(strings.Fields(s), " ")

	// Strip to a fixed point so stacked articles ("the a team") compile
	// the same no matter how many passes the text has already been through.
	for {
		stripped := s
		for _, article := range leadingArticles {
			if rest := strings.TrimPrefix(s, article); rest != s && rest != "" {
				stripped = rest
				break
			}
		}
		if stripped == s {
			break
		}
		s = stripped
	}

	if s == "" {
		return "", fmt.Errorf("%w: %q is empty after normalization", trivia.ErrMalformedAnswer, raw)
	}
	return s, nil
}

// CompileTextAnswersList normalizes every entry. With expandParentheses set,
// an answer carrying a parenthetical alternative ("Mount Fuji (Fujisan)")
// compiles into both accepted forms. Duplicates are dropped, order kept.
func CompileTextAnswersList(rawAnswers []string, expandParentheses bool) ([]string, error) {
	compiled := make([]string, 0, len(rawAnswers))
	seen := make(map[string]struct{})

	appendUnique := func(raw string) error {
		answer, err := CompileTextAnswer(raw)
		if err != nil {
			return err
		}
		if _, ok := seen[answer]; !ok {
			seen[answer] = struct{}{}
			compiled = append(compiled, answer)
		}
		return nil
	}

	for _, raw := range rawAnswers {
		if expandParentheses {
			if m := parentheticRe.FindStringSubmatch(raw); m != nil {
				if err := appendUnique(m[1]); err != nil {
					return nil, err
				}
				if err := appendUnique(m[2]); err != nil {
					return nil, err
				}
				continue
			}
		}
		if err := appendUnique(raw); err != nil {
			return nil, err
		}
	}

	if len(compiled) == 0 {
		return nil, fmt.Errorf("%w: no usable answers in list", trivia.ErrMalformedAnswer)
	}
	return compiled, nil
}

var numeralWords = map[string]string{
	"0": "zero", "1": "one", "2": "two", "3": "three", "4": "four",
	"5": "five", "6": "six", "7": "seven", "8": "eight", "9": "nine",
	"10": "ten", "11": "eleven", "12": "twelve", "13": "thirteen",
	"14": "fourteen", "15": "fifteen", "16": "sixteen", "17": "seventeen",
	"18": "eighteen", "19": "nineteen", "20": "twenty",
}

var wordNumerals = func() map[string]string {
	m := make(map[string]string, len(numeralWords))
	for digit, word := range numeralWords {
		m[word] = digit
	}
	return m
}()

// ExpandNumerals produces the answer plus variants with small integers
// swapped between digit and spelled-out form, so "7" and "seven" both
// match. The input is expected to already be compiled.
func ExpandNumerals(answer string) []string {
	variants := []string{answer}
	tokens := strings.Fields(answer)

	for i, token := range tokens {
		var swap string
		if word, ok := numeralWords[token]; ok {
			swap = word
		} else if digit, ok := wordNumerals[token]; ok {
			swap = digit
		} else {
			continue
		}

		swapped := make([]string, len(tokens))
		copy(swapped, tokens)
		swapped[i] = swap
		variants = append(variants, strings.Join(swapped, " "))
	}

	return variants
}

// CompileMultipleChoiceOrdinal reads a submitted answer as a zero-based
// multiple choice ordinal. Accepted forms: a single letter A-D, a 1-based
// position 1-4, or a bare 0 for the first choice. Anything else fails with
// ErrInvalidOrdinal.
func CompileMultipleChoiceOrdinal(answer string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(answer))
	s = strings.TrimRight(s, ".):")

	if len(s) == 1 && s[0] >= 'a' && s[0] <= 'd' {
		return int(s[0] - 'a'), nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: cannot parse %q", trivia.ErrInvalidOrdinal, answer)
	}

	switch {
	case n == 0:
		return 0, nil
	case n >= 1 && n <= 4:
		return n - 1, nil
	default:
		return 0, fmt.Errorf("%w: %d is out of range", trivia.ErrInvalidOrdinal, n)
	}
}

// CompileBoolAnswer reads a submitted answer as a boolean. Accepted forms
// (case-insensitive): true/false, t/f, yes/no, 1/0.
func CompileBoolAnswer(answer string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "true", "t", "yes", "1":
		return true, nil
	case "false", "f", "no", "0":
		return false, nil
	default:
		return false, fmt.Errorf("%w: cannot parse %q", trivia.ErrInvalidBoolAnswer, answer)
	}
}
