package auth

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/DANIELNAHUN/afiche-generator/config"
)

// Question is one entry in the fixed security-question sequence. Numbers
// start at 1 and follow configuration order.
type Question struct {
	Number int
	Text   string
	Answer string
}

// loadQuestions resolves the question sequence with the same precedence the
// deployment expects: SECURITY_QUESTION_N / SECURITY_ANSWER_N environment
// pairs first, then configured pairs, then the built-in fallback.
func loadQuestions(cfg config.AuthConfig) []Question {
	if questions := questionsFromEnv(); len(questions) > 0 {
		return questions
	}

	if len(cfg.Questions) > 0 {
		questions := make([]Question, 0, len(cfg.Questions))
		for i, q := range cfg.Questions {
			questions = append(questions, Question{Number: i + 1, Text: q.Text, Answer: q.Answer})
		}
		return questions
	}

	return []Question{{
		Number: 1,
		Text:   "¿Cuál es el nombre de tu iglesia?",
		Answer: "iglesia central",
	}}
}

// questionsFromEnv scans SECURITY_QUESTION_N / SECURITY_ANSWER_N pairs from
// N=1 upward, stopping at the first incomplete pair.
func questionsFromEnv() []Question {
	var questions []Question
	for i := 1; ; i++ {
		text := os.Getenv(fmt.Sprintf("SECURITY_QUESTION_%d", i))
		answer := os.Getenv(fmt.Sprintf("SECURITY_ANSWER_%d", i))
		if text == "" || answer == "" {
			break
		}
		questions = append(questions, Question{Number: i, Text: text, Answer: answer})
	}
	return questions
}

var (
	punctuationRe = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// NormalizeAnswer makes answer comparison forgiving: lowercase, trimmed,
// punctuation stripped and runs of whitespace collapsed.
func NormalizeAnswer(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = punctuationRe.ReplaceAllString(text, "")
	return whitespaceRe.ReplaceAllString(text, " ")
}
