package quiz

import "strings"

// TimeLimit is the number of seconds each question stays open.
const TimeLimit = 10

const OptionCount = 4

type Question struct {
	Text          string
	Options       [OptionCount]string
	CorrectAnswer string
}

// HasCorrectOption reports whether CorrectAnswer matches one of the options.
// A question without a matching option can never be answered correctly.
func (q Question) HasCorrectOption() bool {
	for _, option := range q.Options {
		if option == q.CorrectAnswer {
			return true
		}
	}
	return false
}

var builtinQuestions = [...]Question{
	{
		Text:          "What is the capital of France?",
		Options:       [OptionCount]string{"Paris", "Rome", "Berlin", "London"},
		CorrectAnswer: "Paris",
	},
	{
		Text:          "What is the square root of 64?",
		Options:       [OptionCount]string{"6", "7", "8", "9"},
		CorrectAnswer: "8",
	},
	{
		Text:          "What is the largest ocean on Earth?",
		Options:       [OptionCount]string{"Atlantic", "Indian", "Arctic", "Pacific"},
		CorrectAnswer: "Pacific",
	},
	{
		Text:          "What is the chemical symbol for Gold?",
		Options:       [OptionCount]string{"Au", "Ag", "Fe", "Pb"},
		CorrectAnswer: "Au",
	},
	{
		Text:          "How many continents are there?",
		Options:       [OptionCount]string{"5", "6", "7", "8"},
		CorrectAnswer: "7",
	},
}

// Load returns the built-in questions in presentation order. Each call returns
// a fresh slice, so callers cannot alter the store.
func Load() []Question {
	questions := make([]Question, len(builtinQuestions))
	copy(questions, builtinQuestions[:])
	return questions
}

func OptionLetter(index int) string {
	if index < 0 || index >= OptionCount {
		return ""
	}
	return string(rune('A' + index))
}

// OptionIndex maps a letter (A-D, any case) or a number (1-4) to an option index.
func OptionIndex(answer string) (int, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(answer))
	if len(normalized) != 1 {
		return -1, false
	}

	ch := normalized[0]
	switch {
	case ch >= 'A' && ch < 'A'+OptionCount:
		return int(ch - 'A'), true
	case ch >= '1' && ch < '1'+OptionCount:
		return int(ch - '1'), true
	}
	return -1, false
}
