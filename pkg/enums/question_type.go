package enums

import "fmt"

// QuestionType determines the answer shape and the comparator used when
// scoring two users against a question.
type QuestionType string

const (
	QuestionTypeText           QuestionType = "text"
	QuestionTypeNumber         QuestionType = "number"
	QuestionTypeBoolean        QuestionType = "boolean"
	QuestionTypeMultipleChoice QuestionType = "multiple-choice"
	QuestionTypeSlider         QuestionType = "slider"
)

var validQuestionTypes = []QuestionType{
	QuestionTypeText,
	QuestionTypeNumber,
	QuestionTypeBoolean,
	QuestionTypeMultipleChoice,
	QuestionTypeSlider,
}

// String implements fmt.Stringer.
func (q QuestionType) String() string {
	return string(q)
}

// IsValid reports whether the value is a known QuestionType.
func (q QuestionType) IsValid() bool {
	for _, candidate := range validQuestionTypes {
		if candidate == q {
			return true
		}
	}
	return false
}

// ParseQuestionType converts raw input into a QuestionType.
func ParseQuestionType(value string) (QuestionType, error) {
	for _, candidate := range validQuestionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid question type %q", value)
}
