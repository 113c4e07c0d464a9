package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/flagsapp/flags-backend/pkg/enums"
)

// AnswerValue is the tagged union stored for a questionnaire answer. Exactly
// one of the typed fields is set, matching Kind.
type AnswerValue struct {
	Kind   enums.QuestionType `json:"kind"`
	Text   *string            `json:"text,omitempty"`
	Number *float64           `json:"number,omitempty"`
	Bool   *bool              `json:"bool,omitempty"`
	Choice *string            `json:"choice,omitempty"`
	Slider *float64           `json:"slider,omitempty"`
}

func TextAnswer(s string) AnswerValue {
	return AnswerValue{Kind: enums.QuestionTypeText, Text: &s}
}

func NumberAnswer(n float64) AnswerValue {
	return AnswerValue{Kind: enums.QuestionTypeNumber, Number: &n}
}

func BoolAnswer(b bool) AnswerValue {
	return AnswerValue{Kind: enums.QuestionTypeBoolean, Bool: &b}
}

func ChoiceAnswer(c string) AnswerValue {
	return AnswerValue{Kind: enums.QuestionTypeMultipleChoice, Choice: &c}
}

func SliderAnswer(v float64) AnswerValue {
	return AnswerValue{Kind: enums.QuestionTypeSlider, Slider: &v}
}

// Validate checks that the populated field matches the declared kind.
func (v AnswerValue) Validate() error {
	if !v.Kind.IsValid() {
		return fmt.Errorf("invalid answer kind %q", v.Kind)
	}

	set := 0
	for _, present := range []bool{v.Text != nil, v.Number != nil, v.Bool != nil, v.Choice != nil, v.Slider != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("answer must carry exactly one value, got %d", set)
	}

	ok := false
	switch v.Kind {
	case enums.QuestionTypeText:
		ok = v.Text != nil
	case enums.QuestionTypeNumber:
		ok = v.Number != nil
	case enums.QuestionTypeBoolean:
		ok = v.Bool != nil
	case enums.QuestionTypeMultipleChoice:
		ok = v.Choice != nil
	case enums.QuestionTypeSlider:
		ok = v.Slider != nil
	}
	if !ok {
		return fmt.Errorf("answer value does not match kind %q", v.Kind)
	}
	return nil
}

func (v AnswerValue) Value() (driver.Value, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func (v *AnswerValue) Scan(src any) error {
	if src == nil {
		return fmt.Errorf("scanning answer value: null column")
	}

	var raw []byte
	switch s := src.(type) {
	case []byte:
		raw = s
	case string:
		raw = []byte(s)
	default:
		return fmt.Errorf("scanning answer value: unsupported type %T", src)
	}

	return json.Unmarshal(raw, v)
}
