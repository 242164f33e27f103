package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidAnswerValue is returned when a raw answer does not match the
// shape required by its question type.
var ErrInvalidAnswerValue = errors.New("invalid answer value")

// AnswerValue is a decoded answer payload. Exactly one payload field is set,
// selected by Type.
type AnswerValue struct {
	Type    QuestionType
	Choice  string
	Choices []string
	Scale   *float64
	Ranking []string
	Text    string
}

// DecodeAnswerValue decodes a raw JSON answer for the given question type.
func DecodeAnswerValue(t QuestionType, raw json.RawMessage) (AnswerValue, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return AnswerValue{}, fmt.Errorf("%w: value is required", ErrInvalidAnswerValue)
	}

	v := AnswerValue{Type: t}
	switch t {
	case QuestionTypeSingleChoice:
		choice, err := decodeScalar(raw)
		if err != nil {
			return AnswerValue{}, err
		}
		if choice == "" {
			return AnswerValue{}, fmt.Errorf("%w: empty choice", ErrInvalidAnswerValue)
		}
		v.Choice = choice
	case QuestionTypeMultipleChoice:
		var choices []string
		if err := json.Unmarshal(raw, &choices); err != nil {
			return AnswerValue{}, fmt.Errorf("%w: multiple choice expects a list of strings", ErrInvalidAnswerValue)
		}
		if len(choices) == 0 {
			return AnswerValue{}, fmt.Errorf("%w: at least one choice is required", ErrInvalidAnswerValue)
		}
		v.Choices = choices
	case QuestionTypeSlider:
		var scale float64
		if err := json.Unmarshal(raw, &scale); err != nil {
			return AnswerValue{}, fmt.Errorf("%w: slider expects a number", ErrInvalidAnswerValue)
		}
		v.Scale = &scale
	case QuestionTypeRanking:
		var ranking []string
		if err := json.Unmarshal(raw, &ranking); err != nil {
			return AnswerValue{}, fmt.Errorf("%w: ranking expects a list of strings", ErrInvalidAnswerValue)
		}
		if len(ranking) == 0 {
			return AnswerValue{}, fmt.Errorf("%w: ranking is empty", ErrInvalidAnswerValue)
		}
		seen := make(map[string]struct{}, len(ranking))
		for _, item := range ranking {
			if _, dup := seen[item]; dup {
				return AnswerValue{}, fmt.Errorf("%w: ranking item %q repeated", ErrInvalidAnswerValue, item)
			}
			seen[item] = struct{}{}
		}
		v.Ranking = ranking
	case QuestionTypeShortText:
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return AnswerValue{}, fmt.Errorf("%w: short text expects a string", ErrInvalidAnswerValue)
		}
		if strings.TrimSpace(text) == "" {
			return AnswerValue{}, fmt.Errorf("%w: text is blank", ErrInvalidAnswerValue)
		}
		v.Text = text
	default:
		return AnswerValue{}, fmt.Errorf("%w: unknown question type %q", ErrInvalidAnswerValue, t)
	}
	return v, nil
}

// decodeScalar accepts a JSON string or number and returns its text form.
func decodeScalar(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		return "", fmt.Errorf("%w: single choice expects a string or number", ErrInvalidAnswerValue)
	}
	return n.String(), nil
}

// DimensionVote returns the dimension letter this answer votes for. Only the
// declared choice counts: the chosen option of a single choice question or
// the top entry of a ranking. Whether the letter is a valid code is left to
// the caller.
func (v AnswerValue) DimensionVote() (string, bool) {
	switch v.Type {
	case QuestionTypeSingleChoice:
		return v.Choice, v.Choice != ""
	case QuestionTypeRanking:
		if len(v.Ranking) > 0 {
			return v.Ranking[0], true
		}
	}
	return "", false
}

// NumericScore returns the numeric strength of the answer: the slider scale,
// or a single choice whose option value is a number.
func (v AnswerValue) NumericScore() (float64, bool) {
	switch v.Type {
	case QuestionTypeSlider:
		if v.Scale != nil {
			return *v.Scale, true
		}
	case QuestionTypeSingleChoice:
		n, err := strconv.ParseFloat(v.Choice, 64)
		if err == nil {
			return n, true
		}
	}
	return 0, false
}

// Raw returns the payload in the shape it was submitted in.
func (v AnswerValue) Raw() any {
	switch v.Type {
	case QuestionTypeSingleChoice:
		return v.Choice
	case QuestionTypeMultipleChoice:
		return v.Choices
	case QuestionTypeSlider:
		if v.Scale != nil {
			return *v.Scale
		}
	case QuestionTypeRanking:
		return v.Ranking
	case QuestionTypeShortText:
		return v.Text
	}
	return nil
}

type answerValueJSON struct {
	Type  QuestionType    `json:"type"`
	Value json.RawMessage `json:"value"`
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	payload, err := json.Marshal(v.Raw())
	if err != nil {
		return nil, err
	}
	return json.Marshal(answerValueJSON{Type: v.Type, Value: payload})
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var wire answerValueJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	decoded, err := DecodeAnswerValue(wire.Type, wire.Value)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}
