package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type answerKind uint8

const (
	answerAbsent answerKind = iota
	answerSingle
	answerMulti
)

// AnswerValue is the answer to one question: a single string or a list of strings.
// The zero value is an absent answer.
type AnswerValue struct {
	kind   answerKind
	text   string
	values []string
}

// Answers maps question id to its current answer (the in-progress Answer Store)
type Answers map[string]AnswerValue

// SingleAnswer wraps a single-select or text answer
func SingleAnswer(s string) AnswerValue {
	return AnswerValue{kind: answerSingle, text: s}
}

// MultiAnswer wraps a multi-select answer
func MultiAnswer(values ...string) AnswerValue {
	return AnswerValue{kind: answerMulti, values: append([]string{}, values...)}
}

// IsPresent reports whether an answer was given at all. Empty strings and lists are present.
func (a AnswerValue) IsPresent() bool { return a.kind != answerAbsent }

// IsList reports whether the answer is a list of values
func (a AnswerValue) IsList() bool { return a.kind == answerMulti }

// Text returns the single value; empty for list or absent answers
func (a AnswerValue) Text() string { return a.text }

// Values returns the answer as a list: the list itself, or the single value as a one-element list
func (a AnswerValue) Values() []string {
	switch a.kind {
	case answerSingle:
		return []string{a.text}
	case answerMulti:
		return a.values
	}
	return nil
}

// IsBlank reports whether the answer is absent, whitespace-only text or an empty list
func (a AnswerValue) IsBlank() bool {
	switch a.kind {
	case answerSingle:
		return strings.TrimSpace(a.text) == ""
	case answerMulti:
		return len(a.values) == 0
	}
	return true
}

// Equal reports whether both answers hold the same value
func (a AnswerValue) Equal(b AnswerValue) bool {
	if a.kind != b.kind || a.text != b.text || len(a.values) != len(b.values) {
		return false
	}
	for i := range a.values {
		if a.values[i] != b.values[i] {
			return false
		}
	}
	return true
}

// Stored returns the column representation: raw text, or a JSON array for lists
func (a AnswerValue) Stored() string {
	if a.kind == answerMulti {
		data, _ := json.Marshal(a.values)
		return string(data)
	}
	return a.text
}

// Display renders the answer for tabular output; lists are joined with "; "
func (a AnswerValue) Display() string {
	if a.kind == answerMulti {
		return strings.Join(a.values, "; ")
	}
	return a.text
}

// ParseStored reverses Stored. Text that is not a JSON string array is kept verbatim.
func ParseStored(s string) AnswerValue {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "[") {
		var values []string
		if err := json.Unmarshal([]byte(trimmed), &values); err == nil {
			return MultiAnswer(values...)
		}
	}
	return SingleAnswer(s)
}

func (a AnswerValue) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case answerSingle:
		return json.Marshal(a.text)
	case answerMulti:
		if a.values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.values)
	}
	return []byte("null"), nil
}

func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("answer: empty value")
	}
	switch data[0] {
	case 'n':
		if string(data) != "null" {
			break
		}
		*a = AnswerValue{}
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = SingleAnswer(s)
		return nil
	case '[':
		values, err := decodeStringList(data)
		if err != nil {
			return fmt.Errorf("answer: list answers must contain only strings")
		}
		*a = MultiAnswer(values...)
		return nil
	}
	return fmt.Errorf("answer: must be a string or an array of strings")
}

// decodeStringList decodes a JSON array whose elements are all strings. A null element is an error.
func decodeStringList(data []byte) ([]string, error) {
	var items []*string
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	if items == nil {
		return nil, fmt.Errorf("expected an array")
	}
	values := make([]string, len(items))
	for i, item := range items {
		if item == nil {
			return nil, fmt.Errorf("element %d is null", i)
		}
		values[i] = *item
	}
	return values, nil
}
