package model

// QuestionType defines the type of question
type QuestionType string

const (
	QuestionTypeSingleSelect QuestionType = "multiple-choice" // One option
	QuestionTypeMultiSelect  QuestionType = "checkboxes"      // Any number of options
	QuestionTypeShortText    QuestionType = "short-answer"
	QuestionTypeLongText     QuestionType = "paragraph"
)

// Valid reports whether t is one of the known question types
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeSingleSelect, QuestionTypeMultiSelect, QuestionTypeShortText, QuestionTypeLongText:
		return true
	}
	return false
}

// HasOptions reports whether questions of this type pick from a fixed option list
func (t QuestionType) HasOptions() bool {
	return t == QuestionTypeSingleSelect || t == QuestionTypeMultiSelect
}

// Question is a single prompt inside a section
type Question struct {
	ID          string       `json:"id" yaml:"id" bson:"id"`
	Type        QuestionType `json:"type" yaml:"type" bson:"type"`
	Text        string       `json:"text" yaml:"text" bson:"text"`
	Options     []string     `json:"options,omitempty" yaml:"options,omitempty" bson:"options,omitempty"`
	Placeholder string       `json:"placeholder,omitempty" yaml:"placeholder,omitempty" bson:"placeholder,omitempty"`
	Required    bool         `json:"required,omitempty" yaml:"required,omitempty" bson:"required,omitempty"`
	Hint        string       `json:"hint,omitempty" yaml:"hint,omitempty" bson:"hint,omitempty"`
	Logic       *LogicRule   `json:"logic,omitempty" yaml:"logic,omitempty" bson:"logic,omitempty"`
}
