package model

import "time"

// Survey is an ordered collection of sections. It is treated as read-only once loaded.
type Survey struct {
	ID          string    `json:"id" yaml:"id" bson:"_id"`
	Title       string    `json:"title" yaml:"title" bson:"title"`
	Description string    `json:"description" yaml:"description" bson:"description"`
	Sections    []Section `json:"sections" yaml:"sections" bson:"sections"`

	// Set by the survey store for imported surveys only.
	CreatedAt time.Time `json:"createdAt,omitempty" yaml:"-" bson:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" yaml:"-" bson:"updatedAt,omitempty"`
}

// Section is a named, ordered group of questions
type Section struct {
	ID          string     `json:"id" yaml:"id" bson:"id"`
	Title       string     `json:"title" yaml:"title" bson:"title"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty" bson:"description,omitempty"`
	Questions   []Question `json:"questions" yaml:"questions" bson:"questions"`
}

// LogicRule hides the questions following its owner up to a target once the trigger matches.
// When both targets are set GoToQuestionID wins.
type LogicRule struct {
	On              Trigger `json:"on" yaml:"on" bson:"on"`
	GoToQuestionID  string  `json:"goToQuestionId,omitempty" yaml:"goToQuestionId,omitempty" bson:"goToQuestionId,omitempty"`
	SkipToSectionID string  `json:"skipToSectionId,omitempty" yaml:"skipToSectionId,omitempty" bson:"skipToSectionId,omitempty"`
}

// HasTarget reports whether the rule names somewhere to skip to
func (r *LogicRule) HasTarget() bool {
	return r.GoToQuestionID != "" || r.SkipToSectionID != ""
}

// SurveySummary is the listing view of a survey
type SurveySummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Summary returns the listing view of s
func (s *Survey) Summary() SurveySummary {
	return SurveySummary{ID: s.ID, Title: s.Title, Description: s.Description}
}

// Questions returns every question in document order
func (s *Survey) Questions() []Question {
	var out []Question
	for _, sec := range s.Sections {
		out = append(out, sec.Questions...)
	}
	return out
}
