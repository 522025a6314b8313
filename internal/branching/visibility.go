// Package branching decides which questions of a survey are currently shown,
// given the answers collected so far.
package branching

import "surveyflow/internal/model"

type skipMode uint8

const (
	notSkipping skipMode = iota
	skippingToQuestion
	skippingToSection
)

// skipState is the fold accumulator: either not skipping, or hiding questions until a target is reached
type skipState struct {
	mode   skipMode
	target string
}

// reaches reports whether q, inside sectionID, ends the current skip
func (s skipState) reaches(q *model.Question, sectionID string) bool {
	switch s.mode {
	case skippingToQuestion:
		return q.ID == s.target
	case skippingToSection:
		return sectionID == s.target
	}
	return false
}

// after returns the state following a visible question whose rule may have fired
func after(q *model.Question, answer model.AnswerValue) skipState {
	rule := Navigation(q, answer)
	switch {
	case rule == nil:
		return skipState{}
	case rule.GoToQuestionID != "":
		return skipState{mode: skippingToQuestion, target: rule.GoToQuestionID}
	default:
		return skipState{mode: skippingToSection, target: rule.SkipToSectionID}
	}
}

// walk folds over the questions in document order and reports each question's visibility
func walk(survey *model.Survey, answers model.Answers, visit func(q *model.Question, visible bool)) {
	state := skipState{}
	for i := range survey.Sections {
		sec := &survey.Sections[i]
		for j := range sec.Questions {
			q := &sec.Questions[j]
			if state.mode != notSkipping && !state.reaches(q, sec.ID) {
				visit(q, false)
				continue
			}
			visit(q, true)
			state = after(q, answers[q.ID])
		}
	}
}

// VisibleQuestionIDs returns the ids of the currently visible questions in document order.
// A skip target that never appears later in the survey hides everything after the rule.
func VisibleQuestionIDs(survey *model.Survey, answers model.Answers) []string {
	ids := []string{}
	walk(survey, answers, func(q *model.Question, visible bool) {
		if visible {
			ids = append(ids, q.ID)
		}
	})
	return ids
}

// Visible returns the visible question ids as a set
func Visible(survey *model.Survey, answers model.Answers) map[string]bool {
	set := make(map[string]bool)
	walk(survey, answers, func(q *model.Question, visible bool) {
		if visible {
			set[q.ID] = true
		}
	})
	return set
}

// FilterSections returns the sections with only their visible questions.
// Sections left without questions are dropped. The survey itself is not modified.
func FilterSections(survey *model.Survey, answers model.Answers) []model.Section {
	visible := Visible(survey, answers)
	out := []model.Section{}
	for _, sec := range survey.Sections {
		var questions []model.Question
		for _, q := range sec.Questions {
			if visible[q.ID] {
				questions = append(questions, q)
			}
		}
		if len(questions) == 0 {
			continue
		}
		sec.Questions = questions
		out = append(out, sec)
	}
	return out
}

// MatchesCondition reports whether answer triggers a rule with the given trigger.
// A single trigger value matches an equal text answer or a list containing it;
// a set of trigger values matches a text answer in the set or a list sharing any member.
func MatchesCondition(answer model.AnswerValue, trigger model.Trigger) bool {
	if !answer.IsPresent() {
		return false
	}
	for _, v := range answer.Values() {
		if trigger.Contains(v) {
			return true
		}
	}
	return false
}

// Navigation returns the rule that fires for answer on q, with only the winning target set.
// It returns nil when q has no rule, the rule has no target, or the answer does not match.
func Navigation(q *model.Question, answer model.AnswerValue) *model.LogicRule {
	if q.Logic == nil || !q.Logic.HasTarget() || !MatchesCondition(answer, q.Logic.On) {
		return nil
	}
	rule := model.LogicRule{On: q.Logic.On}
	if q.Logic.GoToQuestionID != "" {
		rule.GoToQuestionID = q.Logic.GoToQuestionID
	} else {
		rule.SkipToSectionID = q.Logic.SkipToSectionID
	}
	return &rule
}
