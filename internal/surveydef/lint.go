package surveydef

import (
	"fmt"

	"surveyflow/internal/model"
)

// Issue is a definition problem that does not stop the survey from loading
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return i.Path + ": " + i.Message
}

// Lint reports id clashes, option-less select questions, and logic rules whose
// target is missing or not later in the document. Such a rule hides the rest of the survey when it fires.
func Lint(s *model.Survey) []Issue {
	var issues []Issue

	// document position of every question and of the first question of every section
	questionPos := map[string]int{}
	sectionPos := map[string]int{}
	sectionSeen := map[string]bool{}
	pos := 0
	for i, sec := range s.Sections {
		if sectionSeen[sec.ID] {
			issues = append(issues, Issue{Path: fmt.Sprintf("sections[%d].id", i), Message: fmt.Sprintf("duplicate section id %q", sec.ID)})
		} else if len(sec.Questions) > 0 {
			sectionPos[sec.ID] = pos
		}
		sectionSeen[sec.ID] = true
		for j, q := range sec.Questions {
			if _, dup := questionPos[q.ID]; dup {
				issues = append(issues, Issue{Path: fmt.Sprintf("sections[%d].questions[%d].id", i, j), Message: fmt.Sprintf("duplicate question id %q", q.ID)})
			} else {
				questionPos[q.ID] = pos
			}
			pos++
		}
	}

	pos = 0
	for i, sec := range s.Sections {
		for j, q := range sec.Questions {
			path := fmt.Sprintf("sections[%d].questions[%d]", i, j)
			if q.Type.HasOptions() && len(q.Options) == 0 {
				issues = append(issues, Issue{Path: path + ".options", Message: "select question has no options"})
			}
			if q.Logic != nil {
				issues = append(issues, lintRule(path+".logic", q.Logic, pos, sec.ID, questionPos, sectionPos)...)
			}
			pos++
		}
	}
	return issues
}

func lintRule(path string, r *model.LogicRule, pos int, ownSection string, questionPos, sectionPos map[string]int) []Issue {
	var issues []Issue
	if r.On.IsZero() {
		issues = append(issues, Issue{Path: path + ".on", Message: "rule has no trigger value"})
	}
	if !r.HasTarget() {
		return append(issues, Issue{Path: path, Message: "rule has no target and is ignored"})
	}
	if r.GoToQuestionID != "" && r.SkipToSectionID != "" {
		issues = append(issues, Issue{Path: path, Message: "both goToQuestionId and skipToSectionId set; goToQuestionId wins"})
	}
	if r.GoToQuestionID != "" {
		target, ok := questionPos[r.GoToQuestionID]
		switch {
		case !ok:
			issues = append(issues, Issue{Path: path + ".goToQuestionId", Message: fmt.Sprintf("unknown question %q", r.GoToQuestionID)})
		case target <= pos:
			issues = append(issues, Issue{Path: path + ".goToQuestionId", Message: fmt.Sprintf("question %q is not after this one", r.GoToQuestionID)})
		}
		return issues
	}
	target, ok := sectionPos[r.SkipToSectionID]
	switch {
	case !ok:
		issues = append(issues, Issue{Path: path + ".skipToSectionId", Message: fmt.Sprintf("unknown or empty section %q", r.SkipToSectionID)})
	case r.SkipToSectionID == ownSection:
		issues = append(issues, Issue{Path: path + ".skipToSectionId", Message: "skipping to the current section only resumes at the next question"})
	case target <= pos:
		issues = append(issues, Issue{Path: path + ".skipToSectionId", Message: fmt.Sprintf("section %q is not after this question", r.SkipToSectionID)})
	}
	return issues
}
