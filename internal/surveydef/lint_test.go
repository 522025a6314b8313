package surveydef

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"surveyflow/internal/model"
)

func paths(issues []Issue) []string {
	var out []string
	for _, i := range issues {
		out = append(out, i.Path)
	}
	return out
}

func TestLint(t *testing.T) {
	s := &model.Survey{
		ID:    "lint",
		Title: "Lint",
		Sections: []model.Section{
			{ID: "s1", Title: "One", Questions: []model.Question{
				{ID: "a", Type: model.QuestionTypeSingleSelect, Text: "a", Options: []string{"Yes"},
					Logic: &model.LogicRule{On: model.On("Yes"), GoToQuestionID: "c", SkipToSectionID: "s2"}},
				{ID: "b", Type: model.QuestionTypeMultiSelect, Text: "b",
					Logic: &model.LogicRule{On: model.On("x"), GoToQuestionID: "a"}},
				{ID: "c", Type: model.QuestionTypeShortText, Text: "c",
					Logic: &model.LogicRule{On: model.On("x"), SkipToSectionID: "nowhere"}},
			}},
			{ID: "s2", Title: "Two", Questions: []model.Question{
				{ID: "a", Type: model.QuestionTypeShortText, Text: "dup"},
				{ID: "d", Type: model.QuestionTypeShortText, Text: "d", Logic: &model.LogicRule{On: model.On("x")}},
			}},
			{ID: "s2", Title: "Again"},
		},
	}

	assert.Equal(t, []string{
		"sections[1].questions[0].id",
		"sections[2].id",
		"sections[0].questions[0].logic",
		"sections[0].questions[1].options",
		"sections[0].questions[1].logic.goToQuestionId",
		"sections[0].questions[2].logic.skipToSectionId",
		"sections[1].questions[1].logic",
	}, paths(Lint(s)))
}

func TestLint_Clean(t *testing.T) {
	s := &model.Survey{
		ID: "ok",
		Sections: []model.Section{
			{ID: "s1", Questions: []model.Question{
				{ID: "a", Type: model.QuestionTypeSingleSelect, Options: []string{"Yes", "No"},
					Logic: &model.LogicRule{On: model.On("No"), SkipToSectionID: "s2"}},
			}},
			{ID: "s2", Questions: []model.Question{{ID: "b", Type: model.QuestionTypeLongText}}},
		},
	}
	assert.Empty(t, Lint(s))
}
