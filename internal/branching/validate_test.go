package branching

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveyflow/internal/model"
)

func TestValidate(t *testing.T) {
	text := &model.Question{ID: "name", Type: model.QuestionTypeShortText, Required: true}
	multi := &model.Question{ID: "tools", Type: model.QuestionTypeMultiSelect, Options: []string{"a", "b"}, Required: true}
	optional := &model.Question{ID: "notes", Type: model.QuestionTypeLongText}

	tests := []struct {
		name    string
		q       *model.Question
		answer  model.AnswerValue
		wantErr bool
	}{
		{"required text empty", text, model.SingleAnswer(""), true},
		{"required text whitespace", text, model.SingleAnswer("  \t"), true},
		{"required text absent", text, model.AnswerValue{}, true},
		{"required text given", text, model.SingleAnswer("x"), false},
		{"required list empty", multi, model.MultiAnswer(), true},
		{"required list absent", multi, model.AnswerValue{}, true},
		{"required list given", multi, model.MultiAnswer("a"), false},
		{"optional absent", optional, model.AnswerValue{}, false},
		{"optional empty", optional, model.SingleAnswer(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.q, tt.answer)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrRequired))
		})
	}
}

func TestValidate_Messages(t *testing.T) {
	multi := &model.Question{ID: "tools", Type: model.QuestionTypeMultiSelect, Required: true}

	var re *RequiredError
	require.ErrorAs(t, Validate(multi, model.MultiAnswer()), &re)
	assert.Equal(t, "Please select at least one option", re.Message)
	assert.Equal(t, "tools", re.QuestionID)

	require.ErrorAs(t, Validate(multi, model.AnswerValue{}), &re)
	assert.Equal(t, "This field is required", re.Message)
}

func TestValidateVisible(t *testing.T) {
	survey := &model.Survey{
		ID: "required",
		Sections: []model.Section{
			section("S1", model.Question{
				ID:       "gate",
				Type:     model.QuestionTypeSingleSelect,
				Options:  []string{"Yes", "No"},
				Required: true,
				Logic:    &model.LogicRule{On: model.On("No"), SkipToSectionID: "S3"},
			}),
			section("S2", model.Question{ID: "details", Type: model.QuestionTypeShortText, Required: true}),
			section("S3", model.Question{ID: "extra", Type: model.QuestionTypeLongText}),
		},
	}

	errs := ValidateVisible(survey, model.Answers{})
	assert.Equal(t, ValidationErrors{"gate": "This field is required", "details": "This field is required"}, errs)
	assert.EqualError(t, errs, "missing required answers: details, gate")

	errs = ValidateVisible(survey, model.Answers{"gate": model.SingleAnswer("No")})
	assert.Nil(t, errs)

	errs = ValidateVisible(survey, model.Answers{"gate": model.SingleAnswer("Yes")})
	assert.Equal(t, ValidationErrors{"details": "This field is required"}, errs)
}
