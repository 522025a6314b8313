package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveyflow/internal/model"
	"surveyflow/internal/surveydef"
)

func TestSurveyService_GetByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.surveyRepo.Save(ctx, &model.Survey{ID: "imported", Title: "Imported"}))
	// bundled definitions shadow imported ones
	require.NoError(t, f.surveyRepo.Save(ctx, &model.Survey{ID: "feedback", Title: "Shadowed"}))

	s, err := f.surveys.GetByID(ctx, "feedback")
	require.NoError(t, err)
	assert.Equal(t, "Feedback", s.Title)

	s, err = f.surveys.GetByID(ctx, "imported")
	require.NoError(t, err)
	assert.Equal(t, "Imported", s.Title)

	_, err = f.surveys.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrSurveyNotFound)

	f.surveyRepo.err = errBoom
	_, err = f.surveys.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, errBoom)
	assert.NotErrorIs(t, err, ErrSurveyNotFound)
}

func TestSurveyService_List(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.surveyRepo.Save(ctx, &model.Survey{ID: "feedback", Title: "Shadowed"}))
	require.NoError(t, f.surveyRepo.Save(ctx, &model.Survey{ID: "imported", Title: "Imported"}))

	list, err := f.surveys.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.SurveySummary{
		{ID: "feedback", Title: "Feedback"},
		{ID: "imported", Title: "Imported"},
	}, list)
}

func TestSurveyService_Import(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	body := `{"id":"new","title":"New","sections":[{"id":"s","title":"S","questions":[
		{"id":"q","type":"multiple-choice","text":"Q","logic":{"on":"x","goToQuestionId":"nowhere"}}]}]}`
	s, issues, err := f.surveys.Import(ctx, []byte(body))
	require.NoError(t, err)
	assert.Equal(t, "new", s.ID)
	assert.Len(t, issues, 2) // no options, unknown target

	stored, err := f.surveys.GetByID(ctx, "new")
	require.NoError(t, err)
	assert.Equal(t, "New", stored.Title)

	_, _, err = f.surveys.Import(ctx, []byte(`{"id":"feedback","title":"x","sections":[]}`))
	assert.ErrorIs(t, err, ErrSurveyReadOnly)

	_, _, err = f.surveys.Import(ctx, []byte(`{"id":"x"}`))
	assert.ErrorIs(t, err, surveydef.ErrInvalidSurvey)
}

func TestSurveyService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.surveyRepo.Save(ctx, &model.Survey{ID: "imported", Title: "Imported"}))

	assert.ErrorIs(t, f.surveys.Delete(ctx, "feedback"), ErrSurveyReadOnly)
	assert.ErrorIs(t, f.surveys.Delete(ctx, "missing"), ErrSurveyNotFound)

	require.NoError(t, f.surveys.Delete(ctx, "imported"))
	_, err := f.surveys.GetByID(ctx, "imported")
	assert.ErrorIs(t, err, ErrSurveyNotFound)
	assert.ErrorIs(t, f.surveys.Delete(ctx, "imported"), ErrSurveyNotFound)

	_, err = f.surveys.GetByID(ctx, "feedback")
	require.NoError(t, err)
}

func TestSurveyService_Visibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	v, err := f.surveys.Visibility(ctx, "feedback", model.Answers{"role": model.SingleAnswer("Other")})
	require.NoError(t, err)
	assert.Equal(t, []string{"role", "extra"}, v.VisibleQuestionIDs)
	require.Len(t, v.Sections, 2)
	assert.Equal(t, "S3", v.Sections[1].ID)
	assert.True(t, v.Complete)
	assert.Empty(t, v.Errors)

	v, err = f.surveys.Visibility(ctx, "feedback", model.Answers{"role": model.SingleAnswer("Dev")})
	require.NoError(t, err)
	assert.Equal(t, []string{"role", "tools", "notes", "extra"}, v.VisibleQuestionIDs)
	assert.False(t, v.Complete)
	assert.Contains(t, v.Errors, "tools")

	_, err = f.surveys.Visibility(ctx, "missing", nil)
	assert.ErrorIs(t, err, ErrSurveyNotFound)
}
