package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveyflow/internal/model"
)

func TestWriteCSV(t *testing.T) {
	completed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	responses := []*model.Response{
		{
			ID:          "r1",
			CompletedAt: &completed,
			Answers: []model.ResponseAnswer{
				{QuestionID: "tools", Value: `["a","b"]`},
				{QuestionID: "role", Value: "Dev"},
				{QuestionID: "legacy", Value: "old"},
			},
		},
		{
			ID: "r2",
			Answers: []model.ResponseAnswer{
				{QuestionID: "notes", Value: "line one\nline \"two\""},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, feedbackSurvey(), responses, ExportOptions{}))

	want := strings.Join([]string{
		"Response ID,Completed At,role,tools,notes,extra,legacy",
		"r1,2026-03-01T12:00:00Z,Dev,a; b,,,old",
		`r2,,,,"line one line ""two""",,`,
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_HeaderText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, feedbackSurvey(), nil, ExportOptions{HeaderText: true}))
	assert.Equal(t, "Response ID,Completed At,Your role?,Tools?,Notes more,Anything else?\n", buf.String())
}

func TestWriteCSV_NoSurvey(t *testing.T) {
	responses := []*model.Response{
		{ID: "r1", Answers: []model.ResponseAnswer{{QuestionID: "b", Value: "1"}, {QuestionID: "a", Value: "2"}}},
		{ID: "r2", Answers: []model.ResponseAnswer{{QuestionID: "c", Value: "3"}}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil, responses, ExportOptions{HeaderText: true}))
	assert.Equal(t, "Response ID,Completed At,b,a,c\nr1,,1,2,\nr2,,,,3\n", buf.String())
}

func TestExportService_Export(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, role := range []string{"Other", "Dev"} {
		answers := model.Answers{"role": model.SingleAnswer(role)}
		if role == "Dev" {
			answers["tools"] = model.MultiAnswer("a")
		}
		_, err := f.responses.Submit(ctx, Submission{SurveyID: "feedback", Answers: answers})
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	require.NoError(t, f.exports.Export(ctx, "feedback", &buf, ExportOptions{}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	// oldest first
	assert.True(t, strings.HasPrefix(lines[1], "resp-1,"))
	assert.Contains(t, lines[1], ",Other,")
	assert.Contains(t, lines[2], ",Dev,a,")

	err := f.exports.Export(ctx, "missing", &buf, ExportOptions{})
	assert.ErrorIs(t, err, ErrSurveyNotFound)
}
