package service

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"sort"
	"strings"
	"time"

	"surveyflow/internal/model"
	"surveyflow/internal/repository"
)

// ExportOptions controls CSV rendering
type ExportOptions struct {
	// HeaderText labels question columns with question text instead of question ids
	HeaderText bool
}

// ExportService renders stored responses as CSV
type ExportService struct {
	surveys      *SurveyService
	responseRepo repository.ResponseRepo
}

// NewExportService creates a new export service
func NewExportService(surveys *SurveyService, responseRepo repository.ResponseRepo) *ExportService {
	return &ExportService{
		surveys:      surveys,
		responseRepo: responseRepo,
	}
}

// Export writes every response of surveyID to w, oldest first.
// Responses of a survey that is no longer defined still export, with columns taken from the answers.
func (s *ExportService) Export(ctx context.Context, surveyID string, w io.Writer, opts ExportOptions) error {
	survey, err := s.surveys.GetByID(ctx, surveyID)
	if err != nil && !errors.Is(err, ErrSurveyNotFound) {
		return err
	}
	responses, err := s.responseRepo.ListBySurvey(ctx, surveyID, true)
	if err != nil {
		return err
	}
	if survey == nil && len(responses) == 0 {
		return ErrSurveyNotFound
	}
	sort.SliceStable(responses, func(i, j int) bool {
		return completedAt(responses[i]).Before(completedAt(responses[j]))
	})
	return WriteCSV(w, survey, responses, opts)
}

func completedAt(r *model.Response) time.Time {
	if r.CompletedAt != nil {
		return *r.CompletedAt
	}
	return r.CreatedAt
}

type column struct {
	id    string
	label string
}

// WriteCSV writes one row per response and one column per question. Survey questions come first in
// document order, then question ids only seen in responses. survey may be nil.
func WriteCSV(w io.Writer, survey *model.Survey, responses []*model.Response, opts ExportOptions) error {
	var columns []column
	seen := map[string]bool{}
	if survey != nil {
		for _, q := range survey.Questions() {
			if seen[q.ID] {
				continue
			}
			seen[q.ID] = true
			label := q.ID
			if opts.HeaderText && q.Text != "" {
				label = q.Text
			}
			columns = append(columns, column{id: q.ID, label: label})
		}
	}
	for _, r := range responses {
		for _, a := range r.Answers {
			if !seen[a.QuestionID] {
				seen[a.QuestionID] = true
				columns = append(columns, column{id: a.QuestionID, label: a.QuestionID})
			}
		}
	}

	cw := csv.NewWriter(w)
	header := []string{"Response ID", "Completed At"}
	for _, c := range columns {
		header = append(header, flatten(c.label))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range responses {
		completed := ""
		if r.CompletedAt != nil {
			completed = r.CompletedAt.UTC().Format(time.RFC3339)
		}
		row := []string{r.ID, completed}
		for _, c := range columns {
			cell := ""
			if a, ok := r.AnswerFor(c.id); ok {
				cell = flatten(a.Display())
			}
			row = append(row, cell)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var newlines = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", "")

func flatten(s string) string {
	return newlines.Replace(s)
}
