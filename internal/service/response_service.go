package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"surveyflow/internal/branching"
	"surveyflow/internal/model"
	"surveyflow/internal/repository"
)

// ResponseService validates and persists completed answer sets
type ResponseService struct {
	surveys      *SurveyService
	responseRepo repository.ResponseRepo
	logger       *zap.Logger
}

// NewResponseService creates a new response service
func NewResponseService(surveys *SurveyService, responseRepo repository.ResponseRepo, logger *zap.Logger) *ResponseService {
	return &ResponseService{
		surveys:      surveys,
		responseRepo: responseRepo,
		logger:       logger,
	}
}

// Submission is a completed answer set handed over for persistence
type Submission struct {
	SurveyID  string
	Answers   model.Answers
	Client    model.ClientMetadata
	StartedAt *time.Time
}

// Submit checks the survey exists and every visible required question is answered, then stores
// all answers in one transaction. A failed check returns branching.ValidationErrors.
func (s *ResponseService) Submit(ctx context.Context, sub Submission) (string, error) {
	if sub.SurveyID == "" {
		return "", fmt.Errorf("%w: surveyId is required", ErrInvalidInput)
	}
	survey, err := s.surveys.GetByID(ctx, sub.SurveyID)
	if err != nil {
		return "", err
	}
	if errs := branching.ValidateVisible(survey, sub.Answers); errs != nil {
		return "", errs
	}

	resp := &model.Response{
		SurveyID:  survey.ID,
		StartedAt: sub.StartedAt,
		IPAddress: sub.Client.Address,
		UserAgent: sub.Client.Agent,
		Answers:   orderAnswers(survey, sub.Answers),
	}
	id, err := s.responseRepo.Create(ctx, resp)
	if err != nil {
		s.logger.Error("failed to persist response", zap.String("surveyId", survey.ID), zap.Error(err))
		return "", err
	}

	s.logger.Info("response submitted",
		zap.String("surveyId", survey.ID),
		zap.String("responseId", id),
		zap.Int("answers", len(resp.Answers)))
	return id, nil
}

// List returns the stored responses of a survey, newest first
func (s *ResponseService) List(ctx context.Context, surveyID string, withAnswers bool) ([]*model.Response, error) {
	responses, err := s.responseRepo.ListBySurvey(ctx, surveyID, withAnswers)
	if err != nil {
		return nil, err
	}
	if responses == nil {
		responses = []*model.Response{}
	}
	return responses, nil
}

// Get returns one response with its answers or ErrResponseNotFound
func (s *ResponseService) Get(ctx context.Context, id string) (*model.Response, error) {
	resp, err := s.responseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("%w: %s", ErrResponseNotFound, id)
	}
	return resp, nil
}

// orderAnswers lays answers out in survey document order; ids the survey does not know follow, sorted.
// Absent answers are dropped.
func orderAnswers(survey *model.Survey, answers model.Answers) []model.ResponseAnswer {
	out := make([]model.ResponseAnswer, 0, len(answers))
	known := map[string]bool{}
	for _, q := range survey.Questions() {
		known[q.ID] = true
		if a, ok := answers[q.ID]; ok && a.IsPresent() {
			out = append(out, model.ResponseAnswer{QuestionID: q.ID, Value: a.Stored()})
		}
	}
	var extra []string
	for id, a := range answers {
		if !known[id] && a.IsPresent() {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	for _, id := range extra {
		out = append(out, model.ResponseAnswer{QuestionID: id, Value: answers[id].Stored()})
	}
	return out
}
