package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"surveyflow/internal/branching"
	"surveyflow/internal/model"
	"surveyflow/internal/registry"
	"surveyflow/internal/repository"
	"surveyflow/internal/surveydef"
)

// SurveyService resolves survey ids against the bundled registry first, then the imported survey store
type SurveyService struct {
	registry   *registry.Registry
	surveyRepo repository.SurveyRepo
	logger     *zap.Logger
}

// NewSurveyService creates a new survey service
func NewSurveyService(reg *registry.Registry, surveyRepo repository.SurveyRepo, logger *zap.Logger) *SurveyService {
	return &SurveyService{
		registry:   reg,
		surveyRepo: surveyRepo,
		logger:     logger,
	}
}

// Visibility is the evaluated state of one answer set
type Visibility struct {
	SurveyID           string                     `json:"surveyId"`
	VisibleQuestionIDs []string                   `json:"visibleQuestionIds"`
	Sections           []model.Section            `json:"sections"`
	Errors             branching.ValidationErrors `json:"errors,omitempty"`
	Complete           bool                       `json:"complete"`
}

// GetByID returns the survey or ErrSurveyNotFound
func (s *SurveyService) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	if survey, err := s.registry.Get(id); err == nil {
		return survey, nil
	}
	survey, err := s.surveyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, fmt.Errorf("%w: %s", ErrSurveyNotFound, id)
	}
	return survey, nil
}

// List returns bundled surveys followed by imported ones
func (s *SurveyService) List(ctx context.Context) ([]model.SurveySummary, error) {
	summaries := s.registry.List()
	imported, err := s.surveyRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, survey := range imported {
		if s.registry.Has(survey.ID) {
			continue
		}
		summaries = append(summaries, survey.Summary())
	}
	return summaries, nil
}

// Import parses a JSON definition and stores it. Lint findings are returned, not enforced.
func (s *SurveyService) Import(ctx context.Context, data []byte) (*model.Survey, []surveydef.Issue, error) {
	survey, err := surveydef.ParseJSON(data)
	if err != nil {
		return nil, nil, err
	}
	if s.registry.Has(survey.ID) {
		return nil, nil, fmt.Errorf("%w: %s", ErrSurveyReadOnly, survey.ID)
	}
	issues := surveydef.Lint(survey)
	if err := s.surveyRepo.Save(ctx, survey); err != nil {
		return nil, nil, err
	}
	s.logger.Info("survey imported",
		zap.String("surveyId", survey.ID),
		zap.Int("sections", len(survey.Sections)),
		zap.Int("issues", len(issues)))
	return survey, issues, nil
}

// Delete removes an imported survey. Bundled surveys cannot be deleted.
// Stored responses are kept and still export.
func (s *SurveyService) Delete(ctx context.Context, id string) error {
	if s.registry.Has(id) {
		return fmt.Errorf("%w: %s", ErrSurveyReadOnly, id)
	}
	survey, err := s.surveyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if survey == nil {
		return fmt.Errorf("%w: %s", ErrSurveyNotFound, id)
	}
	if err := s.surveyRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("survey deleted", zap.String("surveyId", id))
	return nil
}

// Visibility evaluates which questions are shown for answers and which visible required ones are missing
func (s *SurveyService) Visibility(ctx context.Context, surveyID string, answers model.Answers) (*Visibility, error) {
	survey, err := s.GetByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	return Evaluate(survey, answers), nil
}

// Evaluate computes the visibility state of answers against survey
func Evaluate(survey *model.Survey, answers model.Answers) *Visibility {
	errs := branching.ValidateVisible(survey, answers)
	return &Visibility{
		SurveyID:           survey.ID,
		VisibleQuestionIDs: branching.VisibleQuestionIDs(survey, answers),
		Sections:           branching.FilterSections(survey, answers),
		Errors:             errs,
		Complete:           len(errs) == 0,
	}
}
