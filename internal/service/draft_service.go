package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"surveyflow/internal/cache"
	"surveyflow/internal/model"
)

// DraftService keeps in-progress answer sets between requests
type DraftService struct {
	surveys   *SurveyService
	responses *ResponseService
	drafts    cache.DraftCache
	logger    *zap.Logger
}

// NewDraftService creates a new draft service
func NewDraftService(surveys *SurveyService, responses *ResponseService, drafts cache.DraftCache, logger *zap.Logger) *DraftService {
	return &DraftService{
		surveys:   surveys,
		responses: responses,
		drafts:    drafts,
		logger:    logger,
	}
}

// Create starts a draft for an existing survey
func (s *DraftService) Create(ctx context.Context, surveyID string, answers model.Answers) (*model.Draft, error) {
	if _, err := s.surveys.GetByID(ctx, surveyID); err != nil {
		return nil, err
	}
	if answers == nil {
		answers = model.Answers{}
	}
	now := time.Now().UTC()
	draft := &model.Draft{
		ID:        uuid.NewString(),
		SurveyID:  surveyID,
		Answers:   answers,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Get returns the draft or ErrDraftNotFound
func (s *DraftService) Get(ctx context.Context, id string) (*model.Draft, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, fmt.Errorf("%w: %s", ErrDraftNotFound, id)
	}
	return draft, nil
}

// Update replaces the draft's answers
func (s *DraftService) Update(ctx context.Context, id string, answers model.Answers) (*model.Draft, error) {
	draft, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if answers == nil {
		answers = model.Answers{}
	}
	draft.Answers = answers
	draft.UpdatedAt = time.Now().UTC()
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Delete discards the draft
func (s *DraftService) Delete(ctx context.Context, id string) error {
	return s.drafts.Delete(ctx, id)
}

// Visibility evaluates the draft's current answers
func (s *DraftService) Visibility(ctx context.Context, id string) (*Visibility, error) {
	draft, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.surveys.Visibility(ctx, draft.SurveyID, draft.Answers)
}

// Submit persists the draft as a response and then discards it
func (s *DraftService) Submit(ctx context.Context, id string, client model.ClientMetadata) (string, error) {
	draft, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	started := draft.CreatedAt
	responseID, err := s.responses.Submit(ctx, Submission{
		SurveyID:  draft.SurveyID,
		Answers:   draft.Answers,
		Client:    client,
		StartedAt: &started,
	})
	if err != nil {
		return "", err
	}
	if err := s.drafts.Delete(ctx, id); err != nil {
		s.logger.Warn("failed to discard submitted draft", zap.String("draftId", id), zap.Error(err))
	}
	return responseID, nil
}
