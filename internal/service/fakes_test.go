package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"surveyflow/internal/model"
	"surveyflow/internal/registry"
)

type fakeSurveyRepo struct {
	mu      sync.Mutex
	surveys map[string]*model.Survey
	order   []string
	err     error
}

func newFakeSurveyRepo() *fakeSurveyRepo {
	return &fakeSurveyRepo{surveys: map[string]*model.Survey{}}
}

func (r *fakeSurveyRepo) Save(ctx context.Context, s *model.Survey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.surveys[s.ID]; !ok {
		r.order = append(r.order, s.ID)
	}
	r.surveys[s.ID] = s
	return nil
}

func (r *fakeSurveyRepo) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.surveys[id], r.err
}

func (r *fakeSurveyRepo) List(ctx context.Context) ([]*model.Survey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Survey
	for _, id := range r.order {
		out = append(out, r.surveys[id])
	}
	return out, r.err
}

func (r *fakeSurveyRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.surveys, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeResponseRepo struct {
	mu        sync.Mutex
	responses []*model.Response
	createErr error
	nextID    int
}

func (r *fakeResponseRepo) Migrate(ctx context.Context) error { return nil }

func (r *fakeResponseRepo) Create(ctx context.Context, resp *model.Response) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return "", r.createErr
	}
	r.nextID++
	now := time.Date(2026, 1, 2, 3, 4, r.nextID, 0, time.UTC)
	resp.ID = "resp-" + string(rune('0'+r.nextID))
	resp.CreatedAt = now
	resp.CompletedAt = &now
	resp.AnswerCount = len(resp.Answers)
	r.responses = append(r.responses, resp)
	return resp.ID, nil
}

func (r *fakeResponseRepo) ListBySurvey(ctx context.Context, surveyID string, withAnswers bool) ([]*model.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Response
	for i := len(r.responses) - 1; i >= 0; i-- {
		resp := *r.responses[i]
		if resp.SurveyID != surveyID {
			continue
		}
		if !withAnswers {
			resp.Answers = nil
		}
		out = append(out, &resp)
	}
	return out, nil
}

func (r *fakeResponseRepo) GetByID(ctx context.Context, id string) (*model.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, resp := range r.responses {
		if resp.ID == id {
			return resp, nil
		}
	}
	return nil, nil
}

type fakeDraftCache struct {
	mu     sync.Mutex
	drafts map[string]model.Draft
}

func newFakeDraftCache() *fakeDraftCache {
	return &fakeDraftCache{drafts: map[string]model.Draft{}}
}

func (c *fakeDraftCache) Save(ctx context.Context, d *model.Draft) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drafts[d.ID] = *d
	return nil
}

func (c *fakeDraftCache) Get(ctx context.Context, id string) (*model.Draft, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.drafts[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (c *fakeDraftCache) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.drafts, id)
	return nil
}

type fakeGenerator struct {
	out    string
	err    error
	prompt string
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.out, g.err
}

var errBoom = errors.New("boom")

// feedbackSurvey: S1=[role(required, "Other" -> skip to S3)], S2=[tools(required checkboxes), notes], S3=[extra]
func feedbackSurvey() *model.Survey {
	return &model.Survey{
		ID:    "feedback",
		Title: "Feedback",
		Sections: []model.Section{
			{ID: "S1", Title: "Role", Questions: []model.Question{
				{ID: "role", Type: model.QuestionTypeSingleSelect, Text: "Your role?", Options: []string{"Dev", "Other"}, Required: true,
					Logic: &model.LogicRule{On: model.On("Other"), SkipToSectionID: "S3"}},
			}},
			{ID: "S2", Title: "Tools", Questions: []model.Question{
				{ID: "tools", Type: model.QuestionTypeMultiSelect, Text: "Tools?", Options: []string{"a", "b"}, Required: true},
				{ID: "notes", Type: model.QuestionTypeLongText, Text: "Notes\nmore"},
			}},
			{ID: "S3", Title: "End", Questions: []model.Question{
				{ID: "extra", Type: model.QuestionTypeShortText, Text: "Anything else?"},
			}},
		},
	}
}

type fixture struct {
	surveyRepo   *fakeSurveyRepo
	responseRepo *fakeResponseRepo
	drafts       *fakeDraftCache
	surveys      *SurveyService
	responses    *ResponseService
	exports      *ExportService
	draftSvc     *DraftService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	reg, err := registry.New(feedbackSurvey())
	require.NoError(t, err)
	logger := zap.NewNop()

	f := &fixture{
		surveyRepo:   newFakeSurveyRepo(),
		responseRepo: &fakeResponseRepo{},
		drafts:       newFakeDraftCache(),
	}
	f.surveys = NewSurveyService(reg, f.surveyRepo, logger)
	f.responses = NewResponseService(f.surveys, f.responseRepo, logger)
	f.exports = NewExportService(f.surveys, f.responseRepo)
	f.draftSvc = NewDraftService(f.surveys, f.responses, f.drafts, logger)
	return f
}
