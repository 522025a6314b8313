package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"surveyflow/internal/model"
)

// ResponseRepo persists completed responses in PostgreSQL
type ResponseRepo interface {
	Migrate(ctx context.Context) error
	Create(ctx context.Context, resp *model.Response) (string, error)
	ListBySurvey(ctx context.Context, surveyID string, withAnswers bool) ([]*model.Response, error)
	GetByID(ctx context.Context, id string) (*model.Response, error)
}

type responseRepo struct {
	db *pgxpool.Pool
}

// NewResponseRepo creates a new response repository
func NewResponseRepo(db *pgxpool.Pool) ResponseRepo {
	return &responseRepo{db: db}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS survey_responses (
		id UUID PRIMARY KEY,
		survey_id VARCHAR(255) NOT NULL,
		started_at TIMESTAMP,
		completed_at TIMESTAMP,
		ip_address VARCHAR(45),
		user_agent TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS survey_response_answers (
		id UUID PRIMARY KEY,
		response_id UUID NOT NULL REFERENCES survey_responses(id) ON DELETE CASCADE,
		question_id VARCHAR(255) NOT NULL,
		answer_value TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_survey_responses_survey_id ON survey_responses(survey_id)`,
	`CREATE INDEX IF NOT EXISTS idx_survey_responses_created_at ON survey_responses(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_response_answers_response_id ON survey_response_answers(response_id)`,
	`CREATE INDEX IF NOT EXISTS idx_response_answers_question_id ON survey_response_answers(question_id)`,
}

// Migrate creates the response tables and indexes when missing
func (r *responseRepo) Migrate(ctx context.Context) error {
	const op = "repository.Migrate"
	for _, stmt := range schema {
		if _, err := r.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

// Create writes the response row and all its answers in one transaction and returns the new id.
// resp.Answers are stored in slice order.
func (r *responseRepo) Create(ctx context.Context, resp *model.Response) (string, error) {
	const op = "repository.Create"
	id := uuid.NewString()

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO survey_responses (id, survey_id, started_at, completed_at, ip_address, user_agent)
			VALUES ($1, $2, $3, CURRENT_TIMESTAMP, $4, $5)
		`, id, resp.SurveyID, resp.StartedAt, resp.IPAddress, resp.UserAgent)
		if err != nil {
			return fmt.Errorf("failed to insert response: %w", err)
		}

		batch := &pgx.Batch{}
		for i, a := range resp.Answers {
			batch.Queue(`
				INSERT INTO survey_response_answers (id, response_id, question_id, answer_value, position)
				VALUES ($1, $2, $3, $4, $5)
			`, uuid.NewString(), id, a.QuestionID, a.Value, i)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert answers: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	resp.ID = id
	resp.AnswerCount = len(resp.Answers)
	return id, nil
}

// ListBySurvey returns the responses of a survey, newest first
func (r *responseRepo) ListBySurvey(ctx context.Context, surveyID string, withAnswers bool) ([]*model.Response, error) {
	const op = "repository.ListBySurvey"
	rows, err := r.db.Query(ctx, `
		SELECT sr.id::text, sr.survey_id, sr.started_at, sr.completed_at, sr.ip_address, sr.user_agent, sr.created_at,
		       COUNT(sra.id) AS answer_count
		FROM survey_responses sr
		LEFT JOIN survey_response_answers sra ON sr.id = sra.response_id
		WHERE sr.survey_id = $1
		GROUP BY sr.id
		ORDER BY sr.created_at DESC
	`, surveyID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query responses: %w", op, err)
	}
	defer rows.Close()

	var responses []*model.Response
	byID := map[string]*model.Response{}
	for rows.Next() {
		resp, err := scanResponse(rows, true)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		responses = append(responses, resp)
		byID[resp.ID] = resp
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: failed to iterate over rows: %w", op, err)
	}

	if !withAnswers || len(responses) == 0 {
		return responses, nil
	}

	ids := make([]string, 0, len(responses))
	for _, resp := range responses {
		ids = append(ids, resp.ID)
	}
	answerRows, err := r.db.Query(ctx, `
		SELECT response_id::text, question_id, answer_value, created_at
		FROM survey_response_answers
		WHERE response_id::text = ANY($1)
		ORDER BY response_id, position, created_at
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query answers: %w", op, err)
	}
	defer answerRows.Close()

	for answerRows.Next() {
		var responseID string
		var a model.ResponseAnswer
		if err := answerRows.Scan(&responseID, &a.QuestionID, &a.Value, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: failed to scan answer: %w", op, err)
		}
		if resp, ok := byID[responseID]; ok {
			resp.Answers = append(resp.Answers, a)
		}
	}
	if err := answerRows.Err(); err != nil {
		return nil, fmt.Errorf("%s: failed to iterate over answers: %w", op, err)
	}
	return responses, nil
}

// GetByID returns the response with its ordered answers, or nil when it does not exist
func (r *responseRepo) GetByID(ctx context.Context, id string) (*model.Response, error) {
	const op = "repository.GetByID"
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	row := r.db.QueryRow(ctx, `
		SELECT id::text, survey_id, started_at, completed_at, ip_address, user_agent, created_at
		FROM survey_responses WHERE id = $1
	`, id)
	resp, err := scanResponse(row, false)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT question_id, answer_value, created_at
		FROM survey_response_answers
		WHERE response_id = $1
		ORDER BY position, created_at
	`, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query answers: %w", op, err)
	}
	answers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.ResponseAnswer, error) {
		var a model.ResponseAnswer
		err := row.Scan(&a.QuestionID, &a.Value, &a.CreatedAt)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to scan answers: %w", op, err)
	}
	resp.Answers = answers
	resp.AnswerCount = len(answers)
	return resp, nil
}

func scanResponse(row pgx.Row, withCount bool) (*model.Response, error) {
	var (
		resp      model.Response
		ip, agent *string
		started   *time.Time
		completed *time.Time
		count     int64
	)
	dest := []any{&resp.ID, &resp.SurveyID, &started, &completed, &ip, &agent, &resp.CreatedAt}
	if withCount {
		dest = append(dest, &count)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	resp.StartedAt = started
	resp.CompletedAt = completed
	if ip != nil {
		resp.IPAddress = *ip
	}
	if agent != nil {
		resp.UserAgent = *agent
	}
	resp.AnswerCount = int(count)
	return &resp, nil
}
