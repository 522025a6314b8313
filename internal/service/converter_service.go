package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"surveyflow/internal/model"
	"surveyflow/internal/surveydef"
)

var (
	// ErrConversion is wrapped by every ConversionError
	ErrConversion = errors.New("survey conversion failed")
	// ErrConversionDisabled is returned when no model is configured
	ErrConversionDisabled = errors.New("survey conversion is not configured")
)

// ConversionError describes why model output could not become a survey
type ConversionError struct {
	Reason string
	Err    error
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("survey conversion failed: %s: %v", e.Reason, e.Err)
	}
	return "survey conversion failed: " + e.Reason
}

func (e *ConversionError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrConversion, e.Err}
	}
	return []error{ErrConversion}
}

// Generator returns the model's text completion for prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// MinSurveyTextLen is the shortest survey text accepted for conversion
const MinSurveyTextLen = 10

// ConverterService turns free-form questionnaire text into a survey definition
type ConverterService struct {
	generator Generator
	timeout   time.Duration
	logger    *zap.Logger
}

// NewConverterService creates a converter. A nil generator disables conversion.
func NewConverterService(generator Generator, timeout time.Duration, logger *zap.Logger) *ConverterService {
	return &ConverterService{
		generator: generator,
		timeout:   timeout,
		logger:    logger,
	}
}

// Enabled reports whether a model is configured
func (s *ConverterService) Enabled() bool { return s.generator != nil }

// Convert asks the model for a survey and accepts it only if it parses as a complete definition.
// When surveyID is given the result must carry it.
func (s *ConverterService) Convert(ctx context.Context, text, surveyID string) (*model.Survey, error) {
	if len(strings.TrimSpace(text)) < MinSurveyTextLen {
		return nil, fmt.Errorf("%w: survey text must be at least %d characters", ErrInvalidInput, MinSurveyTextLen)
	}
	if s.generator == nil {
		return nil, ErrConversionDisabled
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	started := time.Now()
	out, err := s.generator.Generate(ctx, buildConversionPrompt(text, surveyID))
	if err != nil {
		s.logger.Warn("survey conversion call failed", zap.Error(err))
		return nil, &ConversionError{Reason: "model call failed", Err: err}
	}

	survey, err := surveydef.ParseJSON([]byte(stripCodeFence(out)))
	if err != nil {
		s.logger.Warn("model returned an invalid survey", zap.Error(err), zap.Int("outputLen", len(out)))
		return nil, &ConversionError{Reason: "model output is not a valid survey", Err: err}
	}
	if surveyID != "" && survey.ID != surveyID {
		return nil, &ConversionError{Reason: fmt.Sprintf("model returned survey id %q, expected %q", survey.ID, surveyID)}
	}

	s.logger.Info("survey converted",
		zap.String("surveyId", survey.ID),
		zap.Int("sections", len(survey.Sections)),
		zap.Duration("took", time.Since(started)))
	return survey, nil
}

// stripCodeFence removes a surrounding ``` or ```json fence
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func buildConversionPrompt(text, surveyID string) string {
	idRule := "Generate a unique survey ID using kebab-case"
	if surveyID != "" {
		idRule = "Use this survey ID: " + surveyID
	}
	return fmt.Sprintf(`You are a survey conversion expert. Convert the following survey text into JSON with this shape:

{
  "id": string,
  "title": string,
  "description": string,
  "sections": [{
    "id": string,
    "title": string,
    "description": string (optional),
    "questions": [{
      "id": string,
      "type": "multiple-choice" | "checkboxes" | "short-answer" | "paragraph",
      "text": string,
      "options": [string] (multiple-choice and checkboxes only),
      "placeholder": string (optional),
      "required": boolean (optional),
      "hint": string (optional),
      "logic": {"on": string or [string], "goToQuestionId": string, "skipToSectionId": string} (optional)
    }]
  }]
}

Rules:
1. Use unique kebab-case IDs (e.g. "role-scope", "primary-role"); question IDs must be unique across the survey.
2. Take the title and description from the text.
3. Group questions into logical sections.
4. Question types: "Multiple choice" or "Select one" -> multiple-choice; "Checkboxes" or "Select all" -> checkboxes;
   "Short answer" or "Text input" -> short-answer; "Paragraph" or "Long answer" -> paragraph.
5. List the options of multiple-choice and checkboxes questions.
6. Mark required questions when indicated.
7. Branching like "If Yes, go to Question 15" becomes logic {"on": "Yes", "goToQuestionId": "<id of question 15>"}.
   Targets must come later in the survey than the question carrying the rule.
8. Keep hints and placeholders where provided.

Survey Text:
%s

%s

Return ONLY the JSON object.`, text, idRule)
}
