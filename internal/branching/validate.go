package branching

import (
	"errors"
	"sort"
	"strings"

	"surveyflow/internal/model"
)

// ErrRequired is wrapped by every RequiredError
var ErrRequired = errors.New("answer required")

// RequiredError reports a required question left unanswered
type RequiredError struct {
	QuestionID string
	Message    string
}

func (e *RequiredError) Error() string {
	return e.QuestionID + ": " + e.Message
}

func (e *RequiredError) Unwrap() error { return ErrRequired }

// Validate checks answer against q. Only the required rule is enforced.
func Validate(q *model.Question, answer model.AnswerValue) error {
	if !q.Required || !answer.IsBlank() {
		return nil
	}
	msg := "This field is required"
	if answer.IsList() {
		msg = "Please select at least one option"
	}
	return &RequiredError{QuestionID: q.ID, Message: msg}
}

// ValidationErrors maps question id to its error message
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	ids := make([]string, 0, len(v))
	for id := range v {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return "missing required answers: " + strings.Join(ids, ", ")
}

// ValidateVisible validates every currently visible question.
// Hidden questions are never required. Returns nil when all visible questions pass.
func ValidateVisible(survey *model.Survey, answers model.Answers) ValidationErrors {
	var errs ValidationErrors
	walk(survey, answers, func(q *model.Question, visible bool) {
		if !visible {
			return
		}
		var re *RequiredError
		if err := Validate(q, answers[q.ID]); errors.As(err, &re) {
			if errs == nil {
				errs = ValidationErrors{}
			}
			errs[q.ID] = re.Message
		}
	})
	return errs
}
