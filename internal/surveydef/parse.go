// Package surveydef turns survey definition documents into validated model.Survey values.
package surveydef

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"surveyflow/internal/model"
)

// ErrInvalidSurvey is wrapped by every ParseError
var ErrInvalidSurvey = errors.New("invalid survey definition")

// ParseError locates the first structural problem in a definition
type ParseError struct {
	Path   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return "invalid survey definition: " + e.Reason
	}
	return fmt.Sprintf("invalid survey definition: %s: %s", e.Path, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrInvalidSurvey }

// shape records which collection fields were actually present in the document
type shape struct {
	Sections *[]struct {
		Questions *[]struct{} `json:"questions" yaml:"questions"`
	} `json:"sections" yaml:"sections"`
}

// ParseJSON decodes and checks a JSON survey definition
func ParseJSON(data []byte) (*model.Survey, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil, &ParseError{Reason: "document must be a JSON object"}
	}
	var sh shape
	if err := json.Unmarshal(data, &sh); err != nil {
		return nil, &ParseError{Reason: jsonReason(err)}
	}
	var survey model.Survey
	if err := json.Unmarshal(data, &survey); err != nil {
		return nil, &ParseError{Reason: jsonReason(err)}
	}
	if err := check(&survey, &sh); err != nil {
		return nil, err
	}
	return &survey, nil
}

// ParseYAML decodes and checks a YAML survey definition
func ParseYAML(data []byte) (*model.Survey, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}
	if len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil, &ParseError{Reason: "document must be a mapping"}
	}
	var sh shape
	if err := root.Decode(&sh); err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}
	var survey model.Survey
	if err := root.Decode(&survey); err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}
	if err := check(&survey, &sh); err != nil {
		return nil, err
	}
	return &survey, nil
}

func jsonReason(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("%s: expected %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value)
	}
	return err.Error()
}

func check(s *model.Survey, sh *shape) error {
	if s.ID == "" {
		return &ParseError{Path: "id", Reason: "is required"}
	}
	if s.Title == "" {
		return &ParseError{Path: "title", Reason: "is required"}
	}
	if sh.Sections == nil {
		return &ParseError{Path: "sections", Reason: "must be an array"}
	}
	for i, sec := range s.Sections {
		path := fmt.Sprintf("sections[%d]", i)
		if sec.ID == "" {
			return &ParseError{Path: path + ".id", Reason: "is required"}
		}
		if sec.Title == "" {
			return &ParseError{Path: path + ".title", Reason: "is required"}
		}
		if (*sh.Sections)[i].Questions == nil {
			return &ParseError{Path: path + ".questions", Reason: "must be an array"}
		}
		for j, q := range sec.Questions {
			qpath := fmt.Sprintf("%s.questions[%d]", path, j)
			if q.ID == "" {
				return &ParseError{Path: qpath + ".id", Reason: "is required"}
			}
			if !q.Type.Valid() {
				return &ParseError{Path: qpath + ".type", Reason: fmt.Sprintf("unknown question type %q", q.Type)}
			}
			if q.Text == "" {
				return &ParseError{Path: qpath + ".text", Reason: "is required"}
			}
		}
	}
	return nil
}
