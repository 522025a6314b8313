package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestAnswersUnmarshalJSON(t *testing.T) {
	var answers Answers
	err := json.Unmarshal([]byte(`{"a":"Yes","b":["x","y"],"c":[],"d":null,"e":""}`), &answers)
	require.NoError(t, err)

	assert.True(t, answers["a"].Equal(SingleAnswer("Yes")))
	assert.True(t, answers["b"].Equal(MultiAnswer("x", "y")))
	assert.True(t, answers["c"].IsList())
	assert.True(t, answers["c"].IsPresent())
	assert.False(t, answers["d"].IsPresent())
	assert.True(t, answers["e"].IsPresent())
	assert.False(t, answers["missing"].IsPresent())
}

func TestAnswersUnmarshalJSON_RejectsOtherTypes(t *testing.T) {
	for _, body := range []string{`{"a":1}`, `{"a":true}`, `{"a":{"b":"c"}}`, `{"a":["x",2]}`, `{"a":["a",null]}`, `{"a":[null]}`} {
		var answers Answers
		assert.Error(t, json.Unmarshal([]byte(body), &answers), body)
	}
}

func TestAnswerValueStored(t *testing.T) {
	list := MultiAnswer("a", "b")
	assert.Equal(t, `["a","b"]`, list.Stored())
	assert.Equal(t, "a; b", list.Display())
	assert.True(t, ParseStored(list.Stored()).Equal(list))

	text := SingleAnswer("[not json")
	assert.Equal(t, "[not json", text.Stored())
	assert.True(t, ParseStored(text.Stored()).Equal(text))
}

func TestTriggerDecoding(t *testing.T) {
	var rule LogicRule
	require.NoError(t, json.Unmarshal([]byte(`{"on":"Yes","goToQuestionId":"q2"}`), &rule))
	assert.False(t, rule.On.IsSet())
	assert.Equal(t, []string{"Yes"}, rule.On.Values())

	require.NoError(t, json.Unmarshal([]byte(`{"on":["Yes","Maybe"],"skipToSectionId":"s2"}`), &rule))
	assert.True(t, rule.On.IsSet())
	assert.Equal(t, []string{"Yes", "Maybe"}, rule.On.Values())

	assert.Error(t, json.Unmarshal([]byte(`{"on":5}`), &rule))
	assert.Error(t, json.Unmarshal([]byte(`{"on":["x",null]}`), &rule))
	assert.Error(t, yaml.Unmarshal([]byte("on: [x, ~]\n"), &LogicRule{}))

	var fromYAML LogicRule
	require.NoError(t, yaml.Unmarshal([]byte("on: [Yes, Maybe]\ngoToQuestionId: q2\n"), &fromYAML))
	assert.Equal(t, []string{"Yes", "Maybe"}, fromYAML.On.Values())

	data, err := json.Marshal(LogicRule{On: On("No"), SkipToSectionID: "s3"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"on":"No","skipToSectionId":"s3"}`, string(data))
}
