package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveyflow/internal/model"
)

func TestRegistry(t *testing.T) {
	r, err := New(
		&model.Survey{ID: "b", Title: "B"},
		&model.Survey{ID: "a", Title: "A", Description: "first"},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())

	s, err := r.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "A", s.Title)
	assert.True(t, r.Has("b"))

	_, err = r.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, []model.SurveySummary{
		{ID: "b", Title: "B"},
		{ID: "a", Title: "A", Description: "first"},
	}, r.List())
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	_, err := New(&model.Survey{ID: "a"}, &model.Survey{ID: "a"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestRegistry_Empty(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	assert.Empty(t, r.List())
	_, err = r.Get("x")
	assert.ErrorIs(t, err, ErrNotFound)
}
