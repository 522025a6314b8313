package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"surveyflow/internal/registry"
)

const lintySurvey = `id: linty
title: Linty
sections:
  - id: s1
    title: One
    questions:
      - id: pick
        type: multiple-choice
        text: Pick one
`

func TestLoadRegistry_BundledSurveys(t *testing.T) {
	reg, err := LoadRegistry("../../surveys", zap.NewNop())
	require.NoError(t, err)
	assert.True(t, reg.Has("panaya-marketing-ops-survey"))
	assert.True(t, reg.Has("tooling-feedback"))
}

func TestLoadRegistry_LogsLintIssues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "linty.yaml"), []byte(lintySurvey), 0o644))

	core, logs := observer.New(zap.WarnLevel)
	reg, err := LoadRegistry(dir, zap.New(core))
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())

	entries := logs.FilterMessage("survey definition issue").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "linty", entries[0].ContextMap()["surveyId"])
}

func TestLoadRegistry_DuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(lintySurvey), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(lintySurvey), 0o644))

	_, err := LoadRegistry(dir, zap.NewNop())
	assert.ErrorIs(t, err, registry.ErrDuplicate)
}
