package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelsCommand_Table(t *testing.T) {
	var buf bytes.Buffer
	cmd := newModelsCommand()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "NAME")
	assert.Contains(t, output, "big_five_snapshot")
	assert.Contains(t, output, "attachment_trust")
	assert.Contains(t, output, "collaboration_style")
	assert.Contains(t, output, "extraversion")
	assert.Contains(t, output, "trust_propensity")

	// Questions are not printed by default.
	assert.NotContains(t, output, "1.")
}

func TestModelsCommand_Questions(t *testing.T) {
	var buf bytes.Buffer
	cmd := newModelsCommand()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--questions"})
	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "=== Big Five Snapshot ===")
	assert.Contains(t, output, "=== Attachment & Trust ===")
	assert.Contains(t, output, "=== Collaboration Style ===")
	assert.Contains(t, output, "(reverse scored)")
	assert.Contains(t, output, "  1. ")
	assert.Contains(t, output, "  20. ")
}

func TestModelsCommand_JSON(t *testing.T) {
	var buf bytes.Buffer
	cmd := newModelsCommand()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--format", "json"})
	require.NoError(t, cmd.Execute())

	var models []modelJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &models))
	require.Len(t, models, 3)

	byName := make(map[string]modelJSON, len(models))
	for _, m := range models {
		byName[m.Name] = m
	}

	bigFive, ok := byName["big_five_snapshot"]
	require.True(t, ok)
	assert.Equal(t, 20, bigFive.ItemCount)
	assert.Len(t, bigFive.Questions, 20)
	assert.Equal(t, []string{
		"extraversion", "agreeableness", "conscientiousness",
		"emotional_stability", "openness",
	}, bigFive.Subscales)

	attachment, ok := byName["attachment_trust"]
	require.True(t, ok)
	assert.Equal(t, 8, attachment.ItemCount)
	for _, q := range attachment.Questions {
		assert.False(t, q.Reverse)
	}
}

func TestModelsCommand_RejectsArgs(t *testing.T) {
	cmd := newModelsCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"extra"})
	require.Error(t, cmd.Execute())
}

func TestPrintTable_Alignment(t *testing.T) {
	var buf bytes.Buffer
	printTable(&buf, []string{"NAME", "ITEMS"}, [][]string{
		{"short", "1"},
		{"a_much_longer_name", "20"},
	})

	lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
	require.Len(t, lines, 3)

	// Every ITEMS cell starts at the same column.
	col := bytes.Index(lines[1], []byte("1"))
	assert.Equal(t, col, bytes.Index(lines[2], []byte("20")))
}
