package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBooks(t *testing.T) {
	books := generateBooks(500, 42)
	require.Len(t, books, 500)

	withDescription := 0
	for _, b := range books {
		assert.NotEmpty(t, b.Title)
		assert.NotEmpty(t, b.Author)
		assert.Contains(t, genres, b.Genre)
		assert.GreaterOrEqual(t, b.Rating, 0.0)
		assert.LessOrEqual(t, b.Rating, 5.0)
		assert.Zero(t, b.ID)
		if b.Description != nil {
			withDescription++
		}
	}
	assert.Greater(t, withDescription, 0)
	assert.Less(t, withDescription, len(books))
}

func TestGenerateBooks_Deterministic(t *testing.T) {
	assert.Equal(t, generateBooks(20, 7), generateBooks(20, 7))
	assert.NotEqual(t, generateBooks(20, 7), generateBooks(20, 8))
}

func TestRootCommand_RejectsNonPositiveCount(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"--count", "0"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count must be positive")
}
