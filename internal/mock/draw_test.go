package mock

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bankOf(sections map[string]int) []Question {
	var bank []Question
	id := int64(1)
	for section, count := range sections {
		for i := 0; i < count; i++ {
			bank = append(bank, Question{ID: id, Section: section})
			id++
		}
	}
	return bank
}

func TestDraw(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("stratified proportionally by section", func(t *testing.T) {
		bank := bankOf(map[string]int{"SrSec": 8, "Grad": 8, "Pedagogy": 4})
		picked, err := draw(rng, bank, 10)
		require.NoError(t, err)
		require.Len(t, picked, 10)

		bySection := map[string]int{}
		seen := map[int64]bool{}
		for _, question := range picked {
			bySection[question.Section]++
			assert.False(t, seen[question.ID], "question drawn twice")
			seen[question.ID] = true
		}
		assert.Equal(t, 4, bySection["SrSec"])
		assert.Equal(t, 4, bySection["Grad"])
		assert.Equal(t, 2, bySection["Pedagogy"])
	})

	t.Run("single section draws uniformly", func(t *testing.T) {
		bank := bankOf(map[string]int{"History": 10})
		picked, err := draw(rng, bank, 5)
		require.NoError(t, err)
		assert.Len(t, picked, 5)
	})

	t.Run("exact bank size takes everything", func(t *testing.T) {
		bank := bankOf(map[string]int{"SrSec": 3, "Grad": 2})
		picked, err := draw(rng, bank, 5)
		require.NoError(t, err)
		assert.Len(t, picked, 5)
	})

	t.Run("insufficient bank", func(t *testing.T) {
		bank := bankOf(map[string]int{"SrSec": 3})
		_, err := draw(rng, bank, 5)
		assert.ErrorIs(t, err, ErrInsufficientQuestions)
	})
}
