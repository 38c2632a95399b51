package syllabus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSummary(t *testing.T) {
	topics := []Topic{
		{ID: 1, Name: "Cell Biology", Paper: 2, Section: "SrSec", TargetHours: 3, MarksWeight: 10, Priority: "HIGH"},
		{ID: 11, Name: "Rajasthan History", Paper: 1, Section: "History", TargetHours: 6, MarksWeight: 20, Priority: "HIGH"},
	}

	got := FormatSummary(topics)
	assert.Contains(t, got, "*Paper 1*")
	assert.Contains(t, got, "*Paper 2*")
	assert.Contains(t, got, "Rajasthan History (6.0h, 20 marks, HIGH)")
	// Paper 1 renders before paper 2.
	assert.Less(t, strings.Index(got, "*Paper 1*"), strings.Index(got, "*Paper 2*"))

	assert.Equal(t, "No syllabus topics found.", FormatSummary(nil))
}

func TestFormatBooks(t *testing.T) {
	topics := []Topic{
		{Books: "NCERT XI; NCERT XII"},
		{Books: "NCERT XII; Trueman Biology"},
		{Books: ""},
	}

	got := FormatBooks(topics)
	assert.Contains(t, got, "- NCERT XI")
	assert.Contains(t, got, "- Trueman Biology")
	// Deduplicated.
	assert.Equal(t, 1, strings.Count(got, "NCERT XII"))

	assert.Equal(t, "No books configured.", FormatBooks(nil))
}
