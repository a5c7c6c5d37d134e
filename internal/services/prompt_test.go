package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRAGContext(t *testing.T) {
	assert.Equal(t, "No relevant context found.", FormatRAGContext(nil))

	long := strings.Repeat("é", 250)
	out := FormatRAGContext([]SearchResult{
		{DocType: "jd", Score: 0.812, Text: "  Go engineer  "},
		{DocType: "cv", Score: 0.75, Text: long},
	})

	assert.Contains(t, out, "--- Similar JD 1 (Score: 0.81) ---\nGo engineer")
	assert.Contains(t, out, strings.Repeat("é", 200)+"...")
	assert.NotContains(t, out, strings.Repeat("é", 201))
}

func TestCoverLetterPromptDefaultsTone(t *testing.T) {
	p := NewPromptBuilder().BuildCoverLetterPrompt("{}", "{}", "[]", " ", "March 1, 2026")
	assert.Contains(t, p, "Write a professional cover letter dated March 1, 2026")
}
