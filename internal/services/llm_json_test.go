package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"markdown fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"prose around object", `Here you go: {"a":[1,2]} hope it helps`, `{"a":[1,2]}`},
		{"top level array", `[{"q":"x"}]`, `[{"q":"x"}]`},
		{"no json", "nothing here", "nothing here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.in))
		})
	}
}

func TestDecodeLLMJSON(t *testing.T) {
	var out struct {
		Score int `json:"score"`
	}
	require.NoError(t, decodeLLMJSON("```json\n{\"score\": 7}\n```", &out))
	assert.Equal(t, 7, out.Score)

	assert.Error(t, decodeLLMJSON("no json", &out))
}

func TestParseInsights(t *testing.T) {
	t.Run("objects and strings", func(t *testing.T) {
		got, err := parseInsights(`{
			"gaps": [{"gap": "Kubernetes", "priority": "HIGH", "impact": "deploys"}, "Terraform", ""],
			"strengths": ["Go", "  "],
			"recommendations": ["Add metrics"]
		}`)
		require.NoError(t, err)
		require.Len(t, got.Gaps, 2)
		assert.Equal(t, "high", got.Gaps[0].Priority)
		assert.Equal(t, "Terraform", got.Gaps[1].Gap)
		assert.Equal(t, "medium", got.Gaps[1].Priority)
		assert.Equal(t, []string{"Go"}, got.Strengths)
		assert.Equal(t, []string{"Add metrics"}, got.Recommendations)
	})

	t.Run("missing fields become empty lists", func(t *testing.T) {
		got, err := parseInsights(`{"strengths": ["Go"]}`)
		require.NoError(t, err)
		assert.NotNil(t, got.Gaps)
		assert.Empty(t, got.Gaps)
		assert.NotNil(t, got.Recommendations)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := parseInsights("I am unable to answer")
		assert.Error(t, err)
	})
}

func TestParseQuestions(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantLen  int
		wantText string
	}{
		{"bare array", `[{"question": "Have you used Kubernetes?", "category": "skills", "priority": "high"}]`, 1, "Have you used Kubernetes?"},
		{"wrapped in object", `{"questions": [{"question": "Have you used Kubernetes?", "priority": "high"}, {"question": "Open to relocation?"}]}`, 2, "Have you used Kubernetes?"},
		{"fenced wrapped object", "```json\n{\"questions\": [\"Which cloud have you used?\"]}\n```", 1, "Which cloud have you used?"},
		{"blank entries skipped", `[{"question": "  "}, {"question": "Team size?"}]`, 1, "Team size?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseQuestions(tt.in)
			require.NoError(t, err)
			require.Len(t, got, tt.wantLen)
			assert.Equal(t, tt.wantText, got[0].Question)
		})
	}

	t.Run("object without questions", func(t *testing.T) {
		_, err := parseQuestions(`{"items": []}`)
		assert.Error(t, err)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := parseQuestions("no questions today")
		assert.Error(t, err)
	})
}
