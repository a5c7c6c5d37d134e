package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short input unchanged", "Go", 5, "Go"},
		{"ascii cut", "Kubernetes", 4, "Kube"},
		{"multibyte kept whole", "Zürich Straße", 2, "Zü"},
		{"emoji kept whole", "🚀🚀🚀", 2, "🚀🚀"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateRunes(tt.in, tt.n)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}

	long := strings.Repeat("é", maxEmbedChars+10)
	got := truncateRunes(long, maxEmbedChars)
	assert.Equal(t, maxEmbedChars, utf8.RuneCountInString(got))
	assert.True(t, utf8.ValidString(got))
}
