package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTextKeepsShortTextWhole(t *testing.T) {
	chunks := NewTextChunker().ChunkText("first paragraph\n\nsecond paragraph", 100, 10)
	assert.Equal(t, []string{"first paragraph\n\nsecond paragraph"}, chunks)
}

func TestChunkTextSplitsOnParagraphs(t *testing.T) {
	text := strings.Repeat("a", 40) + "\n\n" + strings.Repeat("b", 40) + "\n\n" + strings.Repeat("c", 40)
	chunks := NewTextChunker().ChunkText(text, 50, 0)

	require.Len(t, chunks, 3)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 50)
	}
}

func TestChunkTextOverlap(t *testing.T) {
	text := strings.Repeat("a", 40) + "\n\n" + strings.Repeat("b", 40)
	chunks := NewTextChunker().ChunkText(text, 50, 5)

	require.Len(t, chunks, 2)
	assert.True(t, strings.HasPrefix(chunks[1], "aaaaa\n\nb"))
}

func TestChunkTextSplitsLongParagraphBySentence(t *testing.T) {
	sentence := strings.Repeat("x", 20)
	para := strings.Join([]string{sentence, sentence, sentence, sentence}, ". ") + "."
	chunks := NewTextChunker().ChunkText(para, 45, 0)

	require.Len(t, chunks, 2)
	assert.Equal(t, sentence+" "+sentence, chunks[0])
}

func TestChunkTextDefaults(t *testing.T) {
	assert.Empty(t, NewTextChunker().ChunkText("   \n\n  ", 0, -1))
}
