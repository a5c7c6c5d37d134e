package services

import (
	"strings"
	"unicode/utf8"
)

type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText splits text on paragraphs, falling back to sentences for
// paragraphs longer than maxChunkSize. Consecutive chunks share overlap
// trailing runes of the previous chunk.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	c := &chunkBuilder{max: maxChunkSize, overlap: overlap}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if utf8.RuneCountInString(para) <= maxChunkSize {
			c.add(para, "\n\n")
			continue
		}

		for _, sentence := range splitIntoSentences(para) {
			c.add(sentence, " ")
		}
	}

	return c.finish()
}

type chunkBuilder struct {
	max     int
	overlap int
	current strings.Builder
	chunks  []string
}

func (c *chunkBuilder) add(piece, sep string) {
	if c.current.Len() > 0 && utf8.RuneCountInString(c.current.String())+utf8.RuneCountInString(piece)+len(sep) > c.max {
		prev := c.current.String()
		c.chunks = append(c.chunks, prev)
		c.current.Reset()
		if tail := getLastNChars(prev, c.overlap); tail != "" {
			c.current.WriteString(tail)
		}
	}

	if c.current.Len() > 0 {
		c.current.WriteString(sep)
	}
	c.current.WriteString(piece)
}

func (c *chunkBuilder) finish() []string {
	if c.current.Len() > 0 {
		c.chunks = append(c.chunks, c.current.String())
	}
	return c.chunks
}

func splitIntoSentences(text string) []string {
	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	var result []string
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s != "" {
			result = append(result, s)
		}
	}
	return result
}

func getLastNChars(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[len(runes)-n:])
}
