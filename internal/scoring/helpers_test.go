package scoring

import (
	"context"
	"errors"
	"sync"
)

// fakeProvider returns fixed vectors per text. Unknown texts embed to a zero
// vector, which compares with similarity 0 to everything.
type fakeProvider struct {
	mu      sync.Mutex
	vectors map[string][]float32
	dim     int
	err     error
	short   bool
	calls   int
	batches [][]string
}

func newFakeProvider(dim int, vectors map[string][]float32) *fakeProvider {
	return &fakeProvider{vectors: vectors, dim: dim}
}

func (f *fakeProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	out, err := f.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func (f *fakeProvider) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.batches = append(f.batches, append([]string(nil), texts...))

	if f.err != nil {
		return nil, f.err
	}

	out := make([][]float32, 0, len(texts))
	for _, t := range texts {
		if v, ok := f.vectors[t]; ok {
			out = append(out, v)
			continue
		}
		out = append(out, make([]float32, f.dim))
	}
	if f.short {
		out = out[:len(out)-1]
	}
	return out, nil
}

var errProviderDown = errors.New("provider down")

// vec builds a float32 vector from integer components so that norms and dot
// products stay exact.
func vec(components ...int) []float32 {
	v := make([]float32, len(components))
	for i, c := range components {
		v[i] = float32(c)
	}
	return v
}
