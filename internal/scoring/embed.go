package scoring

import (
	"context"
	"fmt"
)

// embedAll embeds texts with a single batch call.
func embedAll(ctx context.Context, provider EmbeddingProvider, op string, texts []string) ([][]float32, error) {
	vectors, err := provider.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, &ProviderError{Op: op, Err: err}
	}
	if len(vectors) != len(texts) {
		return nil, &ProviderError{
			Op:  op,
			Err: fmt.Errorf("%w: got %d vectors for %d texts", ErrBatchSizeMismatch, len(vectors), len(texts)),
		}
	}
	return vectors, nil
}
