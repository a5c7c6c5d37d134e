package scoring

import "context"

// NeutralScore is returned when a matcher has no signal to work with.
const NeutralScore = 50.0

// MatchDomain scores how close the best experience snippet comes to the
// target industry: 100 times the highest cosine similarity.
func MatchDomain(ctx context.Context, provider EmbeddingProvider, industry string, snippets []string) (float64, error) {
	industries := normalizePhrases([]string{industry})
	snippets = normalizePhrases(snippets)
	if len(industries) == 0 || len(snippets) == 0 {
		return NeutralScore, nil
	}

	vectors, err := embedAll(ctx, provider, "domain matching", append(industries, snippets...))
	if err != nil {
		return 0, err
	}

	best, _ := bestMatch(SimilarityMatrix(vectors[:1], vectors[1:])[0])
	return best * 100, nil
}

// MatchResponsibilities scores how well the experience snippets cover the
// listed responsibilities: 100 times the mean, over responsibilities, of each
// one's best similarity to any snippet.
func MatchResponsibilities(ctx context.Context, provider EmbeddingProvider, responsibilities, snippets []string) (float64, error) {
	responsibilities = normalizePhrases(responsibilities)
	snippets = normalizePhrases(snippets)
	if len(responsibilities) == 0 || len(snippets) == 0 {
		return NeutralScore, nil
	}

	texts := make([]string, 0, len(responsibilities)+len(snippets))
	texts = append(texts, responsibilities...)
	texts = append(texts, snippets...)

	vectors, err := embedAll(ctx, provider, "responsibility matching", texts)
	if err != nil {
		return 0, err
	}

	matrix := SimilarityMatrix(vectors[:len(responsibilities)], vectors[len(responsibilities):])

	var sum float64
	for _, row := range matrix {
		best, _ := bestMatch(row)
		sum += best
	}
	return sum / float64(len(matrix)) * 100, nil
}
