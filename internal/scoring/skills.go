package scoring

import "context"

// Similarity thresholds for classifying a required skill against its best
// candidate skill. They are part of the scoring contract and not tunable.
const (
	FullMatchThreshold    = 0.70
	PartialMatchThreshold = 0.50

	partialMatchCredit = 0.5
)

// classify maps a best-match similarity to a match quality. ok is false when
// the skill counts as missing.
func classify(similarity float64) (quality MatchQuality, ok bool) {
	switch {
	case similarity >= FullMatchThreshold:
		return MatchFull, true
	case similarity >= PartialMatchThreshold:
		return MatchPartial, true
	default:
		return "", false
	}
}

// MatchSkills finds, for each required skill, the most similar candidate
// skill and classifies it as a full match, a partial match or missing.
//
// Inputs are trimmed and de-duplicated first. With no required skills the
// result is a vacuous 100; with required skills but no candidate skills every
// required skill is missing and no embedding call is made. Otherwise the
// provider is called exactly once for all phrases.
func MatchSkills(ctx context.Context, provider EmbeddingProvider, candidates, required []string) (SkillMatchResult, error) {
	required = normalizePhrases(required)
	candidates = normalizePhrases(candidates)

	result := SkillMatchResult{
		Matched: []SkillMatch{},
		Missing: []string{},
	}

	if len(required) == 0 {
		result.Score = 100
		return result, nil
	}

	if len(candidates) == 0 {
		result.Missing = append(result.Missing, required...)
		return result, nil
	}

	texts := make([]string, 0, len(candidates)+len(required))
	texts = append(texts, candidates...)
	texts = append(texts, required...)

	vectors, err := embedAll(ctx, provider, "skill matching", texts)
	if err != nil {
		return SkillMatchResult{}, err
	}

	matrix := SimilarityMatrix(vectors[len(candidates):], vectors[:len(candidates)])

	var full, partial int
	for i, skill := range required {
		similarity, j := bestMatch(matrix[i])

		quality, ok := classify(similarity)
		if !ok {
			result.Missing = append(result.Missing, skill)
			continue
		}

		if quality == MatchFull {
			full++
		} else {
			partial++
		}

		result.Matched = append(result.Matched, SkillMatch{
			SkillName:     skill,
			Quality:       quality,
			Similarity:    similarity,
			BestCandidate: candidates[j],
		})
	}

	result.Score = (float64(full) + float64(partial)*partialMatchCredit) / float64(len(required)) * 100
	return result, nil
}
