package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyThresholds(t *testing.T) {
	cases := []struct {
		similarity float64
		want       MatchQuality
		ok         bool
	}{
		{1.0, MatchFull, true},
		{0.70, MatchFull, true},
		{0.6999, MatchPartial, true},
		{0.50, MatchPartial, true},
		{0.4999, "", false},
		{0, "", false},
		{-0.3, "", false},
	}

	for _, tc := range cases {
		got, ok := classify(tc.similarity)
		assert.Equal(t, tc.ok, ok, "similarity %v", tc.similarity)
		assert.Equal(t, tc.want, got, "similarity %v", tc.similarity)
	}
}

func TestMatchSkillsVacuousPass(t *testing.T) {
	provider := newFakeProvider(2, nil)

	res, err := MatchSkills(context.Background(), provider, []string{"Go"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.Score)
	assert.Empty(t, res.Matched)
	assert.Empty(t, res.Missing)
	assert.Zero(t, provider.calls)
}

func TestMatchSkillsNoCandidates(t *testing.T) {
	provider := newFakeProvider(2, nil)

	res, err := MatchSkills(context.Background(), provider, nil, []string{"Go", "SQL"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Score)
	assert.Empty(t, res.Matched)
	assert.Equal(t, []string{"Go", "SQL"}, res.Missing)
	assert.Zero(t, provider.calls)
}

func TestMatchSkillsExactThresholds(t *testing.T) {
	provider := newFakeProvider(4, map[string][]float32{
		"Go":          vec(1, 0, 0, 0),
		"Golang (5y)": vec(7, 7, 1, 1),
	})

	res, err := MatchSkills(context.Background(), provider, []string{"Golang (5y)"}, []string{"Go"})
	require.NoError(t, err)
	require.Len(t, res.Matched, 1)
	assert.Equal(t, MatchFull, res.Matched[0].Quality)
	assert.Equal(t, "Golang (5y)", res.Matched[0].BestCandidate)
	assert.Equal(t, 100.0, res.Score)
	assert.Empty(t, res.Missing)

	provider = newFakeProvider(4, map[string][]float32{
		"Go":     vec(1, 0, 0, 0),
		"Gopher": vec(1, 1, 1, 1),
	})

	res, err = MatchSkills(context.Background(), provider, []string{"Gopher"}, []string{"Go"})
	require.NoError(t, err)
	require.Len(t, res.Matched, 1)
	assert.Equal(t, MatchPartial, res.Matched[0].Quality)
	assert.Equal(t, 50.0, res.Score)
	assert.Equal(t, "Go (50% partial)", res.Matched[0].Label())
}

func TestMatchSkillsMixedClassification(t *testing.T) {
	provider := newFakeProvider(6, map[string][]float32{
		"Python":         vec(1, 0, 0, 0, 0, 0),
		"Docker":         vec(0, 1, 0, 0, 0, 0),
		"Rust":           vec(0, 0, 1, 0, 0, 0),
		"Python (guru)":  vec(1, 0, 0, 0, 0, 0),
		"Podman (basic)": vec(0, 3, 0, 4, 0, 0),
		"Cooking":        vec(0, 0, 0, 0, 0, 1),
	})

	required := []string{"Python", "Docker", "Rust"}
	res, err := MatchSkills(context.Background(), provider,
		[]string{"Python (guru)", "Podman (basic)", "Cooking"}, required)
	require.NoError(t, err)

	assert.Equal(t, 1, provider.calls, "all phrases go in one batch")
	assert.Len(t, res.Matched, 2)
	assert.Equal(t, []string{"Rust"}, res.Missing)
	assert.Equal(t, []string{"Python (100% match)", "Docker (60% partial)"}, res.MatchedLabels())
	assert.InDelta(t, 50.0, res.Score, 1e-9)
}

func TestMatchSkillsClassifiesEveryRequiredSkillOnce(t *testing.T) {
	provider := newFakeProvider(3, map[string][]float32{
		"A": vec(1, 0, 0), "B": vec(0, 1, 0), "C": vec(0, 0, 1),
		"a-ish": vec(1, 0, 0), "b-ish": vec(1, 1, 0),
	})

	required := []string{"A", " B ", "C", "a", ""}
	res, err := MatchSkills(context.Background(), provider, []string{"a-ish", "b-ish"}, required)
	require.NoError(t, err)

	seen := map[string]int{}
	for _, m := range res.Matched {
		seen[m.SkillName]++
	}
	for _, m := range res.Missing {
		seen[m]++
	}

	assert.Equal(t, map[string]int{"A": 1, "B": 1, "C": 1}, seen)
	assert.Equal(t, 3, len(res.Matched)+len(res.Missing))
}

func TestMatchSkillsProviderFailure(t *testing.T) {
	provider := newFakeProvider(2, nil)
	provider.err = errProviderDown

	_, err := MatchSkills(context.Background(), provider, []string{"Go"}, []string{"Go"})
	require.Error(t, err)

	var perr *ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "skill matching", perr.Op)
	assert.ErrorIs(t, err, errProviderDown)
}

func TestMatchSkillsShortBatch(t *testing.T) {
	provider := newFakeProvider(2, nil)
	provider.short = true

	_, err := MatchSkills(context.Background(), provider, []string{"Go"}, []string{"Go"})
	assert.ErrorIs(t, err, ErrBatchSizeMismatch)
}
