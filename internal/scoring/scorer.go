package scoring

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Scorer computes deterministic compatibility scores. It keeps no state
// between calls and is safe for concurrent use.
type Scorer struct {
	provider  EmbeddingProvider
	yearsMode YearsMode
	now       func() time.Time
	logger    *zap.Logger
}

type Option func(*Scorer)

func WithYearsMode(mode YearsMode) Option {
	return func(s *Scorer) { s.yearsMode = mode }
}

// WithClock sets the time used to close employment entries that are still
// running. Fixing it makes duration-based scores reproducible over time.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) { s.now = now }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Scorer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewScorer(provider EmbeddingProvider, opts ...Option) *Scorer {
	s := &Scorer{
		provider:  provider,
		yearsMode: YearsByDuration,
		now:       time.Now,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ComputeCompatibility scores a CV against a job description. For fixed
// inputs, a fixed embedding model and a fixed clock the result is identical
// across calls. Provider failures are returned as *ProviderError.
func (s *Scorer) ComputeCompatibility(ctx context.Context, cv *ParsedCV, jd *ParsedJD) (*OverallScoreResult, error) {
	if cv == nil {
		return nil, &InputError{Field: "cv", Reason: "parsed CV is required"}
	}
	if jd == nil {
		return nil, &InputError{Field: "jd", Reason: "parsed job description is required"}
	}
	if s.provider == nil {
		return nil, errors.New("scorer has no embedding provider")
	}

	ncv := NormalizeCV(*cv)
	njd := NormalizeJD(*jd)

	skills := ncv.SkillPhrases()
	snippets := ncv.ExperienceSnippets()

	hard, err := MatchSkills(ctx, s.provider, skills, njd.HardSkillNames())
	if err != nil {
		return nil, err
	}

	soft, err := MatchSkills(ctx, s.provider, skills, njd.RequiredSoftSkills)
	if err != nil {
		return nil, err
	}

	years := TotalYears(ncv.EmploymentHistory, s.yearsMode, s.now())
	exp := MatchExperience(years, *njd.ExperienceRequirement)

	domain, err := MatchDomain(ctx, s.provider, njd.Industry, snippets)
	if err != nil {
		return nil, err
	}

	responsibilities, err := MatchResponsibilities(ctx, s.provider, njd.Responsibilities, snippets)
	if err != nil {
		return nil, err
	}

	result := Aggregate(hard, soft, exp, domain, responsibilities)

	s.logger.Debug("compatibility computed",
		zap.Int("overall_score", result.OverallScore),
		zap.Float64("hard_skills", hard.Score),
		zap.Float64("soft_skills", soft.Score),
		zap.Float64("experience", exp.Score),
		zap.Float64("candidate_years", years),
		zap.Float64("domain", domain),
		zap.Float64("responsibilities", responsibilities),
		zap.String("years_mode", string(s.yearsMode)),
	)

	return &result, nil
}
