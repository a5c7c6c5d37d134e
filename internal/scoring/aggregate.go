package scoring

import "math"

// Category weights in percent. They sum to 100.
const (
	WeightHardSkills = 35
	WeightSoftSkills = 15
	WeightExperience = 20
	WeightDomain     = 15
	WeightPortfolio  = 10
	WeightLogistics  = 5
)

// LogisticsBaseline is the fixed logistics score. A CV alone says nothing
// about location, visa or availability fit.
const LogisticsBaseline = 50

// CategoryInputs holds the unrounded category scores fed to the aggregator.
type CategoryInputs struct {
	HardSkills       float64
	SoftSkills       float64
	Experience       float64
	Domain           float64
	Responsibilities float64
}

// OverallScore combines unrounded category scores with the fixed weights and
// rounds once, half away from zero.
func OverallScore(in CategoryInputs) int {
	return int(math.Round(
		in.HardSkills*weight(WeightHardSkills) +
			in.SoftSkills*weight(WeightSoftSkills) +
			in.Experience*weight(WeightExperience) +
			in.Domain*weight(WeightDomain) +
			in.Responsibilities*weight(WeightPortfolio) +
			LogisticsBaseline*weight(WeightLogistics),
	))
}

func weight(percent int) float64 {
	return float64(percent) / 100
}

// Aggregate assembles the overall score and the six-category breakdown.
func Aggregate(hard, soft SkillMatchResult, exp ExperienceResult, domain, responsibilities float64) OverallScoreResult {
	overall := OverallScore(CategoryInputs{
		HardSkills:       hard.Score,
		SoftSkills:       soft.Score,
		Experience:       exp.Score,
		Domain:           domain,
		Responsibilities: responsibilities,
	})

	candidateYears := math.Round(exp.CandidateYears*10) / 10
	requiredYears := exp.RequiredYears

	return OverallScoreResult{
		OverallScore: overall,
		Breakdown: ScoreBreakdown{
			HardSkills: CategoryScore{
				Score:   roundScore(hard.Score),
				Weight:  WeightHardSkills,
				Matched: hard.MatchedLabels(),
				Missing: append([]string(nil), hard.Missing...),
			},
			SoftSkills: CategoryScore{
				Score:   roundScore(soft.Score),
				Weight:  WeightSoftSkills,
				Matched: soft.MatchedLabels(),
				Missing: append([]string(nil), soft.Missing...),
			},
			Experience: CategoryScore{
				Score:          roundScore(exp.Score),
				Weight:         WeightExperience,
				CandidateYears: &candidateYears,
				RequiredYears:  &requiredYears,
				Assessment:     exp.Assessment,
			},
			Domain: CategoryScore{
				Score:      roundScore(domain),
				Weight:     WeightDomain,
				Assessment: "Domain match score based on industry alignment",
			},
			Portfolio: CategoryScore{
				Score:      roundScore(responsibilities),
				Weight:     WeightPortfolio,
				Assessment: "Responsibilities alignment score",
			},
			Logistics: CategoryScore{
				Score:      LogisticsBaseline,
				Weight:     WeightLogistics,
				Assessment: "Neutral - cannot assess from CV alone",
			},
		},
	}
}

func roundScore(v float64) int {
	return int(math.Round(v))
}
