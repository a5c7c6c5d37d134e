package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/hirehub/internal/scoring"
)

func intPtr(v int) *int { return &v }

func TestCVDataToScoring(t *testing.T) {
	cv := CVData{
		Skills: []CVSkill{{Skill: "Go", Level: "expert", Category: "language"}},
		EmploymentHistory: []Employment{
			{Position: "Engineer", Company: "Acme", StartDate: "2020-01", CurrentlyWorking: true, Description: "Built APIs"},
			{Position: "Intern", Company: "Beta", Responsibilities: []string{"testing", "docs"}},
		},
		Education: []Education{{Institution: "MIT", Degree: "BSc", Field: "CS"}},
	}

	got := cv.ToScoring()

	assert.Equal(t, []scoring.Skill{{Name: "Go", ProficiencyLevel: "expert"}}, got.Skills)
	require.Len(t, got.EmploymentHistory, 2)
	assert.True(t, got.EmploymentHistory[0].IsCurrent)
	assert.Equal(t, "Built APIs", got.EmploymentHistory[0].Description)
	assert.Equal(t, "testing; docs", got.EmploymentHistory[1].Description)
	assert.Equal(t, "MIT", got.Education[0].School)
}

func TestJDDataToScoring(t *testing.T) {
	t.Run("minimum only", func(t *testing.T) {
		jd := JDData{
			HardSkillsRequired:      []RequiredSkill{{Skill: "Kubernetes", Priority: "must"}},
			SoftSkillsRequired:      []string{"communication"},
			ExperienceYearsRequired: intPtr(3),
			DomainExpertise:         DomainExpertise{Industry: "fintech"},
		}
		got := jd.ToScoring()

		assert.Equal(t, []string{"Kubernetes"}, got.HardSkillNames())
		assert.Equal(t, "fintech", got.Industry)
		require.NotNil(t, got.ExperienceRequirement)
		assert.Equal(t, 3, got.ExperienceRequirement.MinYears)
		assert.Equal(t, 3, got.ExperienceRequirement.PreferredYears)
	})

	t.Run("preferred overrides", func(t *testing.T) {
		jd := JDData{ExperienceYearsRequired: intPtr(2), ExperienceYearsPreferred: intPtr(5)}
		got := jd.ToScoring()
		assert.Equal(t, 5, got.ExperienceRequirement.PreferredYears)
	})

	t.Run("no requirement", func(t *testing.T) {
		assert.Nil(t, JDData{}.ToScoring().ExperienceRequirement)
	})
}

func TestJSONColumn(t *testing.T) {
	j, err := NewJSON([]string{"a", "b"})
	require.NoError(t, err)

	v, err := j.Value()
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, v)

	var scanned JSON
	require.NoError(t, scanned.Scan([]byte(`{"x":1}`)))
	var out map[string]int
	require.NoError(t, scanned.Decode(&out))
	assert.Equal(t, 1, out["x"])

	assert.Error(t, scanned.Scan(42))

	var empty JSON
	assert.True(t, empty.IsEmpty())
	v, err = empty.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestNewAnalysisResponse(t *testing.T) {
	breakdown, err := NewJSON(scoring.ScoreBreakdown{HardSkills: scoring.CategoryScore{Score: 80, Weight: 35}})
	require.NoError(t, err)
	gaps, err := NewJSON([]Gap{{Gap: "Kubernetes", Priority: "high", Impact: "core platform"}})
	require.NoError(t, err)

	a := &Analysis{
		ID:                 uuid.New(),
		Status:             StatusCompleted,
		CompatibilityScore: intPtr(72),
		ScoreBreakdown:     breakdown,
		Gaps:               gaps,
	}

	resp, err := NewAnalysisResponse(a)
	require.NoError(t, err)
	require.NotNil(t, resp.ScoreBreakdown)
	assert.Equal(t, 80, resp.ScoreBreakdown.HardSkills.Score)
	assert.Equal(t, "Kubernetes", resp.Gaps[0].Gap)
	assert.Nil(t, resp.Strengths)

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"compatibility_score":72`)
}

func TestInsightsNormalize(t *testing.T) {
	i := Insights{}.Normalize()
	assert.True(t, i.Empty())
	assert.NotNil(t, i.Gaps)
	assert.NotNil(t, i.Strengths)
	assert.NotNil(t, i.Recommendations)
}
