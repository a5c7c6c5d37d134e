package scoring

import (
	"context"
	"fmt"
	"strings"
)

// EmbeddingProvider converts text into dense vectors of a fixed dimension.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

type Skill struct {
	Name             string `json:"name"`
	ProficiencyLevel string `json:"proficiency_level,omitempty"`
}

type EmploymentEntry struct {
	Position    string `json:"position"`
	Company     string `json:"company"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	IsCurrent   bool   `json:"is_current"`
	Description string `json:"description,omitempty"`
}

type EducationEntry struct {
	School string `json:"school"`
	Degree string `json:"degree"`
	Field  string `json:"field,omitempty"`
}

// ParsedCV is the structured CV produced by the extraction step.
type ParsedCV struct {
	Skills            []Skill           `json:"skills"`
	EmploymentHistory []EmploymentEntry `json:"employment_history"`
	Education         []EducationEntry  `json:"education"`
}

type HardSkill struct {
	Name     string `json:"name"`
	Priority string `json:"priority,omitempty"`
}

type ExperienceRequirement struct {
	MinYears       int `json:"min_years"`
	PreferredYears int `json:"preferred_years"`
}

// ParsedJD is the structured job description produced by the extraction step.
type ParsedJD struct {
	RequiredHardSkills    []HardSkill            `json:"required_hard_skills"`
	RequiredSoftSkills    []string               `json:"required_soft_skills"`
	Responsibilities      []string               `json:"responsibilities"`
	ExperienceRequirement *ExperienceRequirement `json:"experience_requirement,omitempty"`
	Industry              string                 `json:"industry,omitempty"`
}

// SkillPhrases renders every skill as "<name> (<level>)", or just the name
// when no level was extracted.
func (cv ParsedCV) SkillPhrases() []string {
	phrases := make([]string, 0, len(cv.Skills))
	for _, s := range cv.Skills {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			continue
		}
		if level := strings.TrimSpace(s.ProficiencyLevel); level != "" {
			phrases = append(phrases, fmt.Sprintf("%s (%s)", name, level))
			continue
		}
		phrases = append(phrases, name)
	}
	return phrases
}

// ExperienceSnippets renders each employment entry as
// "<position> at <company>: <description>".
func (cv ParsedCV) ExperienceSnippets() []string {
	snippets := make([]string, 0, len(cv.EmploymentHistory))
	for _, e := range cv.EmploymentHistory {
		snippets = append(snippets, fmt.Sprintf("%s at %s: %s", e.Position, e.Company, e.Description))
	}
	return snippets
}

func (jd ParsedJD) HardSkillNames() []string {
	names := make([]string, 0, len(jd.RequiredHardSkills))
	for _, s := range jd.RequiredHardSkills {
		names = append(names, s.Name)
	}
	return names
}

type MatchQuality string

const (
	MatchFull    MatchQuality = "full"
	MatchPartial MatchQuality = "partial"
)

type SkillMatch struct {
	SkillName     string       `json:"skill_name"`
	Quality       MatchQuality `json:"match_quality"`
	Similarity    float64      `json:"similarity"`
	BestCandidate string       `json:"best_candidate"`
}

// Label is the display form used in the score breakdown,
// e.g. "Python (90% match)" or "Docker (62% partial)".
func (m SkillMatch) Label() string {
	suffix := "match"
	if m.Quality == MatchPartial {
		suffix = "partial"
	}
	return fmt.Sprintf("%s (%d%% %s)", m.SkillName, int(m.Similarity*100), suffix)
}

// SkillMatchResult classifies every required skill exactly once, either in
// Matched or in Missing.
type SkillMatchResult struct {
	Score   float64      `json:"score"`
	Matched []SkillMatch `json:"matched"`
	Missing []string     `json:"missing"`
}

func (r SkillMatchResult) MatchedLabels() []string {
	labels := make([]string, 0, len(r.Matched))
	for _, m := range r.Matched {
		labels = append(labels, m.Label())
	}
	return labels
}

type CategoryScore struct {
	Score          int      `json:"score"`
	Weight         int      `json:"weight"`
	Matched        []string `json:"matched,omitempty"`
	Missing        []string `json:"missing,omitempty"`
	CandidateYears *float64 `json:"candidate_years,omitempty"`
	RequiredYears  *int     `json:"required_years,omitempty"`
	Assessment     string   `json:"assessment,omitempty"`
}

type ScoreBreakdown struct {
	HardSkills CategoryScore `json:"hard_skills"`
	SoftSkills CategoryScore `json:"soft_skills"`
	Experience CategoryScore `json:"experience"`
	Domain     CategoryScore `json:"domain"`
	Portfolio  CategoryScore `json:"portfolio"`
	Logistics  CategoryScore `json:"logistics"`
}

func (b ScoreBreakdown) Categories() []CategoryScore {
	return []CategoryScore{b.HardSkills, b.SoftSkills, b.Experience, b.Domain, b.Portfolio, b.Logistics}
}

func (b ScoreBreakdown) TotalWeight() int {
	total := 0
	for _, c := range b.Categories() {
		total += c.Weight
	}
	return total
}

// OverallScoreResult is an immutable snapshot of one scoring call.
type OverallScoreResult struct {
	OverallScore int            `json:"overall_score"`
	Breakdown    ScoreBreakdown `json:"breakdown"`
}
