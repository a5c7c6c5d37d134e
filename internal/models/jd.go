package models

import (
	"alfredoptarigan/hirehub/internal/scoring"
)

type RequiredSkill struct {
	Skill         string `json:"skill"`
	Priority      string `json:"priority,omitempty"`
	YearsRequired *int   `json:"years_required,omitempty"`
}

type DomainExpertise struct {
	Industry          string   `json:"industry,omitempty"`
	SpecificKnowledge []string `json:"specific_knowledge,omitempty"`
}

// JDData is the structured job description returned by the extraction prompt.
type JDData struct {
	CompanyName              string          `json:"company_name,omitempty"`
	PositionTitle            string          `json:"position_title"`
	Location                 string          `json:"location,omitempty"`
	WorkMode                 string          `json:"work_mode,omitempty"`
	ExperienceYearsRequired  *int            `json:"experience_years_required,omitempty"`
	ExperienceYearsPreferred *int            `json:"experience_years_preferred,omitempty"`
	ExperienceLevel          string          `json:"experience_level,omitempty"`
	HardSkillsRequired       []RequiredSkill `json:"hard_skills_required"`
	SoftSkillsRequired       []string        `json:"soft_skills_required"`
	Responsibilities         []string        `json:"responsibilities"`
	TechStack                []string        `json:"tech_stack,omitempty"`
	DomainExpertise          DomainExpertise `json:"domain_expertise"`
	ATSKeywords              []string        `json:"ats_keywords,omitempty"`
	Benefits                 []string        `json:"benefits,omitempty"`
}

// ToScoring maps the extracted job description onto the scoring input. A
// missing preferred value falls back to the minimum.
func (jd JDData) ToScoring() *scoring.ParsedJD {
	out := &scoring.ParsedJD{
		RequiredHardSkills: make([]scoring.HardSkill, 0, len(jd.HardSkillsRequired)),
		RequiredSoftSkills: append([]string(nil), jd.SoftSkillsRequired...),
		Responsibilities:   append([]string(nil), jd.Responsibilities...),
		Industry:           jd.DomainExpertise.Industry,
	}
	for _, s := range jd.HardSkillsRequired {
		out.RequiredHardSkills = append(out.RequiredHardSkills, scoring.HardSkill{Name: s.Skill, Priority: s.Priority})
	}
	if jd.ExperienceYearsRequired != nil || jd.ExperienceYearsPreferred != nil {
		req := &scoring.ExperienceRequirement{}
		if jd.ExperienceYearsRequired != nil {
			req.MinYears = *jd.ExperienceYearsRequired
			req.PreferredYears = *jd.ExperienceYearsRequired
		}
		if jd.ExperienceYearsPreferred != nil {
			req.PreferredYears = *jd.ExperienceYearsPreferred
		}
		out.ExperienceRequirement = req
	}
	return out
}
