package models

import (
	"strings"

	"alfredoptarigan/hirehub/internal/scoring"
)

type PersonalInfo struct {
	FullName  string `json:"full_name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Location  string `json:"location,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
	Headline  string `json:"headline,omitempty"`
}

type Employment struct {
	Position         string   `json:"position"`
	Company          string   `json:"company"`
	Location         string   `json:"location,omitempty"`
	StartDate        string   `json:"start_date,omitempty"`
	EndDate          string   `json:"end_date,omitempty"`
	CurrentlyWorking bool     `json:"currently_working"`
	Description      string   `json:"description,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
}

type CVSkill struct {
	Skill    string `json:"skill"`
	Level    string `json:"level,omitempty"`
	Category string `json:"category,omitempty"`
}

type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty"`
}

type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency,omitempty"`
}

// CVData is the structured CV returned by the extraction prompt.
type CVData struct {
	PersonalInfo        PersonalInfo `json:"personal_info"`
	ProfessionalSummary string       `json:"professional_summary,omitempty"`
	EmploymentHistory   []Employment `json:"employment_history"`
	Education           []Education  `json:"education"`
	Skills              []CVSkill    `json:"skills"`
	Projects            []Project    `json:"projects,omitempty"`
	Certifications      []string     `json:"certifications,omitempty"`
	Languages           []Language   `json:"languages,omitempty"`
}

// ToScoring maps the extracted CV onto the scoring input. When an entry has
// no free-text description its responsibilities are joined instead.
func (cv CVData) ToScoring() *scoring.ParsedCV {
	out := &scoring.ParsedCV{
		Skills:            make([]scoring.Skill, 0, len(cv.Skills)),
		EmploymentHistory: make([]scoring.EmploymentEntry, 0, len(cv.EmploymentHistory)),
		Education:         make([]scoring.EducationEntry, 0, len(cv.Education)),
	}
	for _, s := range cv.Skills {
		out.Skills = append(out.Skills, scoring.Skill{Name: s.Skill, ProficiencyLevel: s.Level})
	}
	for _, e := range cv.EmploymentHistory {
		desc := strings.TrimSpace(e.Description)
		if desc == "" && len(e.Responsibilities) > 0 {
			desc = strings.Join(e.Responsibilities, "; ")
		}
		out.EmploymentHistory = append(out.EmploymentHistory, scoring.EmploymentEntry{
			Position:    e.Position,
			Company:     e.Company,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			IsCurrent:   e.CurrentlyWorking,
			Description: desc,
		})
	}
	for _, ed := range cv.Education {
		out.Education = append(out.Education, scoring.EducationEntry{
			School: ed.Institution,
			Degree: ed.Degree,
			Field:  ed.Field,
		})
	}
	return out
}
