package scoring

import "strings"

// NormalizeCV trims every field and drops skills without a name and
// employment entries that carry no information at all.
func NormalizeCV(cv ParsedCV) ParsedCV {
	out := ParsedCV{
		Skills:            make([]Skill, 0, len(cv.Skills)),
		EmploymentHistory: make([]EmploymentEntry, 0, len(cv.EmploymentHistory)),
		Education:         make([]EducationEntry, 0, len(cv.Education)),
	}

	for _, s := range cv.Skills {
		s.Name = strings.TrimSpace(s.Name)
		s.ProficiencyLevel = strings.TrimSpace(s.ProficiencyLevel)
		if s.Name == "" {
			continue
		}
		out.Skills = append(out.Skills, s)
	}

	for _, e := range cv.EmploymentHistory {
		e.Position = strings.TrimSpace(e.Position)
		e.Company = strings.TrimSpace(e.Company)
		e.Description = strings.TrimSpace(e.Description)
		e.StartDate = strings.TrimSpace(e.StartDate)
		e.EndDate = strings.TrimSpace(e.EndDate)
		if e.Position == "" && e.Company == "" && e.Description == "" {
			continue
		}
		out.EmploymentHistory = append(out.EmploymentHistory, e)
	}

	for _, e := range cv.Education {
		e.School = strings.TrimSpace(e.School)
		e.Degree = strings.TrimSpace(e.Degree)
		e.Field = strings.TrimSpace(e.Field)
		if e.School == "" && e.Degree == "" {
			continue
		}
		out.Education = append(out.Education, e)
	}

	return out
}

// NormalizeJD fills a missing experience requirement with zeros, raises a
// preferred-years value below the minimum up to the minimum and trims the
// free-text lists.
func NormalizeJD(jd ParsedJD) ParsedJD {
	out := ParsedJD{
		RequiredHardSkills: make([]HardSkill, 0, len(jd.RequiredHardSkills)),
		RequiredSoftSkills: normalizePhrases(jd.RequiredSoftSkills),
		Responsibilities:   normalizePhrases(jd.Responsibilities),
		Industry:           strings.TrimSpace(jd.Industry),
	}

	seen := make(map[string]bool, len(jd.RequiredHardSkills))
	for _, s := range jd.RequiredHardSkills {
		s.Name = strings.TrimSpace(s.Name)
		key := strings.ToLower(s.Name)
		if s.Name == "" || seen[key] {
			continue
		}
		seen[key] = true
		s.Priority = strings.TrimSpace(s.Priority)
		out.RequiredHardSkills = append(out.RequiredHardSkills, s)
	}

	req := ExperienceRequirement{}
	if jd.ExperienceRequirement != nil {
		req = *jd.ExperienceRequirement
	}
	if req.MinYears < 0 {
		req.MinYears = 0
	}
	if req.PreferredYears < req.MinYears {
		req.PreferredYears = req.MinYears
	}
	out.ExperienceRequirement = &req

	return out
}

// normalizePhrases trims, drops empty entries and removes case-insensitive
// duplicates, keeping the first spelling.
func normalizePhrases(phrases []string) []string {
	out := make([]string, 0, len(phrases))
	seen := make(map[string]bool, len(phrases))
	for _, p := range phrases {
		p = strings.TrimSpace(p)
		key := strings.ToLower(p)
		if p == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}
