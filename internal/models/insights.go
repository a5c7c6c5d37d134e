package models

type Gap struct {
	Gap      string `json:"gap"`
	Priority string `json:"priority"`
	Impact   string `json:"impact"`
}

// Insights is the qualitative half of a compatibility report. It never
// changes the deterministic scores.
type Insights struct {
	Gaps            []Gap    `json:"gaps"`
	Strengths       []string `json:"strengths"`
	Recommendations []string `json:"recommendations"`
}

// Empty reports whether the model produced nothing usable.
func (i Insights) Empty() bool {
	return len(i.Gaps) == 0 && len(i.Strengths) == 0 && len(i.Recommendations) == 0
}

// Normalize replaces nil slices so the API never returns null arrays.
func (i Insights) Normalize() Insights {
	if i.Gaps == nil {
		i.Gaps = []Gap{}
	}
	if i.Strengths == nil {
		i.Strengths = []string{}
	}
	if i.Recommendations == nil {
		i.Recommendations = []string{}
	}
	return i
}
