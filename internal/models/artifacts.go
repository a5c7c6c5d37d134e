package models

type Question struct {
	Question         string   `json:"question"`
	Category         string   `json:"category"`
	Priority         string   `json:"priority"`
	PotentialImpact  string   `json:"potential_impact,omitempty"`
	WhyAsking        string   `json:"why_asking,omitempty"`
	SuggestedAnswers []string `json:"suggested_answers,omitempty"`
}

type Answer struct {
	QuestionIndex int    `json:"question_index"`
	Answer        string `json:"answer"`
}

type OptimizedCV struct {
	ProfessionalSummary string       `json:"professional_summary"`
	EmploymentHistory   []Employment `json:"employment_history"`
	Skills              []CVSkill    `json:"skills"`
	AddedKeywords       []string     `json:"added_keywords,omitempty"`
	Changes             []string     `json:"changes,omitempty"`
}

type CoverLetterContent struct {
	Opening            string `json:"opening"`
	WhyCompany         string `json:"why_company"`
	WhatBrings         string `json:"what_brings"`
	AddressingConcerns string `json:"addressing_concerns,omitempty"`
	Seeking            string `json:"seeking,omitempty"`
	Closing            string `json:"closing"`
	PS                 string `json:"ps,omitempty"`
}

type CoverLetter struct {
	Date          string             `json:"date"`
	CompanyName   string             `json:"company_name"`
	PositionTitle string             `json:"position_title"`
	Content       CoverLetterContent `json:"content"`
	FullText      string             `json:"full_text"`
}

type LearningArea struct {
	Priority     int      `json:"priority"`
	Skill        string   `json:"skill"`
	CurrentLevel string   `json:"current_level,omitempty"`
	TargetLevel  string   `json:"target_level,omitempty"`
	Impact       string   `json:"impact,omitempty"`
	Time         string   `json:"time,omitempty"`
	WhyImportant string   `json:"why_important,omitempty"`
	Courses      []string `json:"courses,omitempty"`
	Projects     []string `json:"projects,omitempty"`
}

type WeeklyPlan struct {
	Week  int      `json:"week"`
	Focus string   `json:"focus"`
	Tasks []string `json:"tasks"`
}

type LearningPath struct {
	PriorityAreas   []LearningArea `json:"priority_areas"`
	WeeklyPlan      []WeeklyPlan   `json:"weekly_plan"`
	TotalInvestment string         `json:"total_investment,omitempty"`
	Resources       []string       `json:"resources,omitempty"`
	QuickWins       []string       `json:"quick_wins,omitempty"`
}

type TechnicalQuestion struct {
	Question        string   `json:"question"`
	Category        string   `json:"category"`
	Difficulty      string   `json:"difficulty"`
	SuggestedAnswer string   `json:"suggested_answer"`
	KeyPoints       []string `json:"key_points,omitempty"`
	WhyThisQuestion string   `json:"why_this_question,omitempty"`
}

type BehavioralQuestion struct {
	Question         string   `json:"question"`
	Category         string   `json:"category"`
	STARExample      string   `json:"star_example"`
	TipsForAnswering []string `json:"tips_for_answering,omitempty"`
}

type InterviewPrep struct {
	TechnicalQuestions        []TechnicalQuestion  `json:"technical_questions"`
	BehavioralQuestions       []BehavioralQuestion `json:"behavioral_questions"`
	CompanyResearchTips       []string             `json:"company_research_tips,omitempty"`
	QuestionsToAskInterviewer []string             `json:"questions_to_ask_interviewer,omitempty"`
	RedFlags                  []string             `json:"red_flags,omitempty"`
	PreparationChecklist      []string             `json:"preparation_checklist,omitempty"`
}
