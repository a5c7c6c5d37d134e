package services

import (
	"fmt"
	"strings"
)

// ragSnippetLength caps each retrieved document quoted in a prompt.
const ragSnippetLength = 200

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildCVExtractionPrompt creates prompt for structured CV extraction
func (pb *PromptBuilder) BuildCVExtractionPrompt(cvText string) string {
	return fmt.Sprintf(`You are an expert CV parser. Extract structured information from the CV below.

CV TEXT:
%s

Return ONLY a JSON object with this schema:
{
  "personal_info": {"full_name": "", "email": "", "phone": "", "location": "", "linkedin": "", "github": "", "portfolio": "", "headline": ""},
  "professional_summary": "",
  "employment_history": [
    {"position": "", "company": "", "location": "", "start_date": "YYYY-MM", "end_date": "YYYY-MM or empty if current", "currently_working": false, "description": "", "responsibilities": [""]}
  ],
  "education": [{"institution": "", "degree": "", "field": "", "start_date": "", "end_date": ""}],
  "skills": [{"skill": "", "level": "beginner|intermediate|advanced|expert", "category": "technical|soft|language|tool"}],
  "projects": [{"name": "", "description": "", "technologies": [""], "url": ""}],
  "certifications": [""],
  "languages": [{"language": "", "proficiency": ""}]
}

Rules:
- Use only information present in the CV. Leave unknown fields empty.
- Dates must be YYYY-MM when the month is known, otherwise YYYY.
- List every distinct skill once.`, cvText)
}

// BuildJDExtractionPrompt creates prompt for structured job description extraction
func (pb *PromptBuilder) BuildJDExtractionPrompt(jdText string) string {
	return fmt.Sprintf(`You are an expert recruiter. Analyze the job description below and extract its requirements.

JOB DESCRIPTION:
%s

Return ONLY a JSON object with this schema:
{
  "company_name": "",
  "position_title": "",
  "location": "",
  "work_mode": "remote|hybrid|onsite",
  "experience_years_required": <integer minimum years or null>,
  "experience_years_preferred": <integer preferred years or null>,
  "experience_level": "junior|mid|senior|lead",
  "hard_skills_required": [{"skill": "", "priority": "must|nice", "years_required": <integer or null>}],
  "soft_skills_required": [""],
  "responsibilities": [""],
  "tech_stack": [""],
  "domain_expertise": {"industry": "", "specific_knowledge": [""]},
  "ats_keywords": [""],
  "benefits": [""]
}

Rules:
- Each hard skill is a single technology or competency, not a sentence.
- When a range such as "3-5 years" is given, required is 3 and preferred is 5.`, jdText)
}

// BuildInsightsPrompt asks for qualitative commentary on an already computed score.
func (pb *PromptBuilder) BuildInsightsPrompt(cvJSON, jdJSON, breakdownJSON string, overallScore int, ragContext string) string {
	return fmt.Sprintf(`You are an expert career advisor. A candidate's CV has already been scored against a job description.

PARSED CV:
%s

PARSED JOB DESCRIPTION:
%s

COMPUTED SCORE: %d/100
SCORE BREAKDOWN:
%s

SIMILAR PAST DOCUMENTS:
%s

Do NOT recalculate or change any score. Explain it.

Return ONLY a JSON object:
{
  "gaps": [{"gap": "<missing skill or experience>", "priority": "high|medium|low", "impact": "<why it matters for this role>"}],
  "strengths": ["<strength with evidence from the CV>"],
  "recommendations": ["<concrete action to improve the application>"]
}

Give 5-8 gaps, 3-5 strengths and 3-5 recommendations, most important first.`,
		cvJSON, jdJSON, overallScore, breakdownJSON, ragContext)
}

// BuildQuestionsPrompt creates prompt for clarifying questions about the gaps
func (pb *PromptBuilder) BuildQuestionsPrompt(cvJSON, jdJSON, gapsJSON string) string {
	return fmt.Sprintf(`You are a career coach preparing to improve a candidate's CV for a specific job.

PARSED CV:
%s

PARSED JOB DESCRIPTION:
%s

IDENTIFIED GAPS:
%s

Ask the candidate 5-8 questions whose answers could uncover experience the CV does not mention yet.

Return ONLY a JSON array:
[
  {"question": "", "category": "skills|experience|achievements|domain|logistics", "priority": "high|medium|low", "potential_impact": "", "why_asking": "", "suggested_answers": [""]}
]`, cvJSON, jdJSON, gapsJSON)
}

// BuildOptimizedCVPrompt creates prompt for rewriting the CV with the candidate's answers
func (pb *PromptBuilder) BuildOptimizedCVPrompt(cvJSON, jdJSON, qaText string) string {
	return fmt.Sprintf(`You are an expert CV writer optimizing a CV for applicant tracking systems and human reviewers.

ORIGINAL CV:
%s

TARGET JOB DESCRIPTION:
%s

CANDIDATE ANSWERS TO CLARIFYING QUESTIONS:
%s

Rewrite the CV for this job. Never invent experience that is not in the CV or the answers.

Return ONLY a JSON object:
{
  "professional_summary": "",
  "employment_history": [{"position": "", "company": "", "location": "", "start_date": "", "end_date": "", "currently_working": false, "description": "", "responsibilities": [""]}],
  "skills": [{"skill": "", "level": "", "category": ""}],
  "added_keywords": [""],
  "changes": ["<what was changed and why>"]
}`, cvJSON, jdJSON, qaText)
}

// BuildCoverLetterPrompt creates prompt for a tailored cover letter
func (pb *PromptBuilder) BuildCoverLetterPrompt(cvJSON, jdJSON, strengthsJSON, tone, date string) string {
	if strings.TrimSpace(tone) == "" {
		tone = "professional"
	}
	return fmt.Sprintf(`You are an expert cover letter writer.

CANDIDATE CV:
%s

JOB DESCRIPTION:
%s

CANDIDATE STRENGTHS FOR THIS ROLE:
%s

Write a %s cover letter dated %s, 250-400 words, specific to this company and role.

Return ONLY a JSON object:
{
  "date": "%s",
  "company_name": "",
  "position_title": "",
  "content": {"opening": "", "why_company": "", "what_brings": "", "addressing_concerns": "", "seeking": "", "closing": "", "ps": ""},
  "full_text": "<the whole letter as plain text>"
}`, cvJSON, jdJSON, strengthsJSON, tone, date, date)
}

// BuildLearningPathPrompt creates prompt for a learning plan that closes the gaps
func (pb *PromptBuilder) BuildLearningPathPrompt(cvJSON, jdJSON, gapsJSON string) string {
	return fmt.Sprintf(`You are a senior mentor designing a learning plan for a job candidate.

CANDIDATE CV:
%s

TARGET JOB DESCRIPTION:
%s

GAPS TO CLOSE:
%s

Return ONLY a JSON object:
{
  "priority_areas": [{"priority": 1, "skill": "", "current_level": "", "target_level": "", "impact": "", "time": "", "why_important": "", "courses": [""], "projects": [""]}],
  "weekly_plan": [{"week": 1, "focus": "", "tasks": [""]}],
  "total_investment": "",
  "resources": [""],
  "quick_wins": [""]
}

Cover at most 5 priority areas and at most 8 weeks.`, cvJSON, jdJSON, gapsJSON)
}

// BuildInterviewPrepPrompt creates prompt for interview preparation material
func (pb *PromptBuilder) BuildInterviewPrepPrompt(cvJSON, jdJSON, gapsJSON string) string {
	return fmt.Sprintf(`You are an experienced hiring manager helping a candidate prepare for an interview.

CANDIDATE CV:
%s

JOB DESCRIPTION:
%s

KNOWN GAPS:
%s

Return ONLY a JSON object:
{
  "technical_questions": [{"question": "", "category": "", "difficulty": "easy|medium|hard", "suggested_answer": "", "key_points": [""], "why_this_question": ""}],
  "behavioral_questions": [{"question": "", "category": "", "star_example": "", "tips_for_answering": [""]}],
  "company_research_tips": [""],
  "questions_to_ask_interviewer": [""],
  "red_flags": [""],
  "preparation_checklist": [""]
}

Give 5-8 technical and 4-6 behavioral questions.`, cvJSON, jdJSON, gapsJSON)
}

// FormatRAGContext renders retrieved documents for a prompt.
func FormatRAGContext(results []SearchResult) string {
	if len(results) == 0 {
		return "No relevant context found."
	}

	var parts []string
	for i, result := range results {
		text := strings.TrimSpace(result.Text)
		if runes := []rune(text); len(runes) > ragSnippetLength {
			text = string(runes[:ragSnippetLength]) + "..."
		}
		parts = append(parts, fmt.Sprintf("--- Similar %s %d (Score: %.2f) ---\n%s",
			strings.ToUpper(result.DocType), i+1, result.Score, text))
	}

	return strings.Join(parts, "\n\n")
}
