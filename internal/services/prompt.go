package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/resume-screener/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildExtractionPrompt is sent alongside the inline file bytes.
func (pb *PromptBuilder) BuildExtractionPrompt() string {
	return `Extract all text content from this resume document.
Preserve the reading order and the section structure (headings, bullet points, dates).
Return only the extracted plain text, without commentary, summaries or Markdown formatting.`
}

// BuildResumeParsePrompt asks for a strict ParsedResumeData JSON object.
func (pb *PromptBuilder) BuildResumeParsePrompt(resumeText string) string {
	return fmt.Sprintf(`You are an expert resume parser. Convert the resume text below into structured data.

RESUME TEXT:
%s

Return ONLY a JSON object with exactly this shape:
{
  "name": "<full name>",
  "email": "<email address>",
  "phone": "<phone number>",
  "linkedin": "<LinkedIn URL>",
  "github": "<GitHub URL>",
  "portfolio": "<portfolio URL>",
  "summary": "<2-3 sentence professional summary>",
  "skills": ["<skill>", "..."],
  "experience": [
    {"title": "<job title>", "company": "<employer>", "startDate": "<start>", "endDate": "<end or Present>", "description": "<responsibilities and achievements>"}
  ],
  "education": [
    {"institution": "<school>", "degree": "<degree>", "field": "<field of study>", "graduationDate": "<graduation date>"}
  ]
}

Rules:
- Every field must be present. Use "" for unknown strings and [] for unknown lists; never omit a field.
- List experience and education in the order they appear in the resume.
- Do not invent information that is not in the text.`, resumeText)
}

// BuildCandidateScorePrompt scores one candidate profile against a job description.
func (pb *PromptBuilder) BuildCandidateScorePrompt(jobTitle, jobDescription string, resume *models.ParsedResumeData) string {
	if jobTitle == "" {
		jobTitle = "the open position"
	}

	return fmt.Sprintf(`You are an expert technical recruiter evaluating a candidate for %s.

JOB DESCRIPTION:
%s

CANDIDATE PROFILE:
%s

Score how well the candidate matches the job description.

Return ONLY a JSON object in this format:
{
  "score": <overall match 0-100>,
  "breakdown": {
    "skillsMatch": <0-100>,
    "experienceMatch": <0-100>,
    "educationMatch": <0-100>,
    "overallFit": <0-100>
  },
  "strengths": ["<3-5 specific strengths>"],
  "weaknesses": ["<2-4 specific gaps>"],
  "recommendation": "<one or two sentence hiring recommendation>"
}`, jobTitle, jobDescription, FormatCandidateProfile(resume))
}

// BuildMatchInsightsPrompt asks for pool-level insights over already scored candidates.
func (pb *PromptBuilder) BuildMatchInsightsPrompt(jobTitle, jobDescription string, scores []models.CandidateScore) string {
	var summary strings.Builder
	for _, s := range scores {
		fmt.Fprintf(&summary, "- #%d %s: score %d (skills %d, experience %d, education %d, fit %d); strengths: %s; weaknesses: %s\n",
			s.Rank, s.Name, s.Score,
			s.Breakdown.SkillsMatch, s.Breakdown.ExperienceMatch, s.Breakdown.EducationMatch, s.Breakdown.OverallFit,
			strings.Join(s.Strengths, "; "), strings.Join(s.Weaknesses, "; "))
	}

	return fmt.Sprintf(`You are a recruiting analyst reviewing a ranked candidate pool for %s.

JOB DESCRIPTION:
%s

CANDIDATE RESULTS:
%s
Return ONLY a JSON object in this format:
{
  "bestSkillMatches": ["<skills where the pool matches the job best>"],
  "commonGaps": ["<gaps shared by several candidates>"],
  "recommendedActions": ["<concrete next steps for the hiring team>"]
}`, orDefault(jobTitle, "the open position"), jobDescription, summary.String())
}

// BuildMarketInsightsPrompt seeds the model with the computed pool statistics.
func (pb *PromptBuilder) BuildMarketInsightsPrompt(stats *models.BatchAnalysisResult) string {
	skills := make([]string, 0, len(stats.TopSkills))
	for _, s := range stats.TopSkills {
		skills = append(skills, fmt.Sprintf("%s (%d%%)", s.Skill, s.Percentage))
	}

	return fmt.Sprintf(`You are a talent market analyst. Analyze this candidate pool of %d resumes.

TOP SKILLS: %s
TOP COMPANIES: %s
EXPERIENCE LEVELS: entry %d, mid %d, senior %d

Return ONLY a JSON object in this format:
{
  "recommendedSalaryRange": "<typical salary range for this pool>",
  "competitiveSkills": ["<skills that make candidates stand out>"],
  "improvementAreas": ["<areas the pool should develop>"],
  "emergingSkills": ["<emerging skills worth hiring for>"],
  "skillGaps": ["<skills missing from the pool>"]
}`,
		stats.TotalCandidates,
		orDefault(strings.Join(skills, ", "), "none"),
		orDefault(joinNames(stats.TopCompanies), "none"),
		stats.ExperienceLevels.Entry, stats.ExperienceLevels.Mid, stats.ExperienceLevels.Senior)
}

// FormatCandidateProfile renders a resume as prompt text. The candidate index embeds the same text.
func FormatCandidateProfile(resume *models.ParsedResumeData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Name: %s\n", resume.Name)
	if resume.Summary != "" {
		fmt.Fprintf(&b, "Summary: %s\n", resume.Summary)
	}
	fmt.Fprintf(&b, "Skills: %s\n", strings.Join(resume.Skills, ", "))

	b.WriteString("\nExperience:\n")
	for _, exp := range resume.Experience {
		fmt.Fprintf(&b, "- %s at %s (%s–%s): %s\n", exp.Title, exp.Company, exp.StartDate, exp.EndDate, exp.Description)
	}

	b.WriteString("\nEducation:\n")
	for _, edu := range resume.Education {
		fmt.Fprintf(&b, "- %s in %s at %s (%s)\n", edu.Degree, edu.Field, edu.Institution, edu.GraduationDate)
	}

	return b.String()
}

func joinNames(items []models.NameCount) string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return strings.Join(names, ", ")
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
