package services

import (
	"context"

	"github.com/tidwall/gjson"

	"alfredoptarigan/resume-screener/internal/models"
)

type ResumeParser interface {
	Parse(ctx context.Context, text string) (*models.ParsedResumeData, error)
}

type resumeParser struct {
	model   ModelClient
	prompts *PromptBuilder
}

func NewResumeParser(model ModelClient) ResumeParser {
	return &resumeParser{
		model:   model,
		prompts: NewPromptBuilder(),
	}
}

// Parse implements ResumeParser. The model call is not retried.
func (p *resumeParser) Parse(ctx context.Context, text string) (*models.ParsedResumeData, error) {
	response, err := p.model.GenerateText(ctx, p.prompts.BuildResumeParsePrompt(text))
	if err != nil {
		return nil, err
	}

	doc, err := DecodeJSON(response)
	if err != nil {
		return nil, err
	}

	return resumeFromJSON(doc), nil
}

// resumeFromJSON never fails: missing strings become "" and non-array lists become empty.
func resumeFromJSON(doc gjson.Result) *models.ParsedResumeData {
	resume := &models.ParsedResumeData{
		Name:       jsonString(doc.Get("name")),
		Email:      jsonString(doc.Get("email")),
		Phone:      jsonString(doc.Get("phone")),
		LinkedIn:   jsonString(doc.Get("linkedin")),
		GitHub:     jsonString(doc.Get("github")),
		Portfolio:  jsonString(doc.Get("portfolio")),
		Summary:    jsonString(doc.Get("summary")),
		Skills:     jsonStrings(doc.Get("skills")),
		Experience: []models.Experience{},
		Education:  []models.Education{},
	}

	for _, item := range jsonObjects(doc.Get("experience")) {
		resume.Experience = append(resume.Experience, models.Experience{
			Title:       jsonString(item.Get("title")),
			Company:     jsonString(item.Get("company")),
			StartDate:   jsonString(item.Get("startDate")),
			EndDate:     jsonString(item.Get("endDate")),
			Description: jsonString(item.Get("description")),
		})
	}

	for _, item := range jsonObjects(doc.Get("education")) {
		resume.Education = append(resume.Education, models.Education{
			Institution:    jsonString(item.Get("institution")),
			Degree:         jsonString(item.Get("degree")),
			Field:          jsonString(item.Get("field")),
			GraduationDate: jsonString(item.Get("graduationDate")),
		})
	}

	return resume
}
