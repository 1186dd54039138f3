package services

import (
	"context"
	"log"
	"math"
	"sort"
	"strings"

	"alfredoptarigan/resume-screener/internal/models"
)

const (
	topSkillsLimit = 10
	topOtherLimit  = 5

	UnavailableSalaryRange = "Unable to determine"
)

type BatchAggregator interface {
	Analyze(ctx context.Context, resumes []models.ParsedResumeData) (*models.BatchAnalysisResult, error)
}

type batchAggregator struct {
	model   ModelClient
	prompts *PromptBuilder
}

func NewBatchAggregator(model ModelClient) BatchAggregator {
	return &batchAggregator{
		model:   model,
		prompts: NewPromptBuilder(),
	}
}

// Analyze implements BatchAggregator. A failed market-insights call degrades to
// defaults and never discards the computed statistics.
func (a *batchAggregator) Analyze(ctx context.Context, resumes []models.ParsedResumeData) (*models.BatchAnalysisResult, error) {
	if len(resumes) == 0 {
		return nil, &ValidationError{Field: "resumesData", Message: "at least one resume is required"}
	}

	result := ComputePoolStatistics(resumes)

	insights, err := a.marketInsights(ctx, result)
	if err != nil {
		log.Printf("⚠️ Market insights unavailable: %v", err)
		insights = defaultMarketInsights()
	}
	result.MarketInsights = insights

	return result, nil
}

// ComputePoolStatistics holds the numeric part of the analysis and makes no external call.
func ComputePoolStatistics(resumes []models.ParsedResumeData) *models.BatchAnalysisResult {
	skills := newCounter()
	companies := newCounter()
	universities := newCounter()
	titles := newCounter()

	var levels models.ExperienceLevels
	totalSkills := 0

	for _, resume := range resumes {
		totalSkills += len(resume.Skills)
		for _, skill := range resume.Skills {
			skills.add(skill)
		}
		for _, exp := range resume.Experience {
			companies.add(exp.Company)
			titles.add(exp.Title)
		}
		for _, edu := range resume.Education {
			universities.add(edu.Institution)
		}

		switch n := len(resume.Experience); {
		case n <= 2:
			levels.Entry++
		case n <= 4:
			levels.Mid++
		default:
			levels.Senior++
		}
	}

	n := len(resumes)
	topSkills := []models.SkillStat{}
	for _, item := range skills.top(topSkillsLimit) {
		topSkills = append(topSkills, models.SkillStat{
			Skill:      item.Name,
			Count:      item.Count,
			Percentage: roundInt(float64(item.Count) / float64(n) * 100),
		})
	}

	return &models.BatchAnalysisResult{
		TotalCandidates:           n,
		AverageSkillsPerCandidate: roundInt(float64(totalSkills) / float64(n)),
		TopSkills:                 topSkills,
		ExperienceLevels:          levels,
		TopCompanies:              companies.top(topOtherLimit),
		TopUniversities:           universities.top(topOtherLimit),
		CommonJobTitles:           titles.top(topOtherLimit),
	}
}

func (a *batchAggregator) marketInsights(ctx context.Context, stats *models.BatchAnalysisResult) (models.MarketInsights, error) {
	response, err := a.model.GenerateText(ctx, a.prompts.BuildMarketInsightsPrompt(stats))
	if err != nil {
		return models.MarketInsights{}, err
	}

	doc, err := DecodeJSON(response)
	if err != nil {
		return models.MarketInsights{}, err
	}

	return models.MarketInsights{
		RecommendedSalaryRange: orDefault(jsonString(doc.Get("recommendedSalaryRange")), UnavailableSalaryRange),
		CompetitiveSkills:      jsonStrings(doc.Get("competitiveSkills")),
		ImprovementAreas:       jsonStrings(doc.Get("improvementAreas")),
		EmergingSkills:         jsonStrings(doc.Get("emergingSkills")),
		SkillGaps:              jsonStrings(doc.Get("skillGaps")),
	}, nil
}

func defaultMarketInsights() models.MarketInsights {
	return models.MarketInsights{
		RecommendedSalaryRange: UnavailableSalaryRange,
		CompetitiveSkills:      []string{},
		ImprovementAreas:       []string{},
		EmergingSkills:         []string{},
		SkillGaps:              []string{},
	}
}

// counter keeps first-seen order so a stable sort breaks ties by appearance.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	if _, seen := c.counts[value]; !seen {
		c.order = append(c.order, value)
	}
	c.counts[value]++
}

func (c *counter) top(limit int) []models.NameCount {
	items := make([]models.NameCount, 0, len(c.order))
	for _, name := range c.order {
		items = append(items, models.NameCount{Name: name, Count: c.counts[name]})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Count > items[j].Count
	})

	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
