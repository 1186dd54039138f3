package models

type SkillStat struct {
	Skill      string `json:"skill"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type ExperienceLevels struct {
	Entry  int `json:"entry"`
	Mid    int `json:"mid"`
	Senior int `json:"senior"`
}

type MarketInsights struct {
	RecommendedSalaryRange string   `json:"recommendedSalaryRange"`
	CompetitiveSkills      []string `json:"competitiveSkills"`
	ImprovementAreas       []string `json:"improvementAreas"`
	EmergingSkills         []string `json:"emergingSkills"`
	SkillGaps              []string `json:"skillGaps"`
}

type BatchAnalysisResult struct {
	TotalCandidates           int              `json:"totalCandidates"`
	AverageSkillsPerCandidate int              `json:"averageSkillsPerCandidate"`
	TopSkills                 []SkillStat      `json:"topSkills"`
	ExperienceLevels          ExperienceLevels `json:"experienceLevels"`
	TopCompanies              []NameCount      `json:"topCompanies"`
	TopUniversities           []NameCount      `json:"topUniversities"`
	CommonJobTitles           []NameCount      `json:"commonJobTitles"`
	MarketInsights            MarketInsights   `json:"marketInsights"`
}
