package models

type JobMatchRequest struct {
	Candidates     []ProcessingResult `json:"candidates" validate:"required,min=1"`
	JobDescription string             `json:"jobDescription" validate:"notblank"`
	JobTitle       string             `json:"jobTitle"`
}

type BatchAnalysisRequest struct {
	ResumesData []ParsedResumeData `json:"resumesData" validate:"required,min=1"`
}

type UploadResponse struct {
	Success bool               `json:"success"`
	Results []ProcessingResult `json:"results"`
	Message string             `json:"message"`
}

type JobMatchResponse struct {
	Success bool            `json:"success"`
	Result  *JobMatchResult `json:"result"`
}

type BatchAnalysisResponse struct {
	Success  bool                 `json:"success"`
	Analysis *BatchAnalysisResult `json:"analysis"`
}

type CandidateSearchResult struct {
	CandidateID string  `json:"candidateId"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Score       float32 `json:"score"`
	Snippet     string  `json:"snippet"`
}
