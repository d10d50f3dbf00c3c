package appraisal

type CreateAppraisalRequest struct {
	Title       string                 `json:"title" binding:"required"`
	Description string                 `json:"description"`
	Sections    []CreateSectionRequest `json:"sections" binding:"required,min=1,dive"`
}

type CreateSectionRequest struct {
	Title     string   `json:"title" binding:"required"`
	Questions []string `json:"questions" binding:"required,min=1"`
}

type SubmitResponsesRequest struct {
	Responses []QuestionResponse `json:"responses" binding:"required,min=1,dive"`
}

type QuestionResponse struct {
	QuestionID string `json:"question_id" binding:"required,uuid"`
	Answer     string `json:"answer" binding:"required"`
}

type AppraisalResponseDTO struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

type QuestionDTO struct {
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
}

type SectionDTO struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Questions []QuestionDTO `json:"questions"`
}

type AppraisalDTO struct {
	ID             string       `json:"id"`
	OrganizationID string       `json:"organization_id"`
	Title          string       `json:"title"`
	Description    string       `json:"description,omitempty"`
	Sections       []SectionDTO `json:"sections,omitempty"`
}

type EmployeeAppraisalDTO struct {
	ID          string                 `json:"id"`
	AppraisalID string                 `json:"appraisal_id"`
	EmployeeID  string                 `json:"employee_id"`
	Status      string                 `json:"status"`
	SubmittedAt string                 `json:"submitted_at,omitempty"`
	Responses   []AppraisalResponseDTO `json:"responses,omitempty"`
}
