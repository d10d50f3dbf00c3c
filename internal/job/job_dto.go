package job

type CreateJobOpeningRequest struct {
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description"`
	Location       string `json:"location"`
	EmploymentType string `json:"employment_type" binding:"omitempty,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP"`
}

type UpdateJobOpeningRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Location       string `json:"location"`
	EmploymentType string `json:"employment_type" binding:"omitempty,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP"`
}

type JobOpeningResponse struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	Location       string `json:"location,omitempty"`
	EmploymentType string `json:"employment_type"`
	Status         string `json:"status"`
}
