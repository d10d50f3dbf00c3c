package branch

type CreateBranchRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateBranchRequest struct {
	Name string `json:"name" binding:"required"`
}

type BranchResponse struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name"`
}
