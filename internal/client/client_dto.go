package client

type CreateClientRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateClientRequest struct {
	Name string `json:"name" binding:"required"`
}

type ClientResponse struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name"`
}
