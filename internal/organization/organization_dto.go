package organization

type CreateOrganizationRequest struct {
	Name               string `json:"name" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	Phone              string `json:"phone"`
	Address            string `json:"address"`
	Industry           string `json:"industry"`
	RegistrationNumber string `json:"registration_number"`
}

type UpdateOrganizationRequest struct {
	Name               string `json:"name"`
	Email              string `json:"email" binding:"omitempty,email"`
	Phone              string `json:"phone"`
	Address            string `json:"address"`
	Industry           string `json:"industry"`
	RegistrationNumber string `json:"registration_number"`
}

type OrganizationResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Phone              string `json:"phone,omitempty"`
	Address            string `json:"address,omitempty"`
	Industry           string `json:"industry,omitempty"`
	RegistrationNumber string `json:"registration_number,omitempty"`
	KrisID             string `json:"kris_id"`
}
