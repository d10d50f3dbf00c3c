package employee

type OnboardEmployeeRequest struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	Role         string `json:"role" binding:"omitempty,oneof=EMPLOYEE MANAGER ADMIN"`
	HireDate     string `json:"hire_date" binding:"required"`
	DepartmentID string `json:"department_id" binding:"omitempty,uuid"`
	TeamID       string `json:"team_id" binding:"omitempty,uuid"`
	BranchID     string `json:"branch_id" binding:"omitempty,uuid"`
	ClientID     string `json:"client_id" binding:"omitempty,uuid"`
	BasicSalary  string `json:"basic_salary"`
}

type UpdateEmployeeRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	Role         string `json:"role" binding:"omitempty,oneof=EMPLOYEE MANAGER ADMIN"`
	Status       string `json:"status" binding:"omitempty,oneof=ACTIVE LEAVE SUSPENDED TERMINATED"`
	DepartmentID string `json:"department_id" binding:"omitempty,uuid"`
	TeamID       string `json:"team_id" binding:"omitempty,uuid"`
	BranchID     string `json:"branch_id" binding:"omitempty,uuid"`
	ClientID     string `json:"client_id" binding:"omitempty,uuid"`
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	OrganizationID string  `json:"organization_id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone,omitempty"`
	EmployeeNumber string  `json:"employee_number"`
	Role           string  `json:"role"`
	Status         string  `json:"status"`
	HireDate       string  `json:"hire_date"`
	DepartmentID   *string `json:"department_id,omitempty"`
	TeamID         *string `json:"team_id,omitempty"`
	BranchID       *string `json:"branch_id,omitempty"`
	ClientID       *string `json:"client_id,omitempty"`

	BasicSalary     string `json:"basic_salary"`
	Housing         string `json:"housing"`
	Transport       string `json:"transport"`
	Allowance       string `json:"allowance"`
	Bonus           string `json:"bonus"`
	Deduction       string `json:"deduction"`
	Tax             string `json:"tax"`
	EmployerPension string `json:"employer_pension"`
	GrossPay        string `json:"gross_pay"`
	NetPay          string `json:"net_pay"`
}
