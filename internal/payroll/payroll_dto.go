package payroll

type CreatePayrollPreviewRequest struct {
	Name        string `json:"name" binding:"required"`
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
}

// UpdateEmployeePayrollRequest carries monetary figures as strings.
// Every field present is parsed as a decimal and rejected when it is not
// numeric; empty fields are written as zero. Gross and net are stored as
// supplied, never recomputed.
type UpdateEmployeePayrollRequest struct {
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

type AddPreviewEmployeeRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
}

type PayrollPreviewResponse struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	CreatedBy      string `json:"created_by"`
	PeriodStart    string `json:"period_start"`
	PeriodEnd      string `json:"period_end"`
}

type PreviewEmployeeResponse struct {
	EmployeeID string `json:"employee_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`

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

type PayrollTotalsResponse struct {
	Taxes           string `json:"taxes"`
	GrossPay        string `json:"gross_pay"`
	Bonus           string `json:"bonus"`
	Deduction       string `json:"deduction"`
	EmployerPension string `json:"employer_pension"`
	NetPay          string `json:"net_pay"`
}

type PayrollAndTotalResponse struct {
	Preview   PayrollPreviewResponse    `json:"preview"`
	Employees []PreviewEmployeeResponse `json:"employees"`
	Totals    PayrollTotalsResponse     `json:"totals"`
}

type OrganizationPayrollResponse struct {
	ID               string                    `json:"id"`
	PayrollPreviewID string                    `json:"payroll_preview_id"`
	Name             string                    `json:"name"`
	Totals           PayrollTotalsResponse     `json:"totals"`
	ApprovedBy       string                    `json:"approved_by"`
	ApprovedAt       string                    `json:"approved_at"`
	Employees        []PreviewEmployeeResponse `json:"employees,omitempty"`
}
