package leave

type CreateLeavePlanRequest struct {
	Name     string `json:"leave_name" binding:"required"`
	Duration int    `json:"leave_duration" binding:"required,gt=0"`
}

type ApplyLeaveRequest struct {
	LeaveName string `json:"leave_name" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

type LeavePlanResponse struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	Name           string `json:"leave_name"`
	Duration       int    `json:"leave_duration"`
}

type LeaveBalanceResponse struct {
	ID                string `json:"id"`
	EmployeeID        string `json:"employee_id"`
	LeaveID           string `json:"leave_id"`
	LeaveName         string `json:"leave_name"`
	RemainingDuration int    `json:"remaining_duration"`
}

type LeaveApplicationResponse struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	EmployeeID     string `json:"employee_id"`
	LeaveName      string `json:"leave_name"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Duration       int    `json:"duration"`
	Reason         string `json:"reason,omitempty"`
	Status         string `json:"status"`
}

// LeaveRequestResponse is one entry in a team, branch, or department
// approval queue.
type LeaveRequestResponse struct {
	ID            string `json:"id"`
	ApplicationID string `json:"application_id"`
	EmployeeID    string `json:"employee_id"`
	LeaveName     string `json:"leave_name"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Duration      int    `json:"duration"`
	Decision      string `json:"decision"`
}
