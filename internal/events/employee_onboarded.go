package events

import "time"

const EmployeeOnboardedTopic = "hr.employee.lifecycle.v1"

type EmployeeOnboardedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	EmployeeID     string    `json:"employee_id"`
	OrganizationID string    `json:"organization_id"`
	OccurredAt     time.Time `json:"occurred_at"`
}
