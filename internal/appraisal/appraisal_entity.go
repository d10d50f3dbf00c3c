package appraisal

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending   = "PENDING"
	StatusSubmitted = "SUBMITTED"
)

// Appraisal is a review template: a tree of sections and questions that
// gets fanned out to employees as EmployeeAppraisal rows.
type Appraisal struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Title          string    `gorm:"type:varchar(160);not null"`
	Description    string    `gorm:"type:text"`

	Sections []AppraisalSection `gorm:"foreignKey:AppraisalID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Appraisal) TableName() string {
	return "appraisals"
}

type AppraisalSection struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AppraisalID uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(160);not null"`
	Position    int       `gorm:"not null;default:0"`

	Questions []AppraisalQuestion `gorm:"foreignKey:SectionID"`

	CreatedAt time.Time
}

func (AppraisalSection) TableName() string {
	return "appraisal_sections"
}

type AppraisalQuestion struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SectionID uuid.UUID `gorm:"type:uuid;not null;index"`
	Prompt    string    `gorm:"type:text;not null"`
	Position  int       `gorm:"not null;default:0"`

	CreatedAt time.Time
}

func (AppraisalQuestion) TableName() string {
	return "appraisal_questions"
}

// EmployeeAppraisal tracks one employee's participation in a cycle.
type EmployeeAppraisal struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	AppraisalID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_employee_appraisal"`
	EmployeeID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_employee_appraisal"`
	Status         string    `gorm:"type:varchar(20);not null;default:'PENDING'"`
	SubmittedAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (EmployeeAppraisal) TableName() string {
	return "employee_appraisals"
}

// AppraisalResponse stores the submitted text for one question. No
// scoring is computed; storage only.
type AppraisalResponse struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeAppraisalID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_appraisal_response"`
	QuestionID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_appraisal_response"`
	Answer              string    `gorm:"type:text;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AppraisalResponse) TableName() string {
	return "appraisal_responses"
}
