package job

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusOpen   = "OPEN"
	StatusClosed = "CLOSED"
)

type JobOpening struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title          string         `gorm:"size:255;not null"`
	Description    string         `gorm:"type:text"`
	Location       string         `gorm:"size:160"`
	EmploymentType string         `gorm:"size:40;not null;default:'FULL_TIME'"`
	Status         string         `gorm:"size:20;not null;default:'OPEN'"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (JobOpening) TableName() string {
	return "job_openings"
}
