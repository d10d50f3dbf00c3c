package branch

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Branch struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name           string         `gorm:"size:255;not null;uniqueIndex:uq_branch_org_name"`
	OrganizationID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_branch_org_name"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}
