package organization

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Organization struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`

	Name               string `gorm:"type:varchar(160);not null;uniqueIndex:uq_organization_name"`
	Email              string `gorm:"type:varchar(160);not null;uniqueIndex:uq_organization_email"`
	Phone              string `gorm:"type:varchar(40)"`
	Address            string `gorm:"type:text"`
	Industry           string `gorm:"type:varchar(120)"`
	RegistrationNumber string `gorm:"type:varchar(80)"`

	// Human-facing tenant identifier handed out at onboarding.
	KrisID string `gorm:"column:kris_id;type:varchar(20);not null;uniqueIndex:uq_organization_kris_id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
