package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RoleSkillProfile is the locked, canonical list of required skills per role
// used by the deterministic scorer. Once locked with a non-empty skill list it
// is reused verbatim until explicitly unlocked. Profiles are never deleted.
type RoleSkillProfile struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	RoleName       string         `gorm:"uniqueIndex;not null;column:role_name" json:"role_name"`
	RequiredSkills datatypes.JSON `gorm:"column:required_skills" json:"required_skills"`
	Version        int            `gorm:"not null;default:1;column:version" json:"version"`
	Locked         bool           `gorm:"not null;default:false;column:is_locked" json:"locked"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
}

func (RoleSkillProfile) TableName() string {
	return "role_skill_profiles"
}
