package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RoleBenchmark is the externally-sourced, versioned definition of what the
// market expects for a role. At most one live record exists per normalized
// role; the version strictly increases on every regeneration.
type RoleBenchmark struct {
	ID                    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Role                  string         `gorm:"uniqueIndex;not null;column:role" json:"role"`
	CoreSkills            datatypes.JSON `gorm:"column:core_skills" json:"core_skills"`
	AdvancedSkills        datatypes.JSON `gorm:"column:advanced_skills" json:"advanced_skills"`
	ExperienceExpectation string         `gorm:"type:text;column:experience_expectation" json:"experience_expectation"`
	ProjectExpectation    string         `gorm:"type:text;column:project_expectation" json:"project_expectation"`
	Version               string         `gorm:"not null;default:'v1.0';column:version" json:"version"`
	CreatedAt             time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt             time.Time      `gorm:"not null" json:"updated_at"`
}

func (RoleBenchmark) TableName() string {
	return "role_market_benchmarks"
}
