package db

import (
	"gorm.io/gorm"

	"github.com/careerlens/careerlens-backend/internal/types"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.RoleBenchmark{},
		&types.RoleSkillProfile{},
		&types.ResumeAnalysis{},
	)
}
