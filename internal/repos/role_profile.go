package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/careerlens/careerlens-backend/internal/platform/logger"
	"github.com/careerlens/careerlens-backend/internal/types"
)

type RoleProfileRepo interface {
	GetByRole(ctx context.Context, tx *gorm.DB, roleName string) (*types.RoleSkillProfile, error)
	Create(ctx context.Context, tx *gorm.DB, profile *types.RoleSkillProfile) error
	Save(ctx context.Context, tx *gorm.DB, profile *types.RoleSkillProfile) error
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.RoleSkillProfile, error)
}

type roleProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRoleProfileRepo(db *gorm.DB, baseLog *logger.Logger) RoleProfileRepo {
	return &roleProfileRepo{db: db, log: baseLog.With("repo", "RoleProfileRepo")}
}

// GetByRole returns nil without error when no profile exists for the role.
func (rr *roleProfileRepo) GetByRole(ctx context.Context, tx *gorm.DB, roleName string) (*types.RoleSkillProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var result types.RoleSkillProfile
	err := transaction.WithContext(ctx).Where("role_name = ?", roleName).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *roleProfileRepo) Create(ctx context.Context, tx *gorm.DB, profile *types.RoleSkillProfile) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).Create(profile).Error
}

func (rr *roleProfileRepo) Save(ctx context.Context, tx *gorm.DB, profile *types.RoleSkillProfile) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).Save(profile).Error
}

func (rr *roleProfileRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.RoleSkillProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.RoleSkillProfile
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
