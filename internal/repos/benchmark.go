package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/careerlens/careerlens-backend/internal/platform/logger"
	"github.com/careerlens/careerlens-backend/internal/types"
)

type BenchmarkRepo interface {
	GetByRole(ctx context.Context, tx *gorm.DB, role string) (*types.RoleBenchmark, error)
	Save(ctx context.Context, tx *gorm.DB, benchmark *types.RoleBenchmark) error
}

type benchmarkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBenchmarkRepo(db *gorm.DB, baseLog *logger.Logger) BenchmarkRepo {
	return &benchmarkRepo{db: db, log: baseLog.With("repo", "BenchmarkRepo")}
}

// GetByRole returns nil without error when no record exists for the role.
func (br *benchmarkRepo) GetByRole(ctx context.Context, tx *gorm.DB, role string) (*types.RoleBenchmark, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var result types.RoleBenchmark
	err := transaction.WithContext(ctx).Where("role = ?", role).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (br *benchmarkRepo) Save(ctx context.Context, tx *gorm.DB, benchmark *types.RoleBenchmark) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	return transaction.WithContext(ctx).Save(benchmark).Error
}
