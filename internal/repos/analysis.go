package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/careerlens/careerlens-backend/internal/platform/logger"
	"github.com/careerlens/careerlens-backend/internal/types"
)

type AnalysisRepo interface {
	Create(ctx context.Context, tx *gorm.DB, analysis *types.ResumeAnalysis) error
}

type analysisRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnalysisRepo(db *gorm.DB, baseLog *logger.Logger) AnalysisRepo {
	return &analysisRepo{db: db, log: baseLog.With("repo", "AnalysisRepo")}
}

func (ar *analysisRepo) Create(ctx context.Context, tx *gorm.DB, analysis *types.ResumeAnalysis) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	return transaction.WithContext(ctx).Create(analysis).Error
}
