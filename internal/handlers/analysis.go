package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/careerlens/careerlens-backend/internal/cache"
	"github.com/careerlens/careerlens-backend/internal/extract"
	"github.com/careerlens/careerlens-backend/internal/platform/apierr"
	"github.com/careerlens/careerlens-backend/internal/platform/gemini"
	"github.com/careerlens/careerlens-backend/internal/platform/logger"
	"github.com/careerlens/careerlens-backend/internal/services"
)

type AnalysisHandler struct {
	log             *logger.Logger
	analysisService services.AnalysisService
	analysisCache   *cache.AnalysisCache
}

func NewAnalysisHandler(baseLog *logger.Logger, analysisService services.AnalysisService, analysisCache *cache.AnalysisCache) *AnalysisHandler {
	return &AnalysisHandler{
		log:             baseLog.With("handler", "AnalysisHandler"),
		analysisService: analysisService,
		analysisCache:   analysisCache,
	}
}

// POST /api/analyze-resume
// Multipart: resume_file + target_role. Returns 200 with the cached result on
// a hit, 201 with a freshly computed one otherwise.
func (ah *AnalysisHandler) AnalyzeResume(c *gin.Context) {
	fileHeader, err := c.FormFile("resume_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resume_file is required"})
		return
	}
	targetRole := strings.TrimSpace(c.PostForm("target_role"))
	if targetRole == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target_role is required"})
		return
	}

	resumeText, err := extract.FromUpload(fileHeader)
	if err != nil {
		ah.log.Warn("resume extraction failed", "file", fileHeader.Filename, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "text extraction failed"})
		return
	}

	ctx := c.Request.Context()
	if cached, ok := ah.analysisCache.Get(ctx, resumeText, targetRole); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
		return
	}

	result, err := ah.analysisService.Analyze(ctx, resumeText, targetRole)
	if err != nil {
		ah.respondError(c, err)
		return
	}

	if serialized, marshalErr := json.Marshal(result); marshalErr == nil {
		ah.analysisCache.Set(ctx, resumeText, targetRole, string(serialized))
	}
	c.JSON(http.StatusCreated, result)
}

// respondError maps a pipeline failure to the caller-visible category and the
// stage that failed.
func (ah *AnalysisHandler) respondError(c *gin.Context, err error) {
	apiErr := classify(err)
	ah.log.Error("analysis failed", "code", apiErr.Code, "error", err.Error())
	c.JSON(apiErr.Status, gin.H{"error": "processing failed", "code": apiErr.Code})
}

func classify(err error) *apierr.Error {
	switch {
	case errors.Is(err, gemini.ErrCredentialsMissing):
		return apierr.New(http.StatusBadGateway, "credentials_missing", err)
	case errors.Is(err, services.ErrBenchmarkUnavailable):
		return apierr.New(http.StatusBadGateway, "benchmark_unavailable", err)
	case errors.Is(err, services.ErrInvalidResponse):
		return apierr.New(http.StatusBadGateway, "invalid_fit_response", err)
	case errors.Is(err, services.ErrFitUnavailable):
		return apierr.New(http.StatusBadGateway, "fit_unavailable", err)
	case errors.Is(err, services.ErrGrowthUnavailable):
		return apierr.New(http.StatusBadGateway, "growth_unavailable", err)
	default:
		return apierr.New(http.StatusBadGateway, "processing_failed", err)
	}
}
