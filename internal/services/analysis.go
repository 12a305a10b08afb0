package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careerlens/careerlens-backend/internal/platform/adzuna"
	"github.com/careerlens/careerlens-backend/internal/platform/logger"
	"github.com/careerlens/careerlens-backend/internal/repos"
	"github.com/careerlens/careerlens-backend/internal/types"
)

// profileSummaryRunes caps how much resume text the growth prompt carries.
const profileSummaryRunes = 1000

// AnalysisResult is the full assembled output of one pipeline run: the
// persisted record fields plus the improvement plan, the (nullable) dashboard
// summary, the deterministic cross-check, and live job listings.
type AnalysisResult struct {
	ID                   uuid.UUID         `json:"id"`
	TargetRole           string            `json:"target_role"`
	ExtractedSkills      []string          `json:"extracted_skills"`
	MatchedSkills        []string          `json:"matched_skills"`
	MissingSkills        []string          `json:"missing_skills"`
	MatchPercentage      float64           `json:"match_percentage"`
	ReadinessScore       float64           `json:"readiness_score"`
	Reason               string            `json:"reason,omitempty"`
	Roadmap              Roadmap           `json:"roadmap"`
	ConfidenceScore      float64           `json:"confidence_score"`
	Embedding            []float64         `json:"embedding"`
	BenchmarkVersion     string            `json:"benchmark_version"`
	ImprovementPlan      *GrowthResult     `json:"improvement_plan"`
	DashboardSummary     *DashboardSummary `json:"dashboard_summary"`
	DeterministicScore   float64           `json:"deterministic_score"`
	DeterministicMatched []string          `json:"deterministic_matched"`
	RoleProfileVersion   int               `json:"role_profile_version"`
	LiveJobs             []adzuna.Job      `json:"live_jobs"`
	CreatedAt            time.Time         `json:"created_at"`
}

type AnalysisService interface {
	Analyze(ctx context.Context, resumeText, targetRole string) (*AnalysisResult, error)
}

type analysisService struct {
	log        *logger.Logger
	benchmarks BenchmarkService
	profiles   RoleProfileService
	fit        FitService
	growth     GrowthService
	dashboard  DashboardService
	analyses   repos.AnalysisRepo
	jobs       adzuna.Searcher

	now func() time.Time
}

func NewAnalysisService(
	baseLog *logger.Logger,
	benchmarks BenchmarkService,
	profiles RoleProfileService,
	fit FitService,
	growth GrowthService,
	dashboard DashboardService,
	analyses repos.AnalysisRepo,
	jobs adzuna.Searcher,
) AnalysisService {
	return &analysisService{
		log:        baseLog.With("service", "AnalysisService"),
		benchmarks: benchmarks,
		profiles:   profiles,
		fit:        fit,
		growth:     growth,
		dashboard:  dashboard,
		analyses:   analyses,
		jobs:       jobs,
		now:        time.Now,
	}
}

// Analyze runs the full evaluation sequence. Benchmark, fit, and growth are
// hard stages that abort on failure; the dashboard and the deterministic
// cross-check only degrade the result.
func (s *analysisService) Analyze(ctx context.Context, resumeText, targetRole string) (*AnalysisResult, error) {
	role := NormalizeRole(targetRole)

	benchmark, err := s.benchmarks.GetBenchmark(ctx, role)
	if err != nil {
		return nil, err
	}

	fitResult, err := s.fit.Evaluate(ctx, resumeText, benchmark)
	if err != nil {
		return nil, err
	}

	growthResult, err := s.growth.Simulate(ctx, role, fitResult.MatchPercentage, fitResult.MissingSkills, headRunes(resumeText, profileSummaryRunes))
	if err != nil {
		return nil, err
	}

	summary, err := s.dashboard.Synthesize(ctx, role, fitResult, growthResult)
	if err != nil {
		s.log.Warn("dashboard synthesis failed, continuing without summary", "role", role, "error", err)
		summary = nil
	}

	detScore, detMatched := 0.0, []string(nil)
	profileVersion := 0
	if profile, profErr := s.profiles.GetOrCreate(ctx, role); profErr != nil {
		s.log.Warn("role profile unavailable, skipping deterministic cross-check", "role", role, "error", profErr)
	} else {
		detScore, detMatched = DeterministicScore(fitResult.ExtractedSkills, types.StringSlice(profile.RequiredSkills))
		profileVersion = profile.Version
	}

	record := &types.ResumeAnalysis{
		ID:                 uuid.New(),
		TargetRole:         role,
		ExtractedSkills:    types.ToJSON(fitResult.ExtractedSkills),
		MatchedSkills:      types.ToJSON(fitResult.MatchedSkills),
		MissingSkills:      types.ToJSON(fitResult.MissingSkills),
		MatchPercentage:    fitResult.MatchPercentage,
		ReadinessScore:     fitResult.ReadinessScore,
		Roadmap:            types.ToJSON(fitResult.Roadmap),
		ConfidenceScore:    ConfidenceScore(fitResult.MatchPercentage),
		Embedding:          types.ToJSON(ResumeEmbedding(resumeText)),
		BenchmarkVersion:   benchmark.Version,
		RoleProfileVersion: profileVersion,
		CreatedAt:          s.now(),
	}
	if err := s.analyses.Create(ctx, nil, record); err != nil {
		return nil, fmt.Errorf("persist analysis: %w", err)
	}

	return &AnalysisResult{
		ID:                   record.ID,
		TargetRole:           role,
		ExtractedSkills:      fitResult.ExtractedSkills,
		MatchedSkills:        fitResult.MatchedSkills,
		MissingSkills:        fitResult.MissingSkills,
		MatchPercentage:      fitResult.MatchPercentage,
		ReadinessScore:       fitResult.ReadinessScore,
		Reason:               fitResult.Reason,
		Roadmap:              fitResult.Roadmap,
		ConfidenceScore:      record.ConfidenceScore,
		Embedding:            ResumeEmbedding(resumeText),
		BenchmarkVersion:     benchmark.Version,
		ImprovementPlan:      growthResult,
		DashboardSummary:     summary,
		DeterministicScore:   detScore,
		DeterministicMatched: detMatched,
		RoleProfileVersion:   profileVersion,
		LiveJobs:             s.jobs.Search(ctx, role),
		CreatedAt:            record.CreatedAt,
	}, nil
}

func headRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
