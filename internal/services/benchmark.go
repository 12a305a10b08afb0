package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/careerlens/careerlens-backend/internal/llmjson"
	"github.com/careerlens/careerlens-backend/internal/platform/gemini"
	"github.com/careerlens/careerlens-backend/internal/platform/logger"
	"github.com/careerlens/careerlens-backend/internal/repos"
	"github.com/careerlens/careerlens-backend/internal/types"
)

// benchmarkFreshness is the window within which a stored benchmark is
// authoritative and no external call is made.
const benchmarkFreshness = 7 * 24 * time.Hour

// NormalizeRole trims and title-cases a role name so "  backend developer "
// and "Backend Developer" address the same records.
func NormalizeRole(role string) string {
	words := strings.Fields(role)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

type BenchmarkService interface {
	GetBenchmark(ctx context.Context, role string) (*types.RoleBenchmark, error)
}

type benchmarkService struct {
	log  *logger.Logger
	repo repos.BenchmarkRepo
	llm  gemini.Generator

	// now is injected so staleness boundaries are testable.
	now func() time.Time
}

func NewBenchmarkService(baseLog *logger.Logger, repo repos.BenchmarkRepo, llm gemini.Generator) BenchmarkService {
	return &benchmarkService{
		log:  baseLog.With("service", "BenchmarkService"),
		repo: repo,
		llm:  llm,
		now:  time.Now,
	}
}

type benchmarkReply struct {
	CoreSkills            []string `json:"core_skills"`
	AdvancedSkills        []string `json:"advanced_skills"`
	ExperienceExpectation string   `json:"experience_expectation"`
	ProjectExpectation    string   `json:"project_expectation"`
}

// GetBenchmark returns the stored benchmark when it is younger than the
// freshness window, otherwise regenerates it and bumps the version. A
// regeneration failure is terminal even when a stale record exists; callers
// must not proceed without a benchmark.
func (s *benchmarkService) GetBenchmark(ctx context.Context, role string) (*types.RoleBenchmark, error) {
	clean := NormalizeRole(role)

	existing, err := s.repo.GetByRole(ctx, nil, clean)
	if err != nil {
		return nil, fmt.Errorf("%w: load benchmark: %v", ErrBenchmarkUnavailable, err)
	}
	if existing != nil && s.now().Sub(existing.CreatedAt) < benchmarkFreshness {
		return existing, nil
	}

	raw, err := s.llm.Generate(ctx, benchmarkPrompt(clean))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBenchmarkUnavailable, err)
	}

	var reply benchmarkReply
	if err := llmjson.Unmarshal(raw, &reply); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBenchmarkUnavailable, err)
	}
	if len(reply.CoreSkills) == 0 || len(reply.AdvancedSkills) == 0 ||
		strings.TrimSpace(reply.ExperienceExpectation) == "" ||
		strings.TrimSpace(reply.ProjectExpectation) == "" {
		return nil, fmt.Errorf("%w: reply missing required benchmark fields", ErrBenchmarkUnavailable)
	}

	record := existing
	if record == nil {
		record = &types.RoleBenchmark{
			ID:      uuid.New(),
			Role:    clean,
			Version: "v1.0",
		}
	} else {
		record.Version = nextBenchmarkVersion(record.Version)
	}
	record.CoreSkills = types.ToJSON(reply.CoreSkills)
	record.AdvancedSkills = types.ToJSON(reply.AdvancedSkills)
	record.ExperienceExpectation = reply.ExperienceExpectation
	record.ProjectExpectation = reply.ProjectExpectation
	// Regeneration restarts the freshness window.
	record.CreatedAt = s.now()

	if err := s.repo.Save(ctx, nil, record); err != nil {
		return nil, fmt.Errorf("%w: save benchmark: %v", ErrBenchmarkUnavailable, err)
	}
	s.log.Info("benchmark regenerated", "role", clean, "version", record.Version)
	return record, nil
}

// nextBenchmarkVersion bumps the minor component of a "v1.0"-style version by
// 0.1. An unparseable stored version restarts at v1.0.
func nextBenchmarkVersion(current string) string {
	n, err := strconv.ParseFloat(strings.TrimPrefix(current, "v"), 64)
	if err != nil {
		return "v1.0"
	}
	return fmt.Sprintf("v%.1f", math.Round((n+0.1)*10)/10)
}

func benchmarkPrompt(role string) string {
	return fmt.Sprintf(`You are an AI Career Intelligence Engine.
Define the realistic required skill structure for the role: %q
Based on current Indian tech market standards.

Return output strictly in JSON format:
{
  "core_skills": [],
  "advanced_skills": [],
  "experience_expectation": "",
  "project_expectation": ""
}`, role)
}
