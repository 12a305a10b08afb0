package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/careerlens/careerlens-backend/internal/llmjson"
	"github.com/careerlens/careerlens-backend/internal/platform/gemini"
	"github.com/careerlens/careerlens-backend/internal/platform/logger"
)

// Static Tier-1 India salary bands keyed by normalized role.
var salaryTiers = map[string]string{
	"Data Analyst":      "₹8L - ₹18L",
	"Business Analyst":  "₹10L - ₹22L",
	"Backend Developer": "₹12L - ₹35L",
	"DevOps Engineer":   "₹14L - ₹40L",
}

const fallbackSalaryBand = "₹10L - ₹25L"

// DashboardSummary is the executive narrative layer over the computed fit and
// growth numbers.
type DashboardSummary struct {
	ExecutiveSummary string   `json:"executive_summary"`
	TopRoles         []string `json:"top_roles"`
	SalaryInsight    string   `json:"salary_insight"`
	GrowthRoadmap    []string `json:"growth_roadmap"`
}

type DashboardService interface {
	Synthesize(ctx context.Context, role string, fit *FitResult, growth *GrowthResult) (*DashboardSummary, error)
}

type dashboardService struct {
	log *logger.Logger
	llm gemini.Generator
}

func NewDashboardService(baseLog *logger.Logger, llm gemini.Generator) DashboardService {
	return &dashboardService{
		log: baseLog.With("service", "DashboardService"),
		llm: llm,
	}
}

// Synthesize narrates the already-computed percentages and skill lists. It
// never recomputes or overrides them. Failure here degrades the final result
// rather than aborting the pipeline.
func (s *dashboardService) Synthesize(ctx context.Context, role string, fit *FitResult, growth *GrowthResult) (*DashboardSummary, error) {
	salaryRange := SalaryBand(role)

	raw, err := s.llm.Generate(ctx, dashboardPrompt(role, salaryRange, fit, growth))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDashboardUnavailable, err)
	}

	var summary DashboardSummary
	if err := llmjson.Unmarshal(raw, &summary); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDashboardUnavailable, err)
	}
	if strings.TrimSpace(summary.ExecutiveSummary) == "" {
		return nil, fmt.Errorf("%w: empty executive summary", ErrDashboardUnavailable)
	}
	if summary.SalaryInsight == "" {
		summary.SalaryInsight = salaryRange
	}
	return &summary, nil
}

// SalaryBand returns the static band for a role, falling back to a generic
// band for unrecognized roles.
func SalaryBand(role string) string {
	if band, ok := salaryTiers[NormalizeRole(role)]; ok {
		return band
	}
	return fallbackSalaryBand
}

func dashboardPrompt(role, salaryRange string, fit *FitResult, growth *GrowthResult) string {
	strengths := fit.MatchedSkills
	if len(strengths) > 3 {
		strengths = strengths[:3]
	}

	return fmt.Sprintf(`You are an AI Career Coach.
Generate an executive-level Career Intelligence Dashboard summary.

Inputs:
- Target Role: %s
- Current Match: %.0f%%
- Future Match: %.0f%%
- Salary Insight: %s
- Strengths: %s
- Roadmap Steps: %s

Tasks:
1. Create a professional, concise executive summary.
2. Do NOT recalculate scores. Use provided inputs.

Return output strictly in JSON format.
IMPORTANT: "top_roles" and "growth_roadmap" MUST be arrays of simple strings, NOT objects.

{
  "executive_summary": "",
  "top_roles": [%q, "Secondary Role"],
  "salary_insight": %q,
  "growth_roadmap": ["Action 1", "Action 2"]
}`,
		role,
		fit.MatchPercentage,
		growth.FutureMatchPercentage,
		salaryRange,
		strings.Join(strengths, ", "),
		strings.Join(growth.SkillsToLearn, ", "),
		role,
		salaryRange,
	)
}
