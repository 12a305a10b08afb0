package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/careerlens/careerlens-backend/internal/llmjson"
	"github.com/careerlens/careerlens-backend/internal/platform/gemini"
	"github.com/careerlens/careerlens-backend/internal/platform/logger"
)

const maxSkillsToLearn = 3

// GrowthResult is the bounded improvement plan. Capped is set when the
// projected percentage had to be clamped to satisfy the stability bounds.
type GrowthResult struct {
	SkillsToLearn         []string `json:"skills_to_learn"`
	ProjectSuggestion     string   `json:"project_suggestion"`
	FutureMatchPercentage float64  `json:"future_match_percentage"`
	Capped                bool     `json:"capped,omitempty"`
}

type GrowthService interface {
	Simulate(ctx context.Context, role string, currentScore float64, missingSkills []string, profileSummary string) (*GrowthResult, error)
}

type growthService struct {
	log *logger.Logger
	llm gemini.Generator
}

func NewGrowthService(baseLog *logger.Logger, llm gemini.Generator) GrowthService {
	return &growthService{
		log: baseLog.With("service", "GrowthService"),
		llm: llm,
	}
}

type growthReply struct {
	SkillsToLearn         json.RawMessage `json:"skills_to_learn"`
	ProjectSuggestion     string          `json:"project_suggestion"`
	FutureMatchPercentage *float64        `json:"future_match_percentage"`
}

// Simulate projects a future match percentage under the stability bounds
// current+5 <= future <= min(95, current+20). The bounds are enforced on the
// parsed value; prompt text alone is never trusted.
func (s *growthService) Simulate(ctx context.Context, role string, currentScore float64, missingSkills []string, profileSummary string) (*GrowthResult, error) {
	raw, err := s.llm.Generate(ctx, growthPrompt(role, currentScore, missingSkills, profileSummary))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGrowthUnavailable, err)
	}

	var reply growthReply
	if err := llmjson.Unmarshal(raw, &reply); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGrowthUnavailable, err)
	}

	skills, err := stringArray(reply.SkillsToLearn, "skills_to_learn")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGrowthUnavailable, err)
	}
	if len(skills) > maxSkillsToLearn {
		skills = skills[:maxSkillsToLearn]
	}
	if reply.FutureMatchPercentage == nil {
		return nil, fmt.Errorf("%w: missing future_match_percentage", ErrGrowthUnavailable)
	}

	future, capped := clampFutureScore(*reply.FutureMatchPercentage, currentScore)
	if capped {
		s.log.Warn("future match percentage clamped",
			"role", role,
			"reported", *reply.FutureMatchPercentage,
			"clamped", future,
		)
	}

	return &GrowthResult{
		SkillsToLearn:         skills,
		ProjectSuggestion:     reply.ProjectSuggestion,
		FutureMatchPercentage: future,
		Capped:                capped,
	}, nil
}

// clampFutureScore enforces the stability bounds. Above a current score of 91
// the window degenerates (current+5 exceeds 95); the policy then is to clamp
// to min(95, current+5) and flag the result.
func clampFutureScore(reported, current float64) (float64, bool) {
	lower := current + 5
	upper := math.Min(95, current+20)

	if lower > upper {
		return math.Min(95, lower), true
	}
	if reported < lower {
		return lower, true
	}
	if reported > upper {
		return upper, true
	}
	return reported, false
}

func growthPrompt(role string, currentScore float64, missingSkills []string, profileSummary string) string {
	return fmt.Sprintf(`You are an AI Career Growth Simulator.

Given:
Role: %s
Current Match Score: %.0f%%
Missing Skills: %s
Candidate Background: %s

Tasks:
1. Identify top 3 most impactful skills to learn.
2. Suggest one advanced real-world project.
3. Estimate realistic future match percentage after mastering these.

Stability Rules:
- future_match_percentage <= 95
- future_match_percentage >= current_score + 5
- Do not increase more than 20%% from current match.

Return output strictly in JSON format.
IMPORTANT: "skills_to_learn" MUST be an array of simple strings, NOT objects.

{
  "skills_to_learn": ["Skill 1", "Skill 2"],
  "project_suggestion": "",
  "future_match_percentage": 0
}`, role, currentScore, strings.Join(missingSkills, ", "), profileSummary)
}
