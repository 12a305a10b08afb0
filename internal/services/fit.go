package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/careerlens/careerlens-backend/internal/llmjson"
	"github.com/careerlens/careerlens-backend/internal/platform/gemini"
	"github.com/careerlens/careerlens-backend/internal/platform/logger"
	"github.com/careerlens/careerlens-backend/internal/types"
)

// Roadmap is the two-horizon action plan the evaluator returns.
type Roadmap struct {
	ShortTerm []string `json:"short_term"`
	LongTerm  []string `json:"long_term"`
}

// FitResult is the validated fit assessment for one resume against one role.
type FitResult struct {
	ExtractedSkills []string `json:"extracted_skills"`
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`
	MatchPercentage float64  `json:"match_percentage"`
	ReadinessScore  float64  `json:"readiness_score"`
	Reason          string   `json:"reason,omitempty"`
	Roadmap         Roadmap  `json:"roadmap"`
}

type FitService interface {
	Evaluate(ctx context.Context, resumeText string, benchmark *types.RoleBenchmark) (*FitResult, error)
}

type fitService struct {
	log *logger.Logger
	llm gemini.Generator
}

func NewFitService(baseLog *logger.Logger, llm gemini.Generator) FitService {
	return &fitService{
		log: baseLog.With("service", "FitService"),
		llm: llm,
	}
}

// fitReply defers decoding of the reply's array fields so shape violations
// (objects where strings belong) surface as schema failures, not coercions.
type fitReply struct {
	ExtractedSkills json.RawMessage `json:"extracted_skills"`
	MatchedSkills   json.RawMessage `json:"matched_skills"`
	MissingSkills   json.RawMessage `json:"missing_skills"`
	MatchPercentage *float64        `json:"match_percentage"`
	ReadinessScore  *float64        `json:"readiness_score"`
	Reason          string          `json:"reason"`
	Roadmap         *struct {
		ShortTerm json.RawMessage `json:"short_term"`
		LongTerm  json.RawMessage `json:"long_term"`
	} `json:"roadmap"`
}

// Evaluate asks the generative service for a fit assessment and validates the
// reply against the strict result contract. A parse or schema failure is a
// terminal stage failure; the transport layer has already done all retrying.
func (s *fitService) Evaluate(ctx context.Context, resumeText string, benchmark *types.RoleBenchmark) (*FitResult, error) {
	raw, err := s.llm.Generate(ctx, fitPrompt(resumeText, benchmark))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFitUnavailable, err)
	}

	var reply fitReply
	if err := llmjson.Unmarshal(raw, &reply); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	result := &FitResult{Reason: reply.Reason}
	if result.ExtractedSkills, err = stringArray(reply.ExtractedSkills, "extracted_skills"); err != nil {
		return nil, err
	}
	if result.MatchedSkills, err = stringArray(reply.MatchedSkills, "matched_skills"); err != nil {
		return nil, err
	}
	if result.MissingSkills, err = stringArray(reply.MissingSkills, "missing_skills"); err != nil {
		return nil, err
	}
	if result.MatchPercentage, err = boundedScore(reply.MatchPercentage, "match_percentage"); err != nil {
		return nil, err
	}
	if result.ReadinessScore, err = boundedScore(reply.ReadinessScore, "readiness_score"); err != nil {
		return nil, err
	}
	if reply.Roadmap == nil {
		return nil, fmt.Errorf("%w: missing roadmap", ErrInvalidResponse)
	}
	if result.Roadmap.ShortTerm, err = stringArray(reply.Roadmap.ShortTerm, "roadmap.short_term"); err != nil {
		return nil, err
	}
	if result.Roadmap.LongTerm, err = stringArray(reply.Roadmap.LongTerm, "roadmap.long_term"); err != nil {
		return nil, err
	}
	return result, nil
}

// stringArray decodes a required array-of-plain-strings field. Objects or
// mixed types inside the array fail the decode and with it the stage.
func stringArray(raw json.RawMessage, field string) ([]string, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidResponse, field)
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %s must be an array of strings", ErrInvalidResponse, field)
	}
	return out, nil
}

func boundedScore(v *float64, field string) (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("%w: missing %s", ErrInvalidResponse, field)
	}
	if *v < 0 || *v > 100 {
		return 0, fmt.Errorf("%w: %s out of [0,100]", ErrInvalidResponse, field)
	}
	return *v, nil
}

func fitPrompt(resumeText string, benchmark *types.RoleBenchmark) string {
	benchmarkJSON, _ := json.Marshal(map[string]any{
		"role":                   benchmark.Role,
		"core_skills":            types.StringSlice(benchmark.CoreSkills),
		"advanced_skills":        types.StringSlice(benchmark.AdvancedSkills),
		"experience_expectation": benchmark.ExperienceExpectation,
		"project_expectation":    benchmark.ProjectExpectation,
		"version":                benchmark.Version,
	})

	return fmt.Sprintf(`You are an AI Career Fit Evaluator.

Candidate Resume:
%s

Role Requirements (Market Benchmark):
%s

Tasks:
1. Evaluate skill alignment realistically.
2. Consider depth, not just keyword matching.
3. Assign a match percentage (0-100%%).
4. Give 2-line professional reasoning.

Scoring Rules:
- 90%%+ only if candidate satisfies most advanced skills
- 70-85%% for strong mid-level alignment
- 50-70%% for partial alignment
- Below 50%% if core gaps exist
- Never give 95%%+ unless nearly perfect match

Return output strictly in JSON format.
IMPORTANT: "extracted_skills", "matched_skills", and "missing_skills" MUST be arrays of simple strings, NOT objects.

{
  "extracted_skills": ["Skill 1", "Skill 2"],
  "matched_skills": ["Skill 1"],
  "missing_skills": ["Skill 3"],
  "match_percentage": 0,
  "readiness_score": 0,
  "reason": "",
  "roadmap": {"short_term": ["Action 1"], "long_term": ["Action 2"]}
}`, resumeText, benchmarkJSON)
}
