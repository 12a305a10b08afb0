package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/careerlens/careerlens-backend/internal/types"
)

func testBenchmark() *types.RoleBenchmark {
	return &types.RoleBenchmark{
		ID:                    uuid.New(),
		Role:                  "Backend Developer",
		CoreSkills:            types.ToJSON([]string{"Python", "SQL", "Git"}),
		AdvancedSkills:        types.ToJSON([]string{"Redis"}),
		ExperienceExpectation: "2-6 years",
		ProjectExpectation:    "Scalable API services",
		Version:               "v1.0",
		CreatedAt:             time.Now(),
	}
}

const validFitReply = `{
  "extracted_skills": ["Python", "SQL", "Docker"],
  "matched_skills": ["Python", "SQL"],
  "missing_skills": ["Redis"],
  "match_percentage": 72,
  "readiness_score": 65,
  "reason": "Strong core alignment, missing caching experience.",
  "roadmap": {"short_term": ["Learn Redis"], "long_term": ["Design a distributed system"]}
}`

func TestEvaluateParsesValidReply(t *testing.T) {
	gen := &fakeGenerator{queue: []genReply{{text: "```json\n" + validFitReply + "\n```"}}}
	svc := NewFitService(testLogger(t), gen)

	got, err := svc.Evaluate(context.Background(), "Python, SQL, Docker, 3 years experience", testBenchmark())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if got.MatchPercentage != 72 || got.ReadinessScore != 65 {
		t.Fatalf("scores=(%v, %v), want (72, 65)", got.MatchPercentage, got.ReadinessScore)
	}
	if len(got.MissingSkills) != 1 || got.MissingSkills[0] != "Redis" {
		t.Fatalf("missing=%v, want [Redis]", got.MissingSkills)
	}
	if len(got.Roadmap.ShortTerm) == 0 || len(got.Roadmap.LongTerm) == 0 {
		t.Fatalf("roadmap not populated: %+v", got.Roadmap)
	}
}

func TestEvaluateRejectsMalformedReplies(t *testing.T) {
	cases := []struct {
		name  string
		reply string
	}{
		{
			name:  "skills_as_objects",
			reply: `{"extracted_skills": ["Python"], "matched_skills": [{"name": "Python"}], "missing_skills": [], "match_percentage": 70, "readiness_score": 60, "roadmap": {"short_term": [], "long_term": []}}`,
		},
		{
			name:  "percentage_out_of_range",
			reply: `{"extracted_skills": [], "matched_skills": [], "missing_skills": [], "match_percentage": 120, "readiness_score": 60, "roadmap": {"short_term": [], "long_term": []}}`,
		},
		{
			name:  "negative_readiness",
			reply: `{"extracted_skills": [], "matched_skills": [], "missing_skills": [], "match_percentage": 70, "readiness_score": -1, "roadmap": {"short_term": [], "long_term": []}}`,
		},
		{
			name:  "missing_roadmap",
			reply: `{"extracted_skills": [], "matched_skills": [], "missing_skills": [], "match_percentage": 70, "readiness_score": 60}`,
		},
		{
			name:  "roadmap_missing_long_term",
			reply: `{"extracted_skills": [], "matched_skills": [], "missing_skills": [], "match_percentage": 70, "readiness_score": 60, "roadmap": {"short_term": []}}`,
		},
		{
			name:  "no_json_at_all",
			reply: "I cannot help with that.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen := &fakeGenerator{queue: []genReply{{text: tc.reply}}}
			svc := NewFitService(testLogger(t), gen)
			if _, err := svc.Evaluate(context.Background(), "resume", testBenchmark()); !errors.Is(err, ErrInvalidResponse) {
				t.Fatalf("err=%v, want ErrInvalidResponse", err)
			}
		})
	}
}

func TestEvaluateTransportFailure(t *testing.T) {
	gen := &fakeGenerator{queue: []genReply{{err: errors.New("all endpoints exhausted")}}}
	svc := NewFitService(testLogger(t), gen)
	if _, err := svc.Evaluate(context.Background(), "resume", testBenchmark()); !errors.Is(err, ErrFitUnavailable) {
		t.Fatalf("err=%v, want ErrFitUnavailable", err)
	}
}
