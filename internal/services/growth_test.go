package services

import (
	"context"
	"errors"
	"testing"
)

func TestClampFutureScore(t *testing.T) {
	cases := []struct {
		name       string
		reported   float64
		current    float64
		want       float64
		wantCapped bool
	}{
		{name: "within_bounds", reported: 85, current: 72, want: 85},
		{name: "below_minimum_gain", reported: 73, current: 72, want: 77, wantCapped: true},
		{name: "above_maximum_gain", reported: 99, current: 72, want: 92, wantCapped: true},
		{name: "above_ceiling", reported: 99, current: 80, want: 95, wantCapped: true},
		{name: "at_lower_bound", reported: 77, current: 72, want: 77},
		{name: "at_upper_bound", reported: 92, current: 72, want: 92},
		{name: "degenerate_window_91", reported: 99, current: 91, want: 95, wantCapped: true},
		{name: "degenerate_window_94", reported: 94, current: 94, want: 95, wantCapped: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, capped := clampFutureScore(tc.reported, tc.current)
			if got != tc.want || capped != tc.wantCapped {
				t.Fatalf("clampFutureScore(%v, %v)=(%v, %v), want (%v, %v)",
					tc.reported, tc.current, got, capped, tc.want, tc.wantCapped)
			}
		})
	}
}

func TestSimulateClampsOutOfBoundReply(t *testing.T) {
	gen := &fakeGenerator{queue: []genReply{{text: `{"skills_to_learn": ["Redis"], "project_suggestion": "Build a cache layer", "future_match_percentage": 99}`}}}
	svc := NewGrowthService(testLogger(t), gen)

	got, err := svc.Simulate(context.Background(), "Backend Developer", 72, []string{"Redis"}, "3 years experience")
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if got.FutureMatchPercentage != 92 || !got.Capped {
		t.Fatalf("future=%v capped=%v, want 92 capped", got.FutureMatchPercentage, got.Capped)
	}
}

func TestSimulateTruncatesSkillList(t *testing.T) {
	gen := &fakeGenerator{queue: []genReply{{text: `{"skills_to_learn": ["A", "B", "C", "D", "E"], "project_suggestion": "p", "future_match_percentage": 80}`}}}
	svc := NewGrowthService(testLogger(t), gen)

	got, err := svc.Simulate(context.Background(), "Backend Developer", 72, nil, "")
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if len(got.SkillsToLearn) != 3 {
		t.Fatalf("skills=%v, want first 3", got.SkillsToLearn)
	}
}

func TestSimulateRejectsBadReplies(t *testing.T) {
	cases := []struct {
		name  string
		reply genReply
	}{
		{name: "transport_failure", reply: genReply{err: errors.New("exhausted")}},
		{name: "skills_as_objects", reply: genReply{text: `{"skills_to_learn": [{"skill": "Redis"}], "future_match_percentage": 80}`}},
		{name: "missing_percentage", reply: genReply{text: `{"skills_to_learn": ["Redis"], "project_suggestion": "p"}`}},
		{name: "no_json", reply: genReply{text: "sorry"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen := &fakeGenerator{queue: []genReply{tc.reply}}
			svc := NewGrowthService(testLogger(t), gen)
			if _, err := svc.Simulate(context.Background(), "Backend Developer", 72, nil, ""); !errors.Is(err, ErrGrowthUnavailable) {
				t.Fatalf("err=%v, want ErrGrowthUnavailable", err)
			}
		})
	}
}
