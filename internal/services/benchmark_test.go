package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/careerlens/careerlens-backend/internal/types"
)

const validBenchmarkReply = `{
  "core_skills": ["Python", "SQL", "Git"],
  "advanced_skills": ["Redis"],
  "experience_expectation": "2-6 years",
  "project_expectation": "Scalable API services"
}`

func newBenchmarkServiceForTest(t *testing.T, repo *fakeBenchmarkRepo, gen *fakeGenerator, now time.Time) *benchmarkService {
	t.Helper()
	svc := NewBenchmarkService(testLogger(t), repo, gen).(*benchmarkService)
	svc.now = func() time.Time { return now }
	return svc
}

func seedBenchmark(repo *fakeBenchmarkRepo, role, version string, createdAt time.Time) {
	repo.records[role] = &types.RoleBenchmark{
		ID:                    uuid.New(),
		Role:                  role,
		CoreSkills:            types.ToJSON([]string{"Python", "SQL", "Git"}),
		AdvancedSkills:        types.ToJSON([]string{"Redis"}),
		ExperienceExpectation: "2-6 years",
		ProjectExpectation:    "Scalable API services",
		Version:               version,
		CreatedAt:             createdAt,
	}
}

func TestGetBenchmarkFreshRecordSkipsGeneration(t *testing.T) {
	now := time.Now()
	repo := newFakeBenchmarkRepo()
	seedBenchmark(repo, "Backend Developer", "v1.0", now.Add(-24*time.Hour))
	gen := &fakeGenerator{}
	svc := newBenchmarkServiceForTest(t, repo, gen, now)

	for i := 0; i < 2; i++ {
		got, err := svc.GetBenchmark(context.Background(), "backend developer")
		if err != nil {
			t.Fatalf("GetBenchmark: %v", err)
		}
		if got.Version != "v1.0" {
			t.Fatalf("version=%q, want v1.0", got.Version)
		}
	}
	if gen.calls() != 0 {
		t.Fatalf("fresh benchmark triggered %d generative calls", gen.calls())
	}
}

func TestGetBenchmarkStaleRecordBumpsVersion(t *testing.T) {
	now := time.Now()
	repo := newFakeBenchmarkRepo()
	seedBenchmark(repo, "Backend Developer", "v1.0", now.Add(-8*24*time.Hour))
	gen := &fakeGenerator{queue: []genReply{{text: validBenchmarkReply}}}
	svc := newBenchmarkServiceForTest(t, repo, gen, now)

	got, err := svc.GetBenchmark(context.Background(), "Backend Developer")
	if err != nil {
		t.Fatalf("GetBenchmark: %v", err)
	}
	if got.Version != "v1.1" {
		t.Fatalf("version=%q, want v1.1", got.Version)
	}
	if gen.calls() != 1 {
		t.Fatalf("calls=%d, want 1", gen.calls())
	}

	// Regeneration restarts the freshness window, so the next query is served
	// from the store.
	again, err := svc.GetBenchmark(context.Background(), "Backend Developer")
	if err != nil {
		t.Fatalf("second GetBenchmark: %v", err)
	}
	if again.Version != "v1.1" || gen.calls() != 1 {
		t.Fatalf("version=%q calls=%d, want v1.1 and 1", again.Version, gen.calls())
	}
}

func TestGetBenchmarkFirstRecordStartsAtV1(t *testing.T) {
	repo := newFakeBenchmarkRepo()
	gen := &fakeGenerator{queue: []genReply{{text: validBenchmarkReply}}}
	svc := newBenchmarkServiceForTest(t, repo, gen, time.Now())

	got, err := svc.GetBenchmark(context.Background(), "  data analyst ")
	if err != nil {
		t.Fatalf("GetBenchmark: %v", err)
	}
	if got.Version != "v1.0" {
		t.Fatalf("version=%q, want v1.0", got.Version)
	}
	if got.Role != "Data Analyst" {
		t.Fatalf("role=%q, want normalized Data Analyst", got.Role)
	}
}

func TestGetBenchmarkGenerationFailure(t *testing.T) {
	repo := newFakeBenchmarkRepo()
	gen := &fakeGenerator{queue: []genReply{{err: errors.New("boom")}}}
	svc := newBenchmarkServiceForTest(t, repo, gen, time.Now())

	if _, err := svc.GetBenchmark(context.Background(), "Backend Developer"); !errors.Is(err, ErrBenchmarkUnavailable) {
		t.Fatalf("err=%v, want ErrBenchmarkUnavailable", err)
	}
}

func TestGetBenchmarkRejectsIncompleteReply(t *testing.T) {
	repo := newFakeBenchmarkRepo()
	gen := &fakeGenerator{queue: []genReply{{text: `{"core_skills": ["Python"], "advanced_skills": ["Redis"], "experience_expectation": ""}`}}}
	svc := newBenchmarkServiceForTest(t, repo, gen, time.Now())

	if _, err := svc.GetBenchmark(context.Background(), "Backend Developer"); !errors.Is(err, ErrBenchmarkUnavailable) {
		t.Fatalf("err=%v, want ErrBenchmarkUnavailable", err)
	}
	if repo.saves != 0 {
		t.Fatalf("incomplete reply was persisted")
	}
}

func TestNextBenchmarkVersion(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "v1.0", want: "v1.1"},
		{in: "v1.9", want: "v2.0"},
		{in: "v2.3", want: "v2.4"},
		{in: "garbage", want: "v1.0"},
	}
	for _, tc := range cases {
		if got := nextBenchmarkVersion(tc.in); got != tc.want {
			t.Fatalf("nextBenchmarkVersion(%q)=%q, want %q", tc.in, got, tc.want)
		}
	}
}
