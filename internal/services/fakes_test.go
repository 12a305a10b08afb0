package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/careerlens/careerlens-backend/internal/platform/adzuna"
	"github.com/careerlens/careerlens-backend/internal/platform/logger"
	"github.com/careerlens/careerlens-backend/internal/types"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

type genReply struct {
	text string
	err  error
}

// fakeGenerator replays scripted replies in call order.
type fakeGenerator struct {
	queue   []genReply
	prompts []string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if len(g.queue) == 0 {
		panic("fakeGenerator: no scripted reply left")
	}
	r := g.queue[0]
	g.queue = g.queue[1:]
	return r.text, r.err
}

func (g *fakeGenerator) calls() int { return len(g.prompts) }

type fakeBenchmarkRepo struct {
	records map[string]*types.RoleBenchmark
	saves   int
}

func newFakeBenchmarkRepo() *fakeBenchmarkRepo {
	return &fakeBenchmarkRepo{records: make(map[string]*types.RoleBenchmark)}
}

func (r *fakeBenchmarkRepo) GetByRole(_ context.Context, _ *gorm.DB, role string) (*types.RoleBenchmark, error) {
	return r.records[role], nil
}

func (r *fakeBenchmarkRepo) Save(_ context.Context, _ *gorm.DB, b *types.RoleBenchmark) error {
	r.saves++
	r.records[b.Role] = b
	return nil
}

type fakeProfileRepo struct {
	records map[string]*types.RoleSkillProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{records: make(map[string]*types.RoleSkillProfile)}
}

func (r *fakeProfileRepo) GetByRole(_ context.Context, _ *gorm.DB, roleName string) (*types.RoleSkillProfile, error) {
	return r.records[roleName], nil
}

func (r *fakeProfileRepo) Create(_ context.Context, _ *gorm.DB, p *types.RoleSkillProfile) error {
	r.records[p.RoleName] = p
	return nil
}

func (r *fakeProfileRepo) Save(_ context.Context, _ *gorm.DB, p *types.RoleSkillProfile) error {
	r.records[p.RoleName] = p
	return nil
}

func (r *fakeProfileRepo) ListAll(_ context.Context, _ *gorm.DB) ([]*types.RoleSkillProfile, error) {
	out := make([]*types.RoleSkillProfile, 0, len(r.records))
	for _, p := range r.records {
		out = append(out, p)
	}
	return out, nil
}

type fakeAnalysisRepo struct {
	created []*types.ResumeAnalysis
}

func (r *fakeAnalysisRepo) Create(_ context.Context, _ *gorm.DB, a *types.ResumeAnalysis) error {
	r.created = append(r.created, a)
	return nil
}

type fakeSearcher struct {
	jobs []adzuna.Job
}

func (s *fakeSearcher) Search(_ context.Context, _ string) []adzuna.Job {
	return s.jobs
}
