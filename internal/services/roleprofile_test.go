package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/careerlens/careerlens-backend/internal/types"
)

const tenSkillsReply = `{"skills": ["Python", "SQL", "Git", "Docker", "REST APIs", "Redis", "System Design", "Testing", "Communication", "Problem Solving"]}`

func TestGetOrCreateGeneratesAndLocksNewProfile(t *testing.T) {
	repo := newFakeProfileRepo()
	gen := &fakeGenerator{queue: []genReply{{text: tenSkillsReply}}}
	svc := NewRoleProfileService(testLogger(t), repo, gen)

	got, err := svc.GetOrCreate(context.Background(), "backend developer")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if got.RoleName != "Backend Developer" {
		t.Fatalf("role=%q, want normalized", got.RoleName)
	}
	if !got.Locked {
		t.Fatalf("profile not locked after generation")
	}
	if got.Version != 2 {
		t.Fatalf("version=%d, want 2", got.Version)
	}
	if n := len(types.StringSlice(got.RequiredSkills)); n != 10 {
		t.Fatalf("skills=%d, want 10", n)
	}
}

func TestGetOrCreateReusesLockedProfile(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.records["Backend Developer"] = &types.RoleSkillProfile{
		ID:             uuid.New(),
		RoleName:       "Backend Developer",
		RequiredSkills: types.ToJSON([]string{"Python", "SQL"}),
		Version:        3,
		Locked:         true,
	}
	gen := &fakeGenerator{}
	svc := NewRoleProfileService(testLogger(t), repo, gen)

	got, err := svc.GetOrCreate(context.Background(), "Backend Developer")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if got.Version != 3 {
		t.Fatalf("version=%d, want untouched 3", got.Version)
	}
	if gen.calls() != 0 {
		t.Fatalf("locked profile triggered %d generative calls", gen.calls())
	}
}

func TestGetOrCreateRegeneratesUnlockedProfile(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.records["Backend Developer"] = &types.RoleSkillProfile{
		ID:             uuid.New(),
		RoleName:       "Backend Developer",
		RequiredSkills: types.ToJSON([]string{"Old Skill"}),
		Version:        2,
		Locked:         false,
	}
	gen := &fakeGenerator{queue: []genReply{{text: tenSkillsReply}}}
	svc := NewRoleProfileService(testLogger(t), repo, gen)

	got, err := svc.GetOrCreate(context.Background(), "Backend Developer")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if got.Version != 3 || !got.Locked {
		t.Fatalf("version=%d locked=%v, want 3 and locked", got.Version, got.Locked)
	}
}

func TestGetOrCreateSoftFailsOnGenerationError(t *testing.T) {
	repo := newFakeProfileRepo()
	gen := &fakeGenerator{queue: []genReply{{err: errors.New("exhausted")}}}
	svc := NewRoleProfileService(testLogger(t), repo, gen)

	got, err := svc.GetOrCreate(context.Background(), "Backend Developer")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if got.Locked || got.Version != 1 {
		t.Fatalf("failed generation mutated profile: locked=%v version=%d", got.Locked, got.Version)
	}
	if len(types.StringSlice(got.RequiredSkills)) != 0 {
		t.Fatalf("failed generation stored skills")
	}
}
