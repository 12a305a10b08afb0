package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/careerlens/careerlens-backend/internal/llmjson"
	"github.com/careerlens/careerlens-backend/internal/platform/gemini"
	"github.com/careerlens/careerlens-backend/internal/platform/logger"
	"github.com/careerlens/careerlens-backend/internal/repos"
	"github.com/careerlens/careerlens-backend/internal/types"
)

type RoleProfileService interface {
	// GetOrCreate returns the profile for the role, regenerating its skill
	// list when the profile is new, unlocked, or empty. Generation failures
	// are soft: the stored profile comes back unchanged.
	GetOrCreate(ctx context.Context, role string) (*types.RoleSkillProfile, error)
	ListAll(ctx context.Context) ([]*types.RoleSkillProfile, error)
}

type roleProfileService struct {
	log  *logger.Logger
	repo repos.RoleProfileRepo
	llm  gemini.Generator
}

func NewRoleProfileService(baseLog *logger.Logger, repo repos.RoleProfileRepo, llm gemini.Generator) RoleProfileService {
	return &roleProfileService{
		log:  baseLog.With("service", "RoleProfileService"),
		repo: repo,
		llm:  llm,
	}
}

func (s *roleProfileService) GetOrCreate(ctx context.Context, role string) (*types.RoleSkillProfile, error) {
	clean := NormalizeRole(role)

	profile, err := s.repo.GetByRole(ctx, nil, clean)
	if err != nil {
		return nil, fmt.Errorf("load role profile: %w", err)
	}
	if profile == nil {
		profile = &types.RoleSkillProfile{
			ID:       uuid.New(),
			RoleName: clean,
			Version:  1,
		}
		if err := s.repo.Create(ctx, nil, profile); err != nil {
			return nil, fmt.Errorf("create role profile: %w", err)
		}
	}

	if profile.Locked && len(types.StringSlice(profile.RequiredSkills)) > 0 {
		return profile, nil
	}

	skills := s.generateSkills(ctx, clean)
	if len(skills) == 0 {
		// Soft dependency: the caller works with whatever is stored.
		return profile, nil
	}

	profile.RequiredSkills = types.ToJSON(skills)
	profile.Locked = true
	profile.Version++
	if err := s.repo.Save(ctx, nil, profile); err != nil {
		return nil, fmt.Errorf("save role profile: %w", err)
	}
	s.log.Info("role profile regenerated", "role", clean, "version", profile.Version)
	return profile, nil
}

func (s *roleProfileService) ListAll(ctx context.Context) ([]*types.RoleSkillProfile, error) {
	return s.repo.ListAll(ctx, nil)
}

type profileReply struct {
	Skills []string `json:"skills"`
}

func (s *roleProfileService) generateSkills(ctx context.Context, role string) []string {
	prompt := fmt.Sprintf(`Create a professional skill profile for the role: %q
Return ONLY a JSON object with a single key "skills" containing a list of exactly 10 most critical technical and soft skills.`, role)

	raw, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		s.log.Warn("profile generation failed", "role", role, "error", err)
		return nil
	}
	var reply profileReply
	if err := llmjson.Unmarshal(raw, &reply); err != nil {
		s.log.Warn("profile reply unparseable", "role", role, "error", err)
		return nil
	}
	return reply.Skills
}
