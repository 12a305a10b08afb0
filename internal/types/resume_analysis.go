package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ResumeAnalysis is the immutable record of one pipeline run. It is written
// once and never mutated.
type ResumeAnalysis struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TargetRole         string         `gorm:"not null;index;column:target_role" json:"target_role"`
	ExtractedSkills    datatypes.JSON `gorm:"column:extracted_skills" json:"extracted_skills"`
	MatchedSkills      datatypes.JSON `gorm:"column:matched_skills" json:"matched_skills"`
	MissingSkills      datatypes.JSON `gorm:"column:missing_skills" json:"missing_skills"`
	MatchPercentage    float64        `gorm:"not null;column:match_percentage" json:"match_percentage"`
	ReadinessScore     float64        `gorm:"not null;column:readiness_score" json:"readiness_score"`
	Roadmap            datatypes.JSON `gorm:"column:roadmap" json:"roadmap"`
	ConfidenceScore    float64        `gorm:"not null;default:0;column:confidence_score" json:"confidence_score"`
	Embedding          datatypes.JSON `gorm:"column:resume_embedding" json:"embedding"`
	BenchmarkVersion   string         `gorm:"column:benchmark_version" json:"benchmark_version"`
	RoleProfileVersion int            `gorm:"column:role_profile_version" json:"role_profile_version"`
	CreatedAt          time.Time      `gorm:"not null;index" json:"created_at"`
}

func (ResumeAnalysis) TableName() string {
	return "resume_analyses"
}
