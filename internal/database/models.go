package database

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User represents an account. Admins curate listings and run AI generation.
type User struct {
	gorm.Model
	Username           string `gorm:"uniqueIndex;size:64"`
	Email              string `gorm:"uniqueIndex;size:255"`
	PasswordHash       string `gorm:"size:255"`
	IsAdmin            bool   `gorm:"default:false"`
	MustChangePassword bool   `gorm:"default:false"`
}

// Job represents a job or internship listing. IsInternship discriminates the two;
// they share every other column.
type Job struct {
	gorm.Model
	Title            string         `gorm:"size:255;index"`
	Company          string         `gorm:"size:255;index"`
	Location         string         `gorm:"size:255"`
	SalaryRange      string         `gorm:"size:128"`
	JobType          string         `gorm:"size:64"` // full-time, part-time, contract
	ExperienceLevel  string         `gorm:"size:64;index"`
	Description      string         `gorm:"type:text"`
	Requirements     string         `gorm:"type:text"`
	Responsibilities string         `gorm:"type:text"`
	Benefits         string         `gorm:"type:text"`
	Skills           datatypes.JSON `gorm:"type:jsonb"`
	CompanyWebsite   string         `gorm:"size:512"`
	ApplicationURL   string         `gorm:"size:512"`
	CompanyLogo      string         `gorm:"size:512"`
	IsInternship     bool           `gorm:"default:false;index"`
	IsAIGenerated    bool           `gorm:"default:false"`
	IsActive         bool           `gorm:"default:true"`
}

// Article is an editorial/career-advice post. Content is markdown.
type Article struct {
	gorm.Model
	Title         string         `gorm:"size:255"`
	Content       string         `gorm:"type:text"`
	Excerpt       string         `gorm:"size:512"`
	Author        string         `gorm:"size:128"`
	Category      string         `gorm:"size:64;index"`
	Tags          datatypes.JSON `gorm:"type:jsonb"`
	ReadTime      string         `gorm:"size:32"`
	FeaturedImage string         `gorm:"size:512"`
	IsAIGenerated bool           `gorm:"default:false"`
}

// Roadmap is a learning path. Steps and FlowchartData hold nested JSON produced
// by editors or by the AI generation service.
type Roadmap struct {
	gorm.Model
	Title          string         `gorm:"size:255"`
	Description    string         `gorm:"size:1024"`
	Content        string         `gorm:"type:text"`
	Difficulty     string         `gorm:"size:32;index"`
	EstimatedTime  string         `gorm:"size:64"`
	EducationLevel string         `gorm:"size:64"`
	Technologies   datatypes.JSON `gorm:"type:jsonb"`
	Steps          datatypes.JSON `gorm:"type:jsonb"`
	Image          string         `gorm:"size:512"`
	FlowchartData  datatypes.JSON `gorm:"type:jsonb"`
	IsAIGenerated  bool           `gorm:"default:false"`
	Reviews        []RoadmapReview `gorm:"constraint:OnDelete:CASCADE"`
}

// RoadmapReview is a user rating attached to a roadmap.
type RoadmapReview struct {
	gorm.Model
	RoadmapID uint   `gorm:"index"`
	UserID    uint   `gorm:"index"`
	Rating    int    `gorm:"check:rating >= 1 AND rating <= 5"`
	Comment   string `gorm:"size:2048"`
}

// DsaProblem is a practice problem in the DSA corner.
type DsaProblem struct {
	gorm.Model
	Title           string         `gorm:"size:255"`
	Description     string         `gorm:"type:text"`
	Difficulty      string         `gorm:"size:32;index"`
	Category        string         `gorm:"size:64;index"`
	Solution        string         `gorm:"type:text"`
	Hints           datatypes.JSON `gorm:"type:jsonb"`
	TimeComplexity  string         `gorm:"size:64"`
	SpaceComplexity string         `gorm:"size:64"`
	Tags            datatypes.JSON `gorm:"type:jsonb"`
	Companies       datatypes.JSON `gorm:"type:jsonb"`
	IsAIGenerated   bool           `gorm:"default:false"`
}

// DsaTopic groups problems by subject (arrays, graphs, DP, ...).
type DsaTopic struct {
	gorm.Model
	Name         string `gorm:"uniqueIndex;size:128"`
	Description  string `gorm:"size:1024"`
	Difficulty   string `gorm:"size:32"`
	ProblemCount int    `gorm:"default:0"`
	Icon         string `gorm:"size:255"`
}

// DsaCompany groups problems by the company known to ask them.
type DsaCompany struct {
	gorm.Model
	Name         string `gorm:"uniqueIndex;size:128"`
	Description  string `gorm:"size:1024"`
	Logo         string `gorm:"size:512"`
	ProblemCount int    `gorm:"default:0"`
}

// DsaSheet is a curated practice sheet (e.g. a 75-problem interview prep list).
type DsaSheet struct {
	gorm.Model
	Name         string         `gorm:"size:255"`
	Description  string         `gorm:"size:1024"`
	Creator      string         `gorm:"size:128"`
	ProblemCount int            `gorm:"default:0"`
	Difficulty   string         `gorm:"size:32"`
	Topics       datatypes.JSON `gorm:"type:jsonb"`
}

// SolvedProblem marks a DSA problem as solved by a user.
type SolvedProblem struct {
	gorm.Model
	UserID    uint `gorm:"index:idx_solved_user_problem,unique"`
	ProblemID uint `gorm:"index:idx_solved_user_problem,unique"`
}

// Scholarship is a scholarship listing.
type Scholarship struct {
	gorm.Model
	Title          string         `gorm:"size:255"`
	Description    string         `gorm:"type:text"`
	Provider       string         `gorm:"size:255"`
	Amount         string         `gorm:"size:128"`
	EducationLevel string         `gorm:"size:64;index"`
	Eligibility    string         `gorm:"type:text"`
	Deadline       *time.Time     `gorm:"index"`
	ApplicationURL string         `gorm:"size:512"`
	Category       string         `gorm:"size:64;index"`
	Tags           datatypes.JSON `gorm:"type:jsonb"`
	Benefits       string         `gorm:"type:text"`
	Requirements   string         `gorm:"type:text"`
	HowToApply     string         `gorm:"type:text"`
	IsActive       bool           `gorm:"default:true"`
	Featured       bool           `gorm:"default:false"`
	IsAIGenerated  bool           `gorm:"default:false"`
}

// Template is an installed portfolio template. The archive contents live under
// the templates root on disk; this row carries the manifest metadata.
type Template struct {
	gorm.Model
	TemplateID      string         `gorm:"uniqueIndex;size:128"` // manifest id, doubles as the install dir name
	Name            string         `gorm:"size:255"`
	Description     string         `gorm:"size:1024"`
	Version         string         `gorm:"size:32"`
	Category        string         `gorm:"size:64;index"`
	EntryFile       string         `gorm:"size:255"`
	Features        datatypes.JSON `gorm:"type:jsonb"`
	IsPremium       bool           `gorm:"default:false"`
	PreviewImageURL string         `gorm:"size:1024"`
	UserID          uint           `gorm:"index"`
}

// Portfolio stores a user's portfolio content as JSONB plus export bookkeeping.
type Portfolio struct {
	gorm.Model
	Title           string         `gorm:"size:255"`
	TemplateID      string         `gorm:"size:128"`
	Data            datatypes.JSON `gorm:"type:jsonb"` // PortfolioData: personal/skills/projects/experience/education
	UserID          uint           `gorm:"index"`
	User            User           `gorm:"constraint:OnDelete:CASCADE"`
	ExportObjectKey string         `gorm:"size:512"`
	ExportStatus    string         `gorm:"size:32"`
}

// PortfolioShare exposes a portfolio read-only under a public slug.
type PortfolioShare struct {
	gorm.Model
	PortfolioID uint   `gorm:"index"`
	Slug        string `gorm:"uniqueIndex;size:64"`
	IsActive    bool   `gorm:"default:true"`
}

// ResumeAnalysis persists one ATS analysis run for a user's uploaded resume.
type ResumeAnalysis struct {
	gorm.Model
	UserID         uint           `gorm:"index"`
	FileName       string         `gorm:"size:255"`
	ResumeText     string         `gorm:"type:text"`
	JobDescription string         `gorm:"type:text"`
	AtsScore       int
	Report         datatypes.JSON `gorm:"type:jsonb"` // full AnalysisReport
}
