package ai

// ContentType selects the generation branch and the output contract.
type ContentType string

const (
	TypeJob                 ContentType = "job"
	TypeInternship          ContentType = "internship"
	TypeArticle             ContentType = "article"
	TypeRoadmap             ContentType = "roadmap"
	TypeDsaProblem          ContentType = "dsa-problem"
	TypeDsaTopic            ContentType = "dsa-topic"
	TypeDsaCompany          ContentType = "dsa-company"
	TypeDsaSheet            ContentType = "dsa-sheet"
	TypePortfolioWebsite    ContentType = "portfolio-website"
	TypeAdvertisingTemplate ContentType = "advertising-template"
	TypeScholarship         ContentType = "scholarship"
)

// GenerateOptions tunes a single generation call. Each prompt builder reads only
// the fields meaningful for its content type; the rest are ignored.
type GenerateOptions struct {
	FetchFromWeb       bool   `json:"fetchFromWeb"`
	IncludeCompanyLogo bool   `json:"includeCompanyLogo"`
	GenerateImages     bool   `json:"generateImages"`
	GenerateMindmap    bool   `json:"generateMindmap"`
	TargetCompany      string `json:"targetCompany"`
	Difficulty         string `json:"difficulty"`
	EducationLevel     string `json:"educationLevel"`
}

// ContentRequest is the caller's coarse intent: what to generate and from which
// free-text prompt. It is transient and never persisted.
type ContentRequest struct {
	Type    ContentType     `json:"type"`
	Prompt  string          `json:"prompt"`
	Options GenerateOptions `json:"options"`
}

// KeywordMatches summarizes keyword overlap between a resume and a job description.
type KeywordMatches struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
	Total   int      `json:"total"`
}

// IndustryInsights carries industry-specific advice from the analysis.
type IndustryInsights struct {
	DetectedIndustry     string   `json:"detectedIndustry"`
	IndustrySpecificTips []string `json:"industrySpecificTips"`
	SalaryInsights       string   `json:"salaryInsights"`
}

// SkillsAnalysis splits detected skills into technical/soft plus gaps.
type SkillsAnalysis struct {
	TechnicalSkills []string `json:"technicalSkills"`
	SoftSkills      []string `json:"softSkills"`
	MissingSkills   []string `json:"missingSkills"`
}

// ExperienceAnalysis summarizes the work history on the resume.
type ExperienceAnalysis struct {
	TotalYears        string   `json:"totalYears"`
	CareerProgression string   `json:"careerProgression"`
	GapAnalysis       []string `json:"gapAnalysis"`
}

// ImprovementPriority buckets suggestions by urgency.
type ImprovementPriority struct {
	Critical   []string `json:"critical"`
	Important  []string `json:"important"`
	NiceToHave []string `json:"nice_to_have"`
}

// AnalysisReport is the full ATS scorecard for one resume. AtsScore is always
// within [0,100] after post-processing, whatever the model returned.
type AnalysisReport struct {
	AtsScore            int                 `json:"atsScore"`
	KeywordMatches      KeywordMatches      `json:"keywordMatches"`
	Suggestions         []string            `json:"suggestions"`
	FormatScore         int                 `json:"formatScore"`
	ReadabilityScore    int                 `json:"readabilityScore"`
	Analysis            string              `json:"analysis"`
	IndustryInsights    IndustryInsights    `json:"industryInsights"`
	SkillsAnalysis      SkillsAnalysis      `json:"skillsAnalysis"`
	ExperienceAnalysis  ExperienceAnalysis  `json:"experienceAnalysis"`
	ImprovementPriority ImprovementPriority `json:"improvementPriority"`
}

// ImproveResult is the outcome of a resume rewrite. When the model call failed,
// Text holds the unmodified original and Fallback is true; the error is returned
// alongside so the caller decides whether the fallback is acceptable.
type ImproveResult struct {
	Text     string
	Fallback bool
}

// RoadmapInfo is the metadata the flowchart generator works from.
type RoadmapInfo struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Difficulty     string   `json:"difficulty"`
	EstimatedTime  string   `json:"estimatedTime"`
	EducationLevel string   `json:"educationLevel"`
	Technologies   []string `json:"technologies"`
}

// FlowchartNode is one node of the visual learning path.
type FlowchartNode struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Resources   []string `json:"resources"`
	RedirectURL string   `json:"redirectUrl"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Color       string   `json:"color"`
}

// FlowchartEdge connects two nodes by ID.
type FlowchartEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
}

// Flowchart is the generated node/edge graph. DroppedEdges counts edges the
// model emitted against node IDs that do not exist; they are pruned on decode.
type Flowchart struct {
	Nodes        []FlowchartNode `json:"nodes"`
	Edges        []FlowchartEdge `json:"edges"`
	DroppedEdges int             `json:"-"`
}

// PersonalInfo is the identity block of a portfolio.
type PersonalInfo struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Bio      string `json:"bio"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	GitHub   string `json:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// PortfolioProject is one project entry in a portfolio.
type PortfolioProject struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	LiveURL      string   `json:"liveUrl,omitempty"`
	SourceURL    string   `json:"sourceUrl,omitempty"`
}

// PortfolioExperience is one work-history entry in a portfolio.
type PortfolioExperience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// PortfolioEducation is one education entry in a portfolio.
type PortfolioEducation struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// PortfolioData is the structured content rendered into a portfolio site.
// It is produced by AI generation or resume parsing and consumed by the
// template packaging service.
type PortfolioData struct {
	Personal   PersonalInfo          `json:"personal"`
	Skills     []string              `json:"skills"`
	Projects   []PortfolioProject    `json:"projects"`
	Experience []PortfolioExperience `json:"experience"`
	Education  []PortfolioEducation  `json:"education"`
}
