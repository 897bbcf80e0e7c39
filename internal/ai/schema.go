package ai

import "github.com/google/generative-ai-go/genai"

func stringArray() *genai.Schema {
	return &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	}
}

// analysisReportSchema constrains the resume-analysis call so every field of
// AnalysisReport is guaranteed to be present in the decoded output.
var analysisReportSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"atsScore": {Type: genai.TypeInteger, Description: "0-100 ATS pass likelihood"},
		"keywordMatches": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"matched": stringArray(),
				"missing": stringArray(),
				"total":   {Type: genai.TypeInteger},
			},
			Required: []string{"matched", "missing", "total"},
		},
		"suggestions":      stringArray(),
		"formatScore":      {Type: genai.TypeInteger},
		"readabilityScore": {Type: genai.TypeInteger},
		"analysis":         {Type: genai.TypeString},
		"industryInsights": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"detectedIndustry":     {Type: genai.TypeString},
				"industrySpecificTips": stringArray(),
				"salaryInsights":       {Type: genai.TypeString},
			},
			Required: []string{"detectedIndustry", "industrySpecificTips", "salaryInsights"},
		},
		"skillsAnalysis": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"technicalSkills": stringArray(),
				"softSkills":      stringArray(),
				"missingSkills":   stringArray(),
			},
			Required: []string{"technicalSkills", "softSkills", "missingSkills"},
		},
		"experienceAnalysis": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"totalYears":        {Type: genai.TypeString},
				"careerProgression": {Type: genai.TypeString},
				"gapAnalysis":       stringArray(),
			},
			Required: []string{"totalYears", "careerProgression", "gapAnalysis"},
		},
		"improvementPriority": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"critical":     stringArray(),
				"important":    stringArray(),
				"nice_to_have": stringArray(),
			},
			Required: []string{"critical", "important", "nice_to_have"},
		},
	},
	Required: []string{
		"atsScore",
		"keywordMatches",
		"suggestions",
		"formatScore",
		"readabilityScore",
		"analysis",
		"industryInsights",
		"skillsAnalysis",
		"experienceAnalysis",
		"improvementPriority",
	},
}
