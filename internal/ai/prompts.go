package ai

import "strings"

// promptSpec pairs a fixed system instruction with a user-prompt builder for
// one content type. The system instruction pins the exact JSON shape; the
// builder concatenates the caller's prompt with option-conditioned sentences.
type promptSpec struct {
	system    string
	buildUser func(prompt string, opts GenerateOptions) string
}

const jobSystemPrompt = `You are a job-board content writer for early-career tech job seekers in India.
Produce a single job posting as a JSON object with exactly these keys:
{
  "title": "job title",
  "company": "company name",
  "location": "city, state or Remote",
  "salaryRange": "e.g. ₹6-10 LPA",
  "jobType": "full-time | part-time | contract",
  "experienceLevel": "e.g. 0-2 years",
  "description": "2-3 paragraph overview",
  "requirements": "newline-separated requirements",
  "responsibilities": "newline-separated responsibilities",
  "benefits": "newline-separated benefits",
  "skills": ["skill", ...],
  "companyWebsite": "https url",
  "applicationUrl": "https url",
  "companyLogo": "https url to a logo image",
  "generatedImages": [],
  "workflowImages": [],
  "mindmapImages": [],
  "isAIGenerated": true
}
Return valid JSON only. Do not wrap the output in markdown code blocks.`

const internshipSystemPrompt = `You are a job-board content writer for students and early-career tech job seekers in India.
Produce a single internship posting as a JSON object with exactly the same keys as a job posting:
title, company, location, salaryRange (stipend), jobType, experienceLevel, description,
requirements, responsibilities, benefits, skills, companyWebsite, applicationUrl,
companyLogo, generatedImages, workflowImages, mindmapImages, isAIGenerated.
Set jobType to "internship" and isAIGenerated to true.
Return valid JSON only. Do not wrap the output in markdown code blocks.`

const articleSystemPrompt = `You are a career-advice editor writing for early-career tech job seekers in India.
Produce an article as a JSON object with exactly these keys:
{
  "title": "article title",
  "content": "full article body in markdown",
  "excerpt": "1-2 sentence summary",
  "author": "author name",
  "category": "e.g. Career Advice, Interview Prep, Tech Skills",
  "tags": ["tag", ...],
  "readTime": "e.g. 7 min read",
  "featuredImage": "https url to a relevant image"
}
Return valid JSON only. Do not wrap the output in markdown code blocks.`

const roadmapSystemPrompt = `You are a curriculum designer for self-taught developers.
Produce a learning roadmap as a JSON object with exactly these keys:
{
  "title": "roadmap title",
  "description": "short description",
  "content": "detailed guide in markdown",
  "difficulty": "beginner | intermediate | advanced",
  "estimatedTime": "e.g. 6 months",
  "educationLevel": "e.g. any, undergraduate",
  "technologies": ["technology", ...],
  "steps": [{"title": "step", "description": "what to learn", "resources": ["url or book", ...]}, ...],
  "image": "https url to a cover image",
  "flowchartData": {"nodes": [], "edges": []}
}
Return valid JSON only. Do not wrap the output in markdown code blocks.`

const dsaProblemSystemPrompt = `You are a technical-interview problem setter.
Produce one data-structures-and-algorithms practice problem as a JSON object with exactly these keys:
{
  "title": "problem title",
  "description": "full problem statement with examples and constraints",
  "difficulty": "easy | medium | hard",
  "category": "e.g. arrays, graphs, dynamic programming",
  "solution": "worked solution with code in markdown",
  "hints": ["hint", ...],
  "timeComplexity": "e.g. O(n log n)",
  "spaceComplexity": "e.g. O(n)",
  "tags": ["tag", ...],
  "companies": ["company that asks this", ...]
}
Return valid JSON only. Do not wrap the output in markdown code blocks.`

const dsaTopicSystemPrompt = `You are a technical-interview curriculum designer.
Produce one DSA topic record as a JSON object with exactly these keys:
{
  "name": "topic name",
  "description": "what the topic covers and why it matters in interviews",
  "difficulty": "easy | medium | hard",
  "problemCount": 0,
  "icon": "a short emoji or icon hint"
}
Return valid JSON only. Do not wrap the output in markdown code blocks.`

const dsaCompanySystemPrompt = `You are a technical-interview researcher.
Produce one company interview profile as a JSON object with exactly these keys:
{
  "name": "company name",
  "description": "what the company's DSA interviews focus on",
  "logo": "https url to the company logo",
  "problemCount": 0
}
Return valid JSON only. Do not wrap the output in markdown code blocks.`

const dsaSheetSystemPrompt = `You are a technical-interview coach.
Produce one curated DSA practice sheet as a JSON object with exactly these keys:
{
  "name": "sheet name",
  "description": "who the sheet is for and what it covers",
  "creator": "author name",
  "problemCount": 0,
  "difficulty": "mixed | easy | medium | hard",
  "topics": ["topic", ...]
}
Return valid JSON only. Do not wrap the output in markdown code blocks.`

const portfolioSystemPrompt = `You are a portfolio website generator for tech job seekers.
Produce a complete portfolio as a JSON object with exactly these keys:
{
  "portfolioData": {
    "personal": {"name": "", "title": "", "bio": "", "email": "", "phone": "", "location": "", "github": "", "linkedin": ""},
    "skills": ["skill", ...],
    "projects": [{"title": "", "description": "", "technologies": [""], "liveUrl": "", "sourceUrl": ""}, ...],
    "experience": [{"title": "", "company": "", "duration": "", "description": ""}, ...],
    "education": [{"degree": "", "institution": "", "year": ""}, ...]
  },
  "portfolioCode": {"html": "", "css": "", "js": ""},
  "generatedAssets": {"images": [], "logos": []},
  "animations": {},
  "enhancedFeatures": {}
}
Return valid JSON only. Do not wrap the output in markdown code blocks.`

const advertisingSystemPrompt = `You are a marketing designer producing ready-to-use advertising templates.
Produce one template as a JSON object with exactly these keys:
{
  "templateName": "",
  "templateType": "banner | social-post | email | landing-section",
  "htmlCode": "",
  "cssCode": "",
  "copyText": "",
  "colorScheme": {"primary": "", "secondary": "", "accent": "", "background": ""},
  "typography": {"heading": "", "body": ""},
  "assets": {"images": [], "icons": []},
  "brandGuidelines": "",
  "downloadFiles": []
}
Return valid JSON only. Do not wrap the output in markdown code blocks.`

const scholarshipSystemPrompt = `You are a scholarship-listing editor for students in India.
Produce one scholarship listing as a JSON object with exactly these keys:
{
  "title": "",
  "description": "",
  "provider": "",
  "amount": "e.g. ₹50,000 per year",
  "educationLevel": "e.g. undergraduate, postgraduate",
  "eligibility": "",
  "deadline": "ISO 8601 date",
  "applicationUrl": "https url",
  "category": "e.g. merit, need-based, women-in-tech",
  "tags": ["tag", ...],
  "benefits": "",
  "requirements": "",
  "howToApply": "",
  "isActive": true,
  "featured": false
}
Return valid JSON only. Do not wrap the output in markdown code blocks.`

// Option sentences. Every option appends independently; builders pick the ones
// their content type understands.
const (
	fetchFromWebSentence = " Ground the answer in realistic, current market data rather than invented placeholders."
	companyLogoSentence  = " Include a companyLogo URL using the https://logo.clearbit.com/<domain> format."
	imagesSentence       = " Suggest relevant illustrative image URLs where the shape allows them."
	mindmapSentence      = " Also populate flowchartData with a small nodes/edges mindmap of the main concepts."
)

func buildListingUser(prompt string, opts GenerateOptions) string {
	var b strings.Builder
	b.WriteString(prompt)
	if opts.TargetCompany != "" {
		b.WriteString(" The posting is for the company " + opts.TargetCompany + ".")
	}
	b.WriteString(educationSentence(opts))
	if opts.FetchFromWeb {
		b.WriteString(fetchFromWebSentence)
	}
	if opts.IncludeCompanyLogo {
		b.WriteString(companyLogoSentence)
	}
	if opts.GenerateImages {
		b.WriteString(imagesSentence)
	}
	return b.String()
}

// educationSentence renders the education-level option when set.
func educationSentence(o GenerateOptions) string {
	if o.EducationLevel == "" {
		return ""
	}
	return " Target candidates at the " + o.EducationLevel + " education level."
}

func buildArticleUser(prompt string, opts GenerateOptions) string {
	var b strings.Builder
	b.WriteString(prompt)
	if opts.FetchFromWeb {
		b.WriteString(fetchFromWebSentence)
	}
	if opts.GenerateImages {
		b.WriteString(imagesSentence)
	}
	return b.String()
}

func buildRoadmapUser(prompt string, opts GenerateOptions) string {
	var b strings.Builder
	b.WriteString(prompt)
	if opts.Difficulty != "" {
		b.WriteString(" Aim the roadmap at the " + opts.Difficulty + " level.")
	}
	b.WriteString(educationSentence(opts))
	if opts.FetchFromWeb {
		b.WriteString(fetchFromWebSentence)
	}
	if opts.GenerateMindmap {
		b.WriteString(mindmapSentence)
	}
	return b.String()
}

func buildDsaUser(prompt string, opts GenerateOptions) string {
	var b strings.Builder
	b.WriteString(prompt)
	if opts.Difficulty != "" {
		b.WriteString(" Difficulty: " + opts.Difficulty + ".")
	}
	if opts.TargetCompany != "" {
		b.WriteString(" Focus on what " + opts.TargetCompany + " asks.")
	}
	if opts.FetchFromWeb {
		b.WriteString(fetchFromWebSentence)
	}
	return b.String()
}

func buildScholarshipUser(prompt string, opts GenerateOptions) string {
	var b strings.Builder
	b.WriteString(prompt)
	b.WriteString(educationSentence(opts))
	if opts.FetchFromWeb {
		b.WriteString(fetchFromWebSentence)
	}
	return b.String()
}

func buildPlainUser(prompt string, opts GenerateOptions) string {
	var b strings.Builder
	b.WriteString(prompt)
	if opts.FetchFromWeb {
		b.WriteString(fetchFromWebSentence)
	}
	if opts.GenerateImages {
		b.WriteString(imagesSentence)
	}
	return b.String()
}

// promptSpecs is the dispatch table keyed on content type.
var promptSpecs = map[ContentType]promptSpec{
	TypeJob:                 {system: jobSystemPrompt, buildUser: buildListingUser},
	TypeInternship:          {system: internshipSystemPrompt, buildUser: buildListingUser},
	TypeArticle:             {system: articleSystemPrompt, buildUser: buildArticleUser},
	TypeRoadmap:             {system: roadmapSystemPrompt, buildUser: buildRoadmapUser},
	TypeDsaProblem:          {system: dsaProblemSystemPrompt, buildUser: buildDsaUser},
	TypeDsaTopic:            {system: dsaTopicSystemPrompt, buildUser: buildDsaUser},
	TypeDsaCompany:          {system: dsaCompanySystemPrompt, buildUser: buildDsaUser},
	TypeDsaSheet:            {system: dsaSheetSystemPrompt, buildUser: buildDsaUser},
	TypePortfolioWebsite:    {system: portfolioSystemPrompt, buildUser: buildPlainUser},
	TypeAdvertisingTemplate: {system: advertisingSystemPrompt, buildUser: buildPlainUser},
	TypeScholarship:         {system: scholarshipSystemPrompt, buildUser: buildScholarshipUser},
}
