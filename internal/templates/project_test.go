package templates

import (
	"strings"
	"testing"

	"talentd/internal/ai"
)

func samplePortfolioData() ai.PortfolioData {
	return ai.PortfolioData{
		Personal: ai.PersonalInfo{
			Name:  "Priya Sharma",
			Title: "Backend Engineer",
			Bio:   "Go developer from Pune.",
			Email: "priya.sharma@example.com",
		},
		Skills: []string{"Go", "PostgreSQL", "Redis"},
		Projects: []ai.PortfolioProject{
			{Title: "URL Shortener", Description: "Tiny links", Technologies: []string{"Go", "Redis"}},
		},
		Experience: []ai.PortfolioExperience{
			{Title: "SDE Intern", Company: "Fintech Co", Duration: "2024", Description: "Built APIs"},
		},
		Education: []ai.PortfolioEducation{
			{Degree: "B.Tech CSE", Institution: "COEP", Year: "2025"},
		},
	}
}

func TestBuildPortfolioProject_IdentityInKeyFiles(t *testing.T) {
	data := samplePortfolioData()
	files := BuildPortfolioProject(data, "minimal-dark")

	for _, path := range []string{"package.json", "index.html", "src/main.tsx", "src/App.tsx", "README.md"} {
		content, ok := files[path]
		if !ok {
			t.Fatalf("project is missing %q", path)
		}
		if !strings.Contains(content, data.Personal.Name) {
			t.Fatalf("%q must contain the owner's name", path)
		}
		if !strings.Contains(content, data.Personal.Email) {
			t.Fatalf("%q must contain the owner's email", path)
		}
	}
}

func TestBuildPortfolioProject_CompleteSkeleton(t *testing.T) {
	files := BuildPortfolioProject(samplePortfolioData(), "minimal-dark")

	required := []string{
		"package.json", "vite.config.ts", "tsconfig.json", ".eslintrc.cjs",
		"index.html", "src/main.tsx", "src/App.tsx", "src/index.css",
		"src/data/portfolio.ts",
		"src/components/Header.tsx", "src/components/Footer.tsx", "src/components/ContactForm.tsx",
		"src/pages/Home.tsx", "src/pages/Projects.tsx", "src/pages/About.tsx", "src/pages/Contact.tsx",
		"src/lib/animations.ts", "README.md", "LICENSE",
	}
	for _, path := range required {
		if _, ok := files[path]; !ok {
			t.Fatalf("project is missing %q", path)
		}
	}
}

func TestBuildPortfolioProject_DataEmbedded(t *testing.T) {
	files := BuildPortfolioProject(samplePortfolioData(), "minimal-dark")

	dataFile := files["src/data/portfolio.ts"]
	for _, want := range []string{"URL Shortener", "Fintech Co", "B.Tech CSE", "PostgreSQL"} {
		if !strings.Contains(dataFile, want) {
			t.Fatalf("portfolio data file missing %q", want)
		}
	}
}

func TestBuildPortfolioProject_TemplateIDOnlyInReadme(t *testing.T) {
	files := BuildPortfolioProject(samplePortfolioData(), "neon-grid")

	if !strings.Contains(files["README.md"], "neon-grid") {
		t.Fatal("README must name the template")
	}
	if strings.Contains(files["package.json"], "neon-grid") {
		t.Fatal("template id must not leak into package.json")
	}
}

func TestBuildPortfolioProject_EmptyIdentityFallbacks(t *testing.T) {
	files := BuildPortfolioProject(ai.PortfolioData{}, "")

	pkg := files["package.json"]
	if !strings.Contains(pkg, `"name": "my-portfolio-portfolio"`) {
		t.Fatalf("expected fallback project name, got %q", pkg)
	}
	if !strings.Contains(files["README.md"], `"default"`) {
		t.Fatal("README must fall back to the default template name")
	}
}
