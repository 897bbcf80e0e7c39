package templates

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"talentd/internal/ai"
)

// BuildPortfolioProject renders a complete, ready-to-build Vite/React project
// for the given portfolio data. The result maps relative file paths to file
// contents; every portfolio gets the same skeleton regardless of templateID,
// which only shows up in the README.
func BuildPortfolioProject(data ai.PortfolioData, templateID string) map[string]string {
	name := strings.TrimSpace(data.Personal.Name)
	if name == "" {
		name = "My Portfolio"
	}
	email := strings.TrimSpace(data.Personal.Email)
	slug := projectSlug(name)

	dataJSON, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		// PortfolioData contains only marshalable types; this cannot fail.
		dataJSON = []byte("{}")
	}

	files := map[string]string{
		"package.json":                   packageJSON(slug, name, email),
		"vite.config.ts":                 viteConfig,
		"tsconfig.json":                  tsConfig,
		"tsconfig.node.json":             tsConfigNode,
		".eslintrc.cjs":                  eslintConfig,
		"index.html":                     indexHTML(name, email),
		"src/main.tsx":                   mainTSX(name, email),
		"src/App.tsx":                    appTSX(name, email),
		"src/index.css":                  indexCSS,
		"src/data/portfolio.ts":          portfolioDataTS(string(dataJSON)),
		"src/components/Header.tsx":      headerTSX(name),
		"src/components/Footer.tsx":      footerTSX(name, email),
		"src/components/ContactForm.tsx": contactFormTSX,
		"src/pages/Home.tsx":             homeTSX,
		"src/pages/Projects.tsx":         projectsTSX,
		"src/pages/About.tsx":            aboutTSX,
		"src/pages/Contact.tsx":          contactTSX(email),
		"src/lib/animations.ts":          animationsTS,
		"README.md":                      readme(name, email, templateID),
		"LICENSE":                        license(name),
	}
	return files
}

func projectSlug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "portfolio"
	}
	return slug + "-portfolio"
}

func packageJSON(slug, name, email string) string {
	return fmt.Sprintf(`{
  "name": %q,
  "private": true,
  "version": "1.0.0",
  "type": "module",
  "author": "%s <%s>",
  "scripts": {
    "dev": "vite",
    "build": "tsc && vite build",
    "lint": "eslint . --ext ts,tsx",
    "preview": "vite preview"
  },
  "dependencies": {
    "@emailjs/browser": "^4.3.3",
    "framer-motion": "^11.2.10",
    "react": "^18.3.1",
    "react-dom": "^18.3.1",
    "react-router-dom": "^6.23.1"
  },
  "devDependencies": {
    "@types/react": "^18.3.3",
    "@types/react-dom": "^18.3.0",
    "@typescript-eslint/eslint-plugin": "^7.13.0",
    "@typescript-eslint/parser": "^7.13.0",
    "@vitejs/plugin-react": "^4.3.1",
    "eslint": "^8.57.0",
    "eslint-plugin-react-hooks": "^4.6.2",
    "eslint-plugin-react-refresh": "^0.4.7",
    "typescript": "^5.4.5",
    "vite": "^5.2.13"
  }
}
`, slug, name, email)
}

const viteConfig = `import { defineConfig } from 'vite'
import react from '@vitejs/plugin-react'

export default defineConfig({
  plugins: [react()],
})
`

const tsConfig = `{
  "compilerOptions": {
    "target": "ES2020",
    "useDefineForClassFields": true,
    "lib": ["ES2020", "DOM", "DOM.Iterable"],
    "module": "ESNext",
    "skipLibCheck": true,
    "moduleResolution": "bundler",
    "allowImportingTsExtensions": true,
    "resolveJsonModule": true,
    "isolatedModules": true,
    "noEmit": true,
    "jsx": "react-jsx",
    "strict": true,
    "noUnusedLocals": true,
    "noUnusedParameters": true,
    "noFallthroughCasesInSwitch": true
  },
  "include": ["src"],
  "references": [{ "path": "./tsconfig.node.json" }]
}
`

const tsConfigNode = `{
  "compilerOptions": {
    "composite": true,
    "skipLibCheck": true,
    "module": "ESNext",
    "moduleResolution": "bundler",
    "allowSyntheticDefaultImports": true
  },
  "include": ["vite.config.ts"]
}
`

const eslintConfig = `module.exports = {
  root: true,
  env: { browser: true, es2020: true },
  extends: [
    'eslint:recommended',
    'plugin:@typescript-eslint/recommended',
    'plugin:react-hooks/recommended',
  ],
  ignorePatterns: ['dist', '.eslintrc.cjs'],
  parser: '@typescript-eslint/parser',
  plugins: ['react-refresh'],
  rules: {
    'react-refresh/only-export-components': [
      'warn',
      { allowConstantExport: true },
    ],
  },
}
`

func indexHTML(name, email string) string {
	return fmt.Sprintf(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <meta name="author" content="%s" />
    <meta name="description" content="Portfolio of %s" />
    <link rel="me" href="mailto:%s" />
    <title>%s — Portfolio</title>
  </head>
  <body>
    <div id="root"></div>
    <script type="module" src="/src/main.tsx"></script>
  </body>
</html>
`, name, name, email, name)
}

func mainTSX(name, email string) string {
	return fmt.Sprintf(`// Portfolio site for %s <%s> — generated by Talentd.
import React from 'react'
import ReactDOM from 'react-dom/client'
import { BrowserRouter } from 'react-router-dom'
import App from './App.tsx'
import './index.css'

ReactDOM.createRoot(document.getElementById('root')!).render(
  <React.StrictMode>
    <BrowserRouter>
      <App />
    </BrowserRouter>
  </React.StrictMode>,
)
`, name, email)
}

func appTSX(name, email string) string {
	return fmt.Sprintf(`// Portfolio site for %s <%s> — generated by Talentd.
import { Routes, Route } from 'react-router-dom'
import Header from './components/Header'
import Footer from './components/Footer'
import Home from './pages/Home'
import Projects from './pages/Projects'
import About from './pages/About'
import Contact from './pages/Contact'

export default function App() {
  return (
    <div className="app">
      <Header />
      <main>
        <Routes>
          <Route path="/" element={<Home />} />
          <Route path="/projects" element={<Projects />} />
          <Route path="/about" element={<About />} />
          <Route path="/contact" element={<Contact />} />
        </Routes>
      </main>
      <Footer />
    </div>
  )
}
`, name, email)
}

const indexCSS = `:root {
  --accent: #6366f1;
  --bg: #0f172a;
  --surface: #1e293b;
  --text: #e2e8f0;
  --muted: #94a3b8;
  font-family: 'Inter', system-ui, sans-serif;
}

* {
  box-sizing: border-box;
  margin: 0;
}

body {
  background: var(--bg);
  color: var(--text);
  min-height: 100vh;
}

a {
  color: var(--accent);
  text-decoration: none;
}

main {
  max-width: 960px;
  margin: 0 auto;
  padding: 2rem 1.5rem;
}

.card {
  background: var(--surface);
  border-radius: 12px;
  padding: 1.5rem;
  margin-bottom: 1rem;
}

.muted {
  color: var(--muted);
}
`

func portfolioDataTS(dataJSON string) string {
	return fmt.Sprintf(`// Structured portfolio content consumed by every page.
export const portfolio = %s as const

export type Portfolio = typeof portfolio
`, dataJSON)
}

func headerTSX(name string) string {
	return fmt.Sprintf(`import { NavLink } from 'react-router-dom'

export default function Header() {
  return (
    <header className="card" style={{ display: 'flex', justifyContent: 'space-between' }}>
      <strong>%s</strong>
      <nav style={{ display: 'flex', gap: '1rem' }}>
        <NavLink to="/">Home</NavLink>
        <NavLink to="/projects">Projects</NavLink>
        <NavLink to="/about">About</NavLink>
        <NavLink to="/contact">Contact</NavLink>
      </nav>
    </header>
  )
}
`, name)
}

func footerTSX(name, email string) string {
	return fmt.Sprintf(`export default function Footer() {
  return (
    <footer className="muted" style={{ textAlign: 'center', padding: '2rem' }}>
      <p>© %d %s · <a href="mailto:%s">%s</a></p>
    </footer>
  )
}
`, time.Now().Year(), name, email, email)
}

const contactFormTSX = `import { useRef, useState } from 'react'
import emailjs from '@emailjs/browser'

const SERVICE_ID = import.meta.env.VITE_EMAILJS_SERVICE_ID
const TEMPLATE_ID = import.meta.env.VITE_EMAILJS_TEMPLATE_ID
const PUBLIC_KEY = import.meta.env.VITE_EMAILJS_PUBLIC_KEY

export default function ContactForm() {
  const formRef = useRef<HTMLFormElement>(null)
  const [status, setStatus] = useState<'idle' | 'sending' | 'sent' | 'error'>('idle')

  const handleSubmit = async (e: React.FormEvent) => {
    e.preventDefault()
    if (!formRef.current) return
    setStatus('sending')
    try {
      await emailjs.sendForm(SERVICE_ID, TEMPLATE_ID, formRef.current, PUBLIC_KEY)
      setStatus('sent')
      formRef.current.reset()
    } catch {
      setStatus('error')
    }
  }

  return (
    <form ref={formRef} onSubmit={handleSubmit} className="card">
      <input name="from_name" placeholder="Your name" required />
      <input name="reply_to" type="email" placeholder="Your email" required />
      <textarea name="message" placeholder="Your message" rows={5} required />
      <button type="submit" disabled={status === 'sending'}>
        {status === 'sending' ? 'Sending…' : 'Send message'}
      </button>
      {status === 'sent' && <p>Thanks! I will get back to you soon.</p>}
      {status === 'error' && <p>Something went wrong — please email me directly.</p>}
    </form>
  )
}
`

const homeTSX = `import { motion } from 'framer-motion'
import { portfolio } from '../data/portfolio'
import { fadeInUp } from '../lib/animations'

export default function Home() {
  const { personal, skills } = portfolio
  return (
    <motion.section {...fadeInUp}>
      <h1>{personal.name}</h1>
      <h2 className="muted">{personal.title}</h2>
      <p>{personal.bio}</p>
      <div className="card">
        <h3>Skills</h3>
        <p>{skills.join(' · ')}</p>
      </div>
    </motion.section>
  )
}
`

const projectsTSX = `import { motion } from 'framer-motion'
import { portfolio } from '../data/portfolio'
import { staggeredList } from '../lib/animations'

export default function Projects() {
  return (
    <section>
      <h1>Projects</h1>
      {portfolio.projects.map((project, i) => (
        <motion.article key={project.title} className="card" {...staggeredList(i)}>
          <h3>{project.title}</h3>
          <p>{project.description}</p>
          <p className="muted">{project.technologies.join(', ')}</p>
          {project.liveUrl && <a href={project.liveUrl}>Live</a>}{' '}
          {project.sourceUrl && <a href={project.sourceUrl}>Source</a>}
        </motion.article>
      ))}
    </section>
  )
}
`

const aboutTSX = `import { portfolio } from '../data/portfolio'

export default function About() {
  return (
    <section>
      <h1>About</h1>
      <h2>Experience</h2>
      {portfolio.experience.map((job) => (
        <article key={job.company + job.title} className="card">
          <h3>{job.title} · {job.company}</h3>
          <p className="muted">{job.duration}</p>
          <p>{job.description}</p>
        </article>
      ))}
      <h2>Education</h2>
      {portfolio.education.map((edu) => (
        <article key={edu.institution + edu.degree} className="card">
          <h3>{edu.degree}</h3>
          <p className="muted">{edu.institution} · {edu.year}</p>
        </article>
      ))}
    </section>
  )
}
`

func contactTSX(email string) string {
	return fmt.Sprintf(`import ContactForm from '../components/ContactForm'

export default function Contact() {
  return (
    <section>
      <h1>Contact</h1>
      <p>
        Reach me at <a href="mailto:%s">%s</a> or use the form below.
      </p>
      <ContactForm />
    </section>
  )
}
`, email, email)
}

const animationsTS = `// Shared framer-motion presets.
export const fadeInUp = {
  initial: { opacity: 0, y: 24 },
  animate: { opacity: 1, y: 0 },
  transition: { duration: 0.5 },
}

export const staggeredList = (index: number) => ({
  initial: { opacity: 0, y: 16 },
  animate: { opacity: 1, y: 0 },
  transition: { duration: 0.4, delay: index * 0.08 },
})
`

func readme(name, email, templateID string) string {
	template := templateID
	if strings.TrimSpace(template) == "" {
		template = "default"
	}
	return fmt.Sprintf(`# %s — Portfolio

Personal portfolio website for %s (%s), generated with Talentd using the
%q template.

## Getting started

`+"```bash"+`
npm install
npm run dev
`+"```"+`

## Contact form

The contact form uses EmailJS. Set these variables in a .env file before
building:

- VITE_EMAILJS_SERVICE_ID
- VITE_EMAILJS_TEMPLATE_ID
- VITE_EMAILJS_PUBLIC_KEY

## Build

`+"```bash"+`
npm run build
`+"```"+`

The production bundle lands in dist/.
`, name, name, email, template)
}

func license(name string) string {
	return fmt.Sprintf(`MIT License

Copyright (c) %d %s

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
`, time.Now().Year(), name)
}
