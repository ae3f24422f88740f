package parser

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Skill keyword vocabulary, grouped by category. Matching is boundary-aware
// and dots are optional so "node.js" also matches "nodejs".
var skillCategories = map[string][]string{
	"programming": {
		"python", "java", "javascript", "typescript", "c++", "c#", "php", "ruby", "go",
		"rust", "swift", "kotlin", "scala", "r", "matlab", "perl", "dart", "elixir",
		"clojure", "haskell", "lua", "assembly", "cobol", "fortran", "pascal",
	},
	"web_frontend": {
		"html", "css", "sass", "scss", "less", "bootstrap", "tailwind css", "foundation",
		"react", "angular", "vue.js", "vuejs", "svelte", "ember.js", "backbone.js",
		"jquery", "webpack", "vite", "parcel", "rollup", "gulp", "grunt",
	},
	"web_backend": {
		"nodejs", "node.js", "express", "django", "flask", "fastapi", "spring", "spring boot",
		"laravel", "rails", "ruby on rails", "asp.net", "next.js", "nuxt.js", "nestjs",
		"koa", "hapi", "strapi", "gin", "echo", "fiber",
	},
	"databases": {
		"sql", "mysql", "postgresql", "mongodb", "redis", "sqlite", "oracle", "db2",
		"cassandra", "couchdb", "dynamodb", "elasticsearch", "neo4j", "influxdb",
		"mariadb", "cockroachdb", "firestore", "cosmos db",
	},
	"cloud_devops": {
		"aws", "amazon web services", "azure", "microsoft azure", "gcp", "google cloud",
		"docker", "kubernetes", "jenkins", "gitlab ci", "github actions", "terraform",
		"ansible", "chef", "puppet", "vagrant", "ci/cd", "heroku", "vercel", "netlify",
	},
	"data_science": {
		"machine learning", "deep learning", "artificial intelligence", "data science",
		"data analysis", "tensorflow", "pytorch", "keras", "scikit-learn", "pandas",
		"numpy", "matplotlib", "seaborn", "plotly", "jupyter", "r studio", "tableau",
		"power bi", "excel", "spark", "hadoop", "airflow", "mlflow",
	},
	"mobile": {
		"ios", "android", "react native", "flutter", "xamarin", "ionic", "cordova",
		"swift", "objective-c", "kotlin", "java android", "dart flutter",
	},
	"tools": {
		"git", "github", "gitlab", "bitbucket", "svn", "linux", "ubuntu", "centos",
		"windows", "macos", "vim", "vscode", "intellij", "eclipse", "sublime text",
		"atom", "postman", "insomnia", "slack", "teams", "zoom",
	},
	"design": {
		"photoshop", "illustrator", "figma", "sketch", "adobe xd", "canva", "blender",
		"after effects", "premiere pro", "indesign", "ui/ux", "user experience",
		"user interface", "wireframing", "prototyping",
	},
	"methodologies": {
		"agile", "scrum", "kanban", "devops", "microservices", "api", "rest", "restful",
		"graphql", "soap", "grpc", "unit testing", "integration testing", "tdd", "bdd",
		"test driven development", "behavior driven development",
	},
}

// skillPatterns is built once from skillCategories, keyed by the display
// form of each keyword.
var skillPatterns = buildSkillPatterns()

type skillPattern struct {
	display string
	re      *regexp.Regexp
}

func buildSkillPatterns() []skillPattern {
	categories := make([]string, 0, len(skillCategories))
	for category := range skillCategories {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var out []skillPattern
	for _, category := range categories {
		for _, skill := range skillCategories[category] {
			quoted := regexp.QuoteMeta(strings.ToLower(skill))
			quoted = strings.ReplaceAll(quoted, `\.`, `\.?`)
			out = append(out, skillPattern{
				display: titleWords(skill),
				re:      regexp.MustCompile(`\b` + quoted + `\b`),
			})
		}
	}
	return out
}

var contextSkillRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:proficient|experienced|skilled)\s+(?:in|with)\s+([^,.;\n]+)`),
	regexp.MustCompile(`(?i)(?:knowledge|experience)\s+(?:of|in|with)\s+([^,.;\n]+)`),
	regexp.MustCompile(`(?i)technologies?[:\s]+([^.\n]+)`),
	regexp.MustCompile(`(?i)tools?[:\s]+([^.\n]+)`),
}

var skillSplitRe = regexp.MustCompile(`[,;|&]`)

// extractSkills matches the keyword vocabulary against the skills section
// when present, falling back to the whole text, then picks up free-form
// skills from "proficient in ..." style phrases. The result is
// de-duplicated case-insensitively and sorted.
func extractSkills(text string, sections map[string]string) []string {
	skillsText := strings.ToLower(sectionOr(sections, "skills", text))

	var found []string
	for _, sp := range skillPatterns {
		if sp.re.MatchString(skillsText) {
			found = append(found, sp.display)
		}
	}

	for _, re := range contextSkillRes {
		for _, m := range re.FindAllStringSubmatch(skillsText, -1) {
			for _, part := range skillSplitRe.Split(m[1], -1) {
				part = strings.TrimSpace(part)
				if len(part) > 2 && len(part) < 30 {
					found = append(found, titleWords(part))
				}
			}
		}
	}

	unique := dedupeOrdered(found)
	filtered := unique[:0]
	for _, skill := range unique {
		if len(skill) > 2 {
			filtered = append(filtered, skill)
		}
	}
	sort.Strings(filtered)
	return filtered
}

// titleWords uppercases the first letter of each space-separated word and
// lowercases the rest.
func titleWords(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
