package market

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/cv-analyzer/internal/skills"
)

// vocabulary is the technology list the keyword fallback looks for
var vocabulary = []string{
	"api", "rest", "graphql", "grpc", "sql", "nosql", "json", "html", "css",
	"javascript", "typescript", "python", "java", "golang", "go", "rust", "scala", "kotlin", "swift", "c++", "c#",
	"react", "vue", "angular", "node.js", "express", "django", "flask", "fastapi", "spring",
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "ansible",
	"git", "github", "gitlab", "jenkins", "ci/cd", "devops", "microservices", "linux",
	"mongodb", "postgresql", "mysql", "redis", "elasticsearch", "kafka", "rabbitmq", "spark", "hadoop",
	"tensorflow", "pytorch", "sklearn", "scikit-learn", "pandas", "numpy", "jupyter",
	"machine learning", "deep learning", "nlp", "llm", "computer vision",
	"tableau", "power bi", "excel", "figma",
}

// vocabularyPatterns match each term on token boundaries
var vocabularyPatterns = compileVocabulary()

func compileVocabulary() map[string]*regexp.Regexp {
	terms := append(append([]string{}, vocabulary...), skills.MappedSkills()...)
	patterns := make(map[string]*regexp.Regexp, len(terms))
	for _, term := range terms {
		patterns[term] = regexp.MustCompile(`(^|[^a-z0-9+#.-])` + regexp.QuoteMeta(term) + `($|[^a-z0-9+#-])`)
	}
	return patterns
}

// KeywordScan returns the sorted vocabulary terms that occur in any snippet
func KeywordScan(snippets []string) []string {
	text := strings.ToLower(strings.Join(snippets, "\n"))

	var found []string
	for term, pattern := range vocabularyPatterns {
		if pattern.MatchString(text) {
			found = append(found, term)
		}
	}
	sort.Strings(found)
	return found
}
