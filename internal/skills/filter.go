package skills

import "strings"

// nonTech are words models return alongside real skills
var nonTech = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		and or the a an in on at to for of with by
		experience skills knowledge ability capable proficient expert
		years months work working project projects development developing
		team teams management managing lead leading senior junior
		strong good excellent basic advanced intermediate beginner
		using used use including include such as like etc
		various multiple different several many some all most
		business company industry client customer user users none n/a`) {
		nonTech[w] = struct{}{}
	}
}

// shortTech are technologies too short for the length rule
var shortTech = map[string]struct{}{
	"go": {}, "c": {}, "r": {}, "js": {}, "ts": {}, "ai": {}, "ml": {}, "qt": {}, "c#": {}, "f#": {},
}

// techMarkers are substrings that identify framework and file-type names
var techMarkers = []string{".js", ".py", ".java", ".net", ".css", ".html", ".xml", ".json", ".sql", "++", "#"}

// maxSkillWords rejects prose fragments masquerading as skills
const maxSkillWords = 4

// IsTechSkill reports whether a candidate token plausibly names a technology
func IsTechSkill(token string) bool {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return false
	}
	if _, ok := shortTech[token]; ok {
		return true
	}
	if _, ok := nonTech[token]; ok {
		return false
	}
	if len(strings.Fields(token)) > maxSkillWords {
		return false
	}
	if strings.ContainsAny(token, "0123456789") {
		return true
	}
	for _, marker := range techMarkers {
		if strings.Contains(token, marker) {
			return true
		}
	}
	return len(token) >= 3
}
