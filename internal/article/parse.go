package article

import (
	"regexp"
	"strings"

	"github.com/dorisurararara-crypto/auto-blog/internal/domain"
)

// The generator is asked to label its output with these section
// markers. Models do not always comply with the requested order, so
// each field is located independently and captured up to the next
// recognized marker, a "---" delimiter line, or end of text.
var fieldLabels = []string{"VS_TITLE", "TITLE", "SUMMARY", "CONTENT", "IMAGE_PROMPT", "KEYWORDS"}

var fieldExprs = buildFieldExprs()

func buildFieldExprs() map[string]*regexp.Regexp {
	boundary := `^[ \t]*---[ \t]*$|^[ \t]*(?:` + strings.Join(fieldLabels, "|") + `)[ \t]*:|\z`
	exprs := make(map[string]*regexp.Regexp, len(fieldLabels))
	for _, label := range fieldLabels {
		exprs[label] = regexp.MustCompile(
			`(?ims)^[ \t]*` + label + `[ \t]*:[ \t]*(.*?)\s*(?:` + boundary + `)`)
	}
	return exprs
}

// Parse extracts structured fields from raw generator output. It is
// total: markers may appear in any order or be missing entirely, and
// every absent field becomes an empty string. Empty keywords are
// synthesized from the first two title tokens.
func Parse(raw string) domain.ParsedArticle {
	parsed := domain.ParsedArticle{
		Title:       extract(raw, "TITLE"),
		Summary:     extract(raw, "SUMMARY"),
		Body:        extract(raw, "CONTENT"),
		ImagePrompt: extract(raw, "IMAGE_PROMPT"),
		Keywords:    extract(raw, "KEYWORDS"),
	}

	if parsed.Keywords == "" {
		parsed.Keywords = FirstWords(parsed.Title, 2)
	}

	return parsed
}

func extract(raw, label string) string {
	match := fieldExprs[label].FindStringSubmatch(raw)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}

// FirstKeyword returns the first comma-delimited keyword with bracket
// noise stripped, or "" when none survives.
func FirstKeyword(keywords string) string {
	cleaned := strings.NewReplacer("[", "", "]", "").Replace(keywords)
	for _, part := range strings.Split(cleaned, ",") {
		if kw := strings.TrimSpace(part); kw != "" {
			return kw
		}
	}
	return ""
}

// FirstWords returns the first n space-separated tokens of s.
func FirstWords(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}
