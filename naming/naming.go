// Package naming provides the case conversions and English pluralization
// used when deriving API paths, operation IDs, and schema property names
// from PascalCase entity and attribute names.
//
// All functions are pure and defined for the empty string. Conversions are
// lossy for abbreviation-heavy names: ToPascalCase(ToSnakeCase("HTTPError"))
// yields "HttpError", not "HTTPError".
package naming

import (
	"regexp"
	"strings"
)

var (
	firstCapRe = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	allCapRe   = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// ToSnakeCase converts a PascalCase or camelCase name to snake_case.
// Runs of capitals followed by a lowercase letter are split first, so
// "ProjectID" becomes "project_id" and "HTTPServer" becomes "http_server".
func ToSnakeCase(name string) string {
	s := firstCapRe.ReplaceAllString(name, "${1}_${2}")
	s = allCapRe.ReplaceAllString(s, "${1}_${2}")
	return strings.ToLower(s)
}

// ToCamelCase lowercases the first character of a PascalCase name, keeping
// any trailing acronym intact: "ProjectID" becomes "projectID". A name that
// is entirely uppercase, such as "ID", is lowered whole.
func ToCamelCase(name string) string {
	if name == "" {
		return ""
	}
	if name == strings.ToUpper(name) {
		return strings.ToLower(name)
	}
	return strings.ToLower(name[:1]) + name[1:]
}

// ToPascalCase converts a snake_case name to PascalCase by capitalizing
// each underscore-delimited word.
func ToPascalCase(name string) string {
	var b strings.Builder
	for _, word := range strings.Split(name, "_") {
		if word == "" {
			continue
		}
		b.WriteString(strings.ToUpper(word[:1]))
		b.WriteString(strings.ToLower(word[1:]))
	}
	return b.String()
}

// irregularPlurals take precedence over the suffix rules. The person entry
// follows this domain's convention (persons, not people).
var irregularPlurals = map[string]string{
	"person": "persons",
	"child":  "children",
	"man":    "men",
	"woman":  "women",
}

// Pluralize returns the English plural of word. Irregular words are looked
// up case-insensitively with the original casing of the first letter
// preserved; otherwise consonant+y becomes ies, sibilant endings gain es,
// and everything else gains s. Callers that may already hold a plural are
// expected to check for a trailing "s" themselves.
func Pluralize(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)
	if plural, ok := irregularPlurals[lower]; ok {
		if word[0] >= 'A' && word[0] <= 'Z' {
			return strings.ToUpper(plural[:1]) + plural[1:]
		}
		return plural
	}
	if strings.HasSuffix(lower, "y") && len(word) > 1 && !isVowel(lower[len(lower)-2]) {
		return word[:len(word)-1] + "ies"
	}
	for _, suffix := range []string{"s", "x", "z", "ch", "sh"} {
		if strings.HasSuffix(lower, suffix) {
			return word + "es"
		}
	}
	return word + "s"
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
