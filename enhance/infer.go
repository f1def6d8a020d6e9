// Package enhance decorates an assembled document with framework-specific
// metadata: Nablarch domain annotations, per-package tags, and constraint
// descriptions derived from the storage types.
package enhance

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/immodel/oasgen/naming"
)

// DomainName converts a PascalCase field name into its camelCase domain
// name, keeping a trailing "ID" in upper case.
func DomainName(fieldName string) string {
	if fieldName == "" {
		return ""
	}
	if strings.HasSuffix(fieldName, "ID") {
		base := fieldName[:len(fieldName)-2]
		if base == "" {
			return "id"
		}
		return strings.ToLower(base[:1]) + base[1:] + "ID"
	}
	return strings.ToLower(fieldName[:1]) + fieldName[1:]
}

// Event suffixes stripped when deriving a package name. Narrower than the
// endpoint mapping set: generic lifecycle events keep their own package.
var packageEventSuffixes = []string{
	"Start", "Complete", "Finish", "Cancel",
	"Evaluate", "Assess", "Approve", "Reject",
	"Assign", "Replace",
}

// PackageName derives the lowercase plural package name for an entity.
// Event entities are first reduced to their subject resource, so
// ProjectStart and ProjectCancel both land in "projects".
func PackageName(entityName, classification string) string {
	if entityName == "" {
		return ""
	}
	resource := entityName
	if classification == "event" {
		resource = extractEventResource(entityName)
	}
	return strings.ToLower(pluralizePackage(naming.ToSnakeCase(resource)))
}

func extractEventResource(eventName string) string {
	for _, suffix := range packageEventSuffixes {
		if strings.HasSuffix(eventName, suffix) && len(eventName) > len(suffix) {
			return strings.TrimSuffix(eventName, suffix)
		}
	}
	return eventName
}

// Words already ending in s are assumed plural and passed through.
func pluralizePackage(word string) string {
	if strings.HasSuffix(word, "s") {
		return word
	}
	return naming.Pluralize(word)
}

// Constraints is the validation metadata inferred for a single field.
type Constraints struct {
	Type              string
	MaxLength         int
	Precision         int
	Scale             int
	IntegerDigits     int
	DecimalDigits     int
	Format            string
	FormatDescription string
	Pattern           string
	Charset           string
	Required          bool
}

var (
	varcharRe = regexp.MustCompile(`^VARCHAR\((\d+)\)`)
	decimalRe = regexp.MustCompile(`^(?:DECIMAL|NUMERIC)\((\d+),(\d+)\)`)

	phonePattern  = `^\d{2,4}-?\d{2,4}-?\d{4}$`
	postalPattern = `^\d{3}-?\d{4}$`
)

// InferConstraints derives validation constraints for a field from its
// storage type and naming conventions. The type accepts both the bare form
// ("VARCHAR") and the parameterized form ("VARCHAR(256)", "DECIMAL(15,2)").
func InferConstraints(fieldName, sqlType, japaneseName string, nullable, isPrimaryKey bool) Constraints {
	c := parseSQLType(sqlType)
	inferFormat(fieldName, &c)
	c.Charset = inferCharset(fieldName, japaneseName)
	c.Required = !nullable && !isPrimaryKey
	return c
}

// SQLType composes the parameterized form from a bare type and length, so
// attribute records with a separate length column parse the same way.
func SQLType(bareType string, length int) string {
	if length > 0 {
		switch strings.ToUpper(bareType) {
		case "VARCHAR", "CHAR":
			return fmt.Sprintf("%s(%d)", strings.ToUpper(bareType), length)
		}
	}
	return bareType
}

func parseSQLType(sqlType string) Constraints {
	if sqlType == "" {
		return Constraints{Type: "文字列"}
	}
	upper := strings.ToUpper(sqlType)

	if m := varcharRe.FindStringSubmatch(upper); m != nil {
		var n int
		fmt.Sscanf(m[1], "%d", &n)
		return Constraints{Type: "文字列", MaxLength: n}
	}
	if m := decimalRe.FindStringSubmatch(upper); m != nil {
		var p, s int
		fmt.Sscanf(m[1], "%d", &p)
		fmt.Sscanf(m[2], "%d", &s)
		return Constraints{
			Type:          "数値（DECIMAL）",
			Precision:     p,
			Scale:         s,
			IntegerDigits: p - s,
			DecimalDigits: s,
		}
	}

	switch upper {
	case "INT", "BIGINT", "INTEGER", "SMALLINT":
		return Constraints{Type: "整数"}
	case "TIMESTAMP", "DATETIME":
		return Constraints{Type: "日時", Format: "date-time"}
	case "DATE":
		return Constraints{Type: "日付", Format: "date"}
	case "BOOLEAN", "BOOL":
		return Constraints{Type: "ブール値"}
	case "TEXT", "VARCHAR", "CHAR":
		return Constraints{Type: "文字列"}
	}
	return Constraints{Type: "文字列"}
}

func inferFormat(fieldName string, c *Constraints) {
	if fieldName == "" {
		return
	}
	lower := strings.ToLower(fieldName)
	switch {
	case strings.Contains(lower, "email"), strings.Contains(lower, "mail"):
		c.Format = "email"
		c.FormatDescription = "メールアドレス形式（RFC 5322準拠）"
	case strings.Contains(lower, "url"), strings.Contains(lower, "uri"):
		c.Format = "uri"
		c.FormatDescription = "URL形式"
	case strings.Contains(lower, "phone"), strings.Contains(lower, "tel"):
		c.Pattern = phonePattern
		c.FormatDescription = "電話番号形式（ハイフンあり/なし）"
	case strings.Contains(lower, "postal"), strings.Contains(lower, "zip"):
		c.Pattern = postalPattern
		c.FormatDescription = "郵便番号形式（7桁、ハイフンあり/なし）"
	}
}

func inferCharset(fieldName, japaneseName string) string {
	if fieldName == "" {
		return "ASCII文字（英数字、記号）"
	}
	lower := strings.ToLower(fieldName)

	if strings.HasSuffix(lower, "id") || strings.HasSuffix(lower, "code") {
		return "ASCII文字（英数字、記号）"
	}
	for _, kw := range []string{"email", "mail", "url", "uri"} {
		if strings.Contains(lower, kw) {
			return "ASCII文字"
		}
	}
	for _, r := range japaneseName {
		if r > 127 {
			return "システム許容文字（全角・半角英数字、ひらがな、カタカナ、漢字、記号）"
		}
	}
	return "ASCII文字（英数字、記号）"
}
