package enhance

import (
	"fmt"
	"sort"
	"strings"

	"github.com/immodel/oasgen/model"
	"github.com/immodel/oasgen/openapi"
)

// Nablarch rewrites the document for Nablarch/Spring code generation: every
// schema property gains an x-field-extra-annotation domain binding and a
// constraint-block description, and operation tags become
// [operationId, packageName] pairs the generator splits controllers on.
type Nablarch struct{}

// NewNablarch returns the Nablarch post-processor.
func NewNablarch() *Nablarch {
	return &Nablarch{}
}

type fieldInfo struct {
	japanese     string
	sqlType      string
	nullable     bool
	isPrimaryKey bool
}

// Enhance decorates doc in place and returns it.
func (n *Nablarch) Enhance(doc *openapi.Document, classified *model.Classified, m *model.Model) (*openapi.Document, error) {
	fields := buildFieldMap(classified, m)
	n.annotateSchemas(doc, fields)
	n.rewriteTags(doc)
	return doc, nil
}

// buildFieldMap indexes every attribute of every entity by its English
// name. Later entities win on collision, matching iteration order.
func buildFieldMap(classified *model.Classified, m *model.Model) map[string]fieldInfo {
	fields := make(map[string]fieldInfo)
	entities := classified.All()
	if m != nil {
		entities = append(entities, m.CrossEntities...)
	}
	for _, e := range entities {
		for _, attr := range e.Attributes {
			if attr.English == "" {
				continue
			}
			fields[attr.English] = fieldInfo{
				japanese:     attr.Japanese,
				sqlType:      SQLType(attr.Type, attr.Length),
				nullable:     attr.Nullable != nil && *attr.Nullable,
				isPrimaryKey: attr.IsPrimaryKey,
			}
		}
	}
	return fields
}

func (n *Nablarch) annotateSchemas(doc *openapi.Document, fields map[string]fieldInfo) {
	for _, schema := range doc.Components.Schemas {
		if schema.Type != "object" {
			continue
		}
		for propName, prop := range schema.Properties {
			n.annotateProperty(propName, prop, fields)
		}
	}
}

func (n *Nablarch) annotateProperty(propName string, prop *openapi.Schema, fields map[string]fieldInfo) {
	pascal := camelToPascal(propName)
	domain := DomainName(pascal)

	info, ok := fields[pascal]
	if !ok {
		info = fieldInfo{japanese: propName, sqlType: "VARCHAR(255)"}
	}

	constraints := InferConstraints(pascal, info.sqlType, info.japanese, info.nullable, info.isPrimaryKey)

	if prop.Extensions == nil {
		prop.Extensions = make(map[string]any)
	}
	prop.Extensions["x-field-extra-annotation"] = fmt.Sprintf("@nablarch.core.validation.ee.Domain(%q)", domain)
	prop.Description = constraintDescription(info.japanese, domain, constraints)
}

func camelToPascal(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// constraintDescription renders the human-readable constraint block that
// replaces the property description.
func constraintDescription(japaneseName, domainName string, c Constraints) string {
	lines := []string{
		"項目名: " + japaneseName,
		"ドメイン: " + domainName,
		"制約:",
		"  - 型: " + c.Type,
	}
	if c.MaxLength > 0 {
		lines = append(lines, fmt.Sprintf("  - 最大長: %d文字", c.MaxLength))
	}
	if c.Precision > 0 {
		lines = append(lines, fmt.Sprintf("  - 整数部: 最大%d桁", c.IntegerDigits))
		lines = append(lines, fmt.Sprintf("  - 小数部: %d桁", c.DecimalDigits))
	}
	if c.Charset != "" {
		lines = append(lines, "  - 文字種: "+c.Charset)
	}
	if c.FormatDescription != "" {
		lines = append(lines, "  - フォーマット: "+c.FormatDescription)
	}
	required := "いいえ"
	if c.Required {
		required = "はい"
	}
	lines = append(lines, "  - 必須: "+required)
	return strings.Join(lines, "\n")
}

// rewriteTags replaces each operation's tag list with the pair
// [operationId, packageName] and rebuilds the top-level tag index.
func (n *Nablarch) rewriteTags(doc *openapi.Document) {
	seen := make(map[string]bool)
	var tags []openapi.Tag

	paths := make([]string, 0, len(doc.Paths))
	for p := range doc.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		for _, mo := range doc.Paths[path].Operations() {
			op := mo.Op
			if op.OperationID == "" {
				continue
			}
			pkg := packageFromPath(path)
			op.Tags = []string{op.OperationID, pkg}
			for _, t := range op.Tags {
				if !seen[t] {
					seen[t] = true
					tags = append(tags, openapi.Tag{Name: t})
				}
			}
		}
	}

	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	doc.Tags = tags
}

// packageFromPath takes the first segment after /api/, so
// /api/projects/{id}/start maps to "projects".
func packageFromPath(path string) string {
	if strings.Contains(path, "/api/") {
		parts := strings.Split(path, "/")
		if len(parts) > 2 {
			return parts[2]
		}
	}
	return "common"
}
