package matching

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// MatchXPath checks an XML body against path conditions. Each condition maps
// an etree path to the expected trimmed text (or attribute value for paths
// ending in /@attr). When one fails, the returned string names it.
func MatchXPath(conditions map[string]string, body []byte) (bool, string) {
	if len(conditions) == 0 {
		return true, ""
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return false, "body is not valid XML"
	}

	for _, path := range sortedKeys(conditions) {
		actual, found := ExtractXPath(doc, path)
		if !found {
			return false, fmt.Sprintf("%s not found", path)
		}
		if actual != conditions[path] {
			return false, fmt.Sprintf("%s expected %q, got %q", path, conditions[path], actual)
		}
	}

	return true, ""
}

// ExtractXPath extracts the text value at the given path from a document.
//
// Supported syntax is etree's path language:
//   - /path/to/element - absolute path
//   - //element - find anywhere in document
//   - /path/to/element/@attr - attribute value
//   - /path/to/element[1] - indexed access (1-based)
func ExtractXPath(doc *etree.Document, path string) (string, bool) {
	if doc == nil || path == "" {
		return "", false
	}

	elemPath, attrName, isAttr := strings.Cut(path, "/@")
	compiled, err := etree.CompilePath(elemPath)
	if err != nil {
		return "", false
	}
	elem := doc.FindElementPath(compiled)
	if elem == nil {
		return "", false
	}

	if isAttr {
		attr := elem.SelectAttr(attrName)
		if attr == nil {
			return "", false
		}
		return attr.Value, true
	}
	return strings.TrimSpace(elem.Text()), true
}

// ValidateXPath checks that path compiles as an etree path.
func ValidateXPath(path string) error {
	elemPath, _, _ := strings.Cut(path, "/@")
	if _, err := etree.CompilePath(elemPath); err != nil {
		return fmt.Errorf("invalid XML path %q: %w", path, err)
	}
	return nil
}
