package validator

import (
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// bareResourceRef matches resource paths mentioned outside markdown link
// syntax, e.g. inside fenced code blocks or plain prose. The leading group
// keeps path fragments inside URLs from matching.
var bareResourceRef = regexp.MustCompile(`(^|[^A-Za-z0-9./_-])((?:scripts|references|assets)/[A-Za-z0-9._/-]+)`)

// ExtractReferences returns the resource paths mentioned in a definition
// body, normalized relative to the skill root and sorted. It combines two
// heuristics: destinations of markdown links and images (and inline code
// spans) found by walking the parsed AST, plus a bare-path scan of the raw
// text. Extraction is best-effort; callers must treat misses accordingly.
func ExtractReferences(body string) []string {
	found := make(map[string]struct{})

	add := func(candidate string) {
		candidate = strings.TrimSpace(candidate)
		candidate = strings.TrimPrefix(candidate, "./")
		candidate = strings.TrimRight(candidate, ".,;:")
		if candidate == "" || isExternalRef(candidate) {
			return
		}
		found[candidate] = struct{}{}
	}

	source := []byte(body)
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(source))

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			add(string(node.Destination))
		case *ast.Image:
			add(string(node.Destination))
		case *ast.CodeSpan:
			scanBare(nodeText(node, source), add)
		}
		return ast.WalkContinue, nil
	})

	scanBare(body, add)

	refs := make([]string, 0, len(found))
	for ref := range found {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}

func scanBare(text string, add func(string)) {
	for _, match := range bareResourceRef.FindAllStringSubmatch(text, -1) {
		add(match[2])
	}
}

func isExternalRef(candidate string) bool {
	return strings.HasPrefix(candidate, "http://") ||
		strings.HasPrefix(candidate, "https://") ||
		strings.HasPrefix(candidate, "mailto:") ||
		strings.HasPrefix(candidate, "#")
}

func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
		}
	}
	return sb.String()
}
