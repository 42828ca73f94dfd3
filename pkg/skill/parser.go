package skill

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

// Parse extracts and decodes the YAML frontmatter block of a skill definition
// file and returns the resulting Definition. It is a pure function over the
// input text: Root is left empty for the caller to fill in.
//
// The frontmatter block is everything between the opening --- line (which
// must be the first line of the file) and the next line consisting exactly
// of ---; indented or padded delimiters do not close the block. The block must
// decode to a mapping of string keys to scalar or simple-list values; the
// name and description keys are required.
func Parse(content []byte) (*Definition, error) {
	lines := strings.Split(string(content), "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != "---" {
		return nil, &ParseError{Code: ParseMissingFrontmatter}
	}

	frontmatterEnd := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r") == "---" {
			frontmatterEnd = i
			break
		}
	}
	if frontmatterEnd == -1 {
		return nil, &ParseError{Code: ParseUnterminatedFrontmatter}
	}

	metaData, err := decodeFrontmatter(content)
	if err != nil {
		return nil, err
	}

	for _, field := range []string{"name", "description"} {
		if _, ok := metaData[field]; !ok {
			return nil, &ParseError{Code: ParseMissingField, Field: field}
		}
	}

	name, ok := metaData["name"].(string)
	if !ok {
		return nil, &ParseError{Code: ParseMalformedYAML, Detail: "name must be a string"}
	}
	description, ok := metaData["description"].(string)
	if !ok {
		return nil, &ParseError{Code: ParseMalformedYAML, Detail: "description must be a string"}
	}

	var extra []string
	for key, value := range metaData {
		if err := checkValueType(key, value); err != nil {
			return nil, err
		}
		if key != "name" && key != "description" {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)

	body := strings.TrimLeft(strings.Join(lines[frontmatterEnd+1:], "\n"), "\n")

	return &Definition{
		Name:        name,
		Description: description,
		Body:        body,
		ExtraFields: extra,
	}, nil
}

// decodeFrontmatter runs the markdown converter with the meta extension and
// returns the decoded frontmatter mapping.
func decodeFrontmatter(content []byte) (map[string]interface{}, error) {
	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)

	var buf bytes.Buffer
	pctx := parser.NewContext()
	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return nil, &ParseError{Code: ParseMalformedYAML, Detail: err.Error()}
	}

	metaData, err := meta.TryGet(pctx)
	if err != nil {
		return nil, &ParseError{Code: ParseMalformedYAML, Detail: err.Error()}
	}
	if metaData == nil {
		return nil, &ParseError{Code: ParseMalformedYAML, Detail: "frontmatter is not a mapping"}
	}

	return metaData, nil
}

// checkValueType rejects frontmatter values outside the supported subset:
// scalars and flat lists of scalars. The upstream YAML decoder happily
// produces nested mappings, which no consumer of skill metadata expects.
func checkValueType(key string, value interface{}) error {
	switch v := value.(type) {
	case nil, string, bool, int, int64, uint64, float64:
		return nil
	case []interface{}:
		for _, item := range v {
			switch item.(type) {
			case string, bool, int, int64, uint64, float64:
			default:
				return &ParseError{
					Code:   ParseMalformedYAML,
					Detail: fmt.Sprintf("list value for key %q must contain only scalars", key),
				}
			}
		}
		return nil
	default:
		return &ParseError{
			Code:   ParseMalformedYAML,
			Detail: fmt.Sprintf("unsupported value type for key %q", key),
		}
	}
}

// Load reads the definition file from a skill directory, parses it, and sets
// Root to the directory. The definition is re-read from disk on every call;
// no parsed state is cached between invocations.
func Load(dir string) (*Definition, error) {
	content, err := os.ReadFile(filepath.Join(dir, DefinitionFileName))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read skill definition file")
	}

	def, err := Parse(content)
	if err != nil {
		return nil, err
	}

	def.Root = dir
	return def, nil
}
