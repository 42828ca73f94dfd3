// Package skill defines the skill package data model and the frontmatter
// parser. A skill is a directory containing a SKILL.md file with YAML
// frontmatter (name, description) plus optional scripts/, references/ and
// assets/ subdirectories bundling resources the skill body refers to.
package skill

import (
	"fmt"
	"regexp"
)

// DefinitionFileName is the canonical definition file inside a skill directory.
const DefinitionFileName = "SKILL.md"

// namePattern is the lowercase kebab-case constraint on skill names.
var namePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// IsValidName reports whether a skill name is lowercase kebab-case.
func IsValidName(name string) bool {
	return namePattern.MatchString(name)
}

// Definition represents one candidate skill package, read fresh from disk on
// every invocation. Root is supplied by the caller and never persisted in the
// file itself.
type Definition struct {
	Name        string   // Unique identifier from frontmatter, kebab-case
	Description string   // Activation description from frontmatter
	Body        string   // Markdown content following the frontmatter block
	Root        string   // Filesystem location of the containing directory
	ExtraFields []string // Frontmatter keys beyond name/description, sorted
}

// Metadata is the YAML schema of the frontmatter block. Deprecated fields are
// decoded so migration can detect and drop them.
type Metadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	License     string `yaml:"license,omitempty"` // deprecated, removed by migrate
}

// ParseCode identifies the category of a frontmatter parse failure.
type ParseCode string

const (
	// ParseMissingFrontmatter means the file does not start with a --- line.
	ParseMissingFrontmatter ParseCode = "missing-frontmatter"
	// ParseUnterminatedFrontmatter means no closing --- line was found.
	ParseUnterminatedFrontmatter ParseCode = "unterminated-frontmatter"
	// ParseMalformedYAML means the frontmatter block failed to decode, or a
	// value has a type outside the supported scalar/list subset.
	ParseMalformedYAML ParseCode = "malformed-yaml"
	// ParseMissingField means a required frontmatter key is absent.
	ParseMissingField ParseCode = "missing-field"
)

// ParseError is returned by Parse when the definition file is malformed.
// Parse failures are unrecoverable without fixing the input file.
type ParseError struct {
	Code   ParseCode
	Field  string // set for ParseMissingField
	Detail string // set for ParseMalformedYAML
}

func (e *ParseError) Error() string {
	switch e.Code {
	case ParseMissingFrontmatter:
		return "definition file must start with YAML frontmatter (---)"
	case ParseUnterminatedFrontmatter:
		return "frontmatter block is not terminated by a closing --- line"
	case ParseMalformedYAML:
		return fmt.Sprintf("malformed frontmatter: %s", e.Detail)
	case ParseMissingField:
		return fmt.Sprintf("frontmatter missing required field %q", e.Field)
	}
	return string(e.Code)
}
