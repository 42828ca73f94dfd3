// Package analyzer produces size and complexity statistics for a skill
// directory: a rough token estimate for the definition body, line and word
// counts, and per-bucket resource counts. The token estimate assumes one
// token per four characters, which is close enough for budget advisories.
package analyzer

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"

	"github.com/skillforge/skillforge/pkg/skill"
)

// Complexity buckets derived from resource counts.
const (
	ComplexityLow    = "Low"
	ComplexityMedium = "Medium"
	ComplexityHigh   = "High"
)

// efficientTokenCount is the point past which the definition file starts
// crowding the context it is loaded into.
const efficientTokenCount = 4000

// Stats summarizes one skill directory at analysis time.
type Stats struct {
	EstimatedTokens int
	Lines           int
	Words           int
	Scripts         int
	References      int
	Assets          int
	Complexity      string
}

// Efficient reports whether the definition file is still context-efficient.
func (s *Stats) Efficient() bool {
	return s.EstimatedTokens < efficientTokenCount
}

// EstimateTokens returns a rough token count for the given text.
func EstimateTokens(content string) int {
	return len(content) / 4
}

// CountLines returns the number of lines in the given text.
func CountLines(content string) int {
	if content == "" {
		return 0
	}
	return len(strings.Split(content, "\n"))
}

// Analyze reads the definition file and counts bundled resources. Script and
// reference counts follow the bundling conventions (python scripts, markdown
// reference docs); assets count every regular file.
func Analyze(root string) (*Stats, error) {
	content, err := os.ReadFile(filepath.Join(root, skill.DefinitionFileName))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read skill definition file")
	}

	text := string(content)
	stats := &Stats{
		EstimatedTokens: EstimateTokens(text),
		Lines:           CountLines(text),
		Words:           len(strings.Fields(text)),
	}

	stats.Scripts = countMatches(filepath.Join(root, skill.ScriptsDir), "**/*.py")
	stats.References = countMatches(filepath.Join(root, skill.ReferencesDir), "**/*.md")
	stats.Assets = countFiles(filepath.Join(root, skill.AssetsDir))

	stats.Complexity = complexity(stats)
	return stats, nil
}

func complexity(stats *Stats) string {
	switch {
	case stats.Scripts > 3 || stats.References > 5 || stats.Assets > 10:
		return ComplexityHigh
	case stats.Scripts > 1 || stats.References > 2 || stats.Assets > 3:
		return ComplexityMedium
	default:
		return ComplexityLow
	}
}

func countMatches(dir, pattern string) int {
	if _, err := os.Stat(dir); err != nil {
		return 0
	}
	matches, err := doublestar.Glob(os.DirFS(dir), pattern)
	if err != nil {
		return 0
	}
	return len(matches)
}

func countFiles(dir string) int {
	count := 0
	_ = filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			count++
		}
		return nil
	})
	return count
}
