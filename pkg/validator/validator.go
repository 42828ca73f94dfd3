// Package validator checks a parsed skill definition and its resource
// manifest against the packaging rule set. Violations are collected into a
// report rather than raised one at a time, so a single run surfaces every
// problem at once. Errors block packaging; warnings are advisory heuristics
// and are never promoted to errors.
package validator

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/skillforge/skillforge/pkg/analyzer"
	"github.com/skillforge/skillforge/pkg/skill"
)

// Finding is one rule violation with a stable machine code.
type Finding struct {
	Code    string
	Message string
}

// Report is the outcome of validating one skill directory. Findings appear
// in fixed rule order, not file-scan order, so output is deterministic
// across runs on identical input.
type Report struct {
	Errors   []Finding
	Warnings []Finding
}

// IsValid reports whether packaging may proceed.
func (r *Report) IsValid() bool {
	return len(r.Errors) == 0
}

func (r *Report) addError(code, format string, args ...interface{}) {
	r.Errors = append(r.Errors, Finding{Code: code, Message: fmt.Sprintf(format, args...)})
}

func (r *Report) addWarning(code, format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, Finding{Code: code, Message: fmt.Sprintf(format, args...)})
}

// Rule codes, in report order.
const (
	CodeNameFormat        = "name-format"
	CodeNameDirMismatch   = "name-dir-mismatch"
	CodeDescMissing       = "description-missing"
	CodeDescShort         = "description-short"
	CodeDescNoTrigger     = "description-no-trigger"
	CodeBodyEmpty         = "body-empty"
	CodeScriptRefMissing  = "script-ref-missing"
	CodeRefDocMissing     = "reference-ref-missing"
	CodeOrphanedResource  = "orphaned-resource"
	CodePlaceholderText   = "placeholder-text"
	CodeExtraneousFile    = "extraneous-file"
	CodeReadmePresent     = "readme-present"
	CodeExtraFields       = "frontmatter-extra-fields"
	CodeUnrecognizedEntry = "unrecognized-location"
	CodeBodyLarge         = "body-large"
	CodeBodyLong          = "body-long"
)

const minDescriptionLength = 40

// Budget thresholds for the advisory size checks.
const (
	tokenBudget = 5000
	lineBudget  = 500
)

// quotedPhrase matches an explicit activation phrase inside the description.
var quotedPhrase = regexp.MustCompile(`"[^"]+"`)

// triggerMarkers is the curated set of activation-phrase markers. Substring
// detection can over- and under-fire; that is why the rule stays a warning.
var triggerMarkers = []string{
	"use for",
	"use when",
	"used for",
	"use this",
	"activated by",
	"when the user",
	"trigger",
}

// extraneousFiles are auxiliary documentation files that must not ship in a
// skill package.
var extraneousFiles = []string{
	"INSTALLATION_GUIDE.md",
	"QUICK_REFERENCE.md",
	"CHANGELOG.md",
	"CONTRIBUTING.md",
}

// Validate evaluates every rule independently and returns a complete report.
// It never fails for well-formed inputs; a nil definition or manifest is a
// caller-side contract violation, not a validation failure.
func Validate(def *skill.Definition, manifest *skill.ResourceManifest) (*Report, error) {
	if def == nil {
		return nil, errors.New("definition must not be nil")
	}
	if manifest == nil {
		return nil, errors.New("resource manifest must not be nil")
	}

	report := &Report{}

	checkName(report, def)
	checkDescription(report, def)
	checkBody(report, def)
	checkResourceReferences(report, def, manifest)
	checkOrphans(report, def, manifest)
	checkPlaceholders(report, def)
	checkUnrecognized(report, manifest)
	checkExtraFields(report, def)
	checkBudget(report, def)

	return report, nil
}

func checkName(report *Report, def *skill.Definition) {
	if !skill.IsValidName(def.Name) {
		report.addError(CodeNameFormat, "name %q is not lowercase kebab-case", def.Name)
	}
	if def.Root != "" {
		if base := filepath.Base(def.Root); base != def.Name {
			report.addError(CodeNameDirMismatch, "name %q does not match directory name %q", def.Name, base)
		}
	}
}

func checkDescription(report *Report, def *skill.Definition) {
	description := strings.TrimSpace(def.Description)
	if description == "" {
		report.addError(CodeDescMissing, "description is empty")
		return
	}

	if length := utf8.RuneCountInString(description); length < minDescriptionLength {
		report.addWarning(CodeDescShort,
			"description is %d characters; describe what the skill does and when to use it (at least %d recommended)",
			length, minDescriptionLength)
	}

	if !hasTriggerLanguage(description) {
		report.addWarning(CodeDescNoTrigger,
			"description has no activation language (e.g. a quoted phrase, %q or %q)",
			"use for", "activated by")
	}
}

func hasTriggerLanguage(description string) bool {
	if quotedPhrase.MatchString(description) {
		return true
	}
	lower := strings.ToLower(description)
	for _, marker := range triggerMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func checkBody(report *Report, def *skill.Definition) {
	if strings.TrimSpace(def.Body) == "" {
		report.addError(CodeBodyEmpty, "definition body is empty")
	}
}

// checkResourceReferences cross-checks resource paths mentioned in the body
// against the manifest. Missing scripts are errors (the packaged skill would
// instruct callers to run files that do not exist); missing reference docs
// are advisory since the extraction is heuristic.
func checkResourceReferences(report *Report, def *skill.Definition, manifest *skill.ResourceManifest) {
	refs := ExtractReferences(def.Body)

	scripts := toSet(manifest.Scripts)
	for _, ref := range refs {
		if strings.HasPrefix(ref, skill.ScriptsDir+"/") {
			if _, ok := scripts[ref]; !ok {
				report.addError(CodeScriptRefMissing, "body references %s which does not exist", ref)
			}
		}
	}

	docs := toSet(manifest.References)
	for _, ref := range refs {
		if strings.HasPrefix(ref, skill.ReferencesDir+"/") {
			if _, ok := docs[ref]; !ok {
				report.addWarning(CodeRefDocMissing, "body references %s which does not exist", ref)
			}
		}
	}
}

func checkOrphans(report *Report, def *skill.Definition, manifest *skill.ResourceManifest) {
	for _, path := range manifest.All() {
		if !strings.Contains(def.Body, path) {
			report.addWarning(CodeOrphanedResource, "%s is bundled but never mentioned in the body", path)
		}
	}
}

func checkPlaceholders(report *Report, def *skill.Definition) {
	for _, marker := range []string{"TODO", "[PLACEHOLDER]"} {
		if strings.Contains(def.Body, marker) {
			report.addError(CodePlaceholderText, "body contains %s placeholder text", marker)
		}
	}
}

func checkUnrecognized(report *Report, manifest *skill.ResourceManifest) {
	extraneous := toSet(extraneousFiles)
	for _, path := range manifest.Unrecognized {
		switch {
		case path == "README.md":
			report.addWarning(CodeReadmePresent,
				"README.md found; skills should carry documentation in %s only", skill.DefinitionFileName)
		case extraneous[path]:
			report.addError(CodeExtraneousFile, "%s found; skills must not contain auxiliary documentation files", path)
		default:
			report.addWarning(CodeUnrecognizedEntry,
				"%s is outside the %s/, %s/, %s/ conventions", path,
				skill.ScriptsDir, skill.ReferencesDir, skill.AssetsDir)
		}
	}
}

func checkExtraFields(report *Report, def *skill.Definition) {
	if len(def.ExtraFields) > 0 {
		report.addWarning(CodeExtraFields,
			"frontmatter contains extra fields: %s; only name and description are required",
			strings.Join(def.ExtraFields, ", "))
	}
}

func checkBudget(report *Report, def *skill.Definition) {
	if tokens := analyzer.EstimateTokens(def.Body); tokens > tokenBudget {
		report.addWarning(CodeBodyLarge,
			"body is large (~%d tokens); consider moving content to reference files", tokens)
	}
	if lines := analyzer.CountLines(def.Body); lines > lineBudget {
		report.addWarning(CodeBodyLong,
			"body has %d lines; keep it under %d and use references", lines, lineBudget)
	}
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
