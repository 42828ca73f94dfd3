// Package scaffold materializes a new skill-directory skeleton: a template
// definition file with placeholder frontmatter plus example files in each of
// the scripts/, references/ and assets/ resource directories. The templates
// carry TODO markers on purpose; validation refuses to package a skill until
// every placeholder has been replaced.
package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/pkg/errors"

	"github.com/skillforge/skillforge/pkg/skill"
)

var definitionTemplate = template.Must(template.New("definition").Parse(`---
name: {{.Name}}
description: 'TODO: Describe what this skill does and when to use it. Be specific and include key terms that would trigger this skill.'
---

# {{.Title}}

TODO: Write a brief overview of what this skill provides.

## Overview

TODO: Describe the skill's purpose and capabilities.

## Usage

TODO: Provide instructions for using this skill.

### Quick Start

TODO: Show the most common use case with an example.

## Bundled Resources

### Scripts

- ` + "`scripts/example.py`" + ` - TODO: Describe what this script does

### References

- ` + "`references/example.md`" + ` - TODO: Describe what reference material this provides

### Assets

- ` + "`assets/`" + ` - TODO: Describe what assets are included
`))

var scriptTemplate = template.Must(template.New("script").Parse(`#!/usr/bin/env python3
"""Example script for the {{.Name}} skill.

TODO: Replace this with actual functionality.
"""


def main():
    print("Hello from {{.Name}}!")


if __name__ == "__main__":
    main()
`))

const referenceTemplate = `# Example Reference

TODO: Replace this with actual reference documentation.

This file is loaded only when needed, keeping the main definition file lean.
`

const assetReadme = `# Assets Directory

This directory contains files used in the skill's output rather than loaded
as instructions: templates, images, boilerplate code, sample documents.

TODO: Add your asset files here and remove this README.
`

type templateData struct {
	Name  string
	Title string
}

// Create writes a new skill skeleton named after the skill under basePath
// and returns the created directory. It fails if the name is not kebab-case
// or if the target directory already exists.
func Create(name, basePath string) (string, error) {
	if !skill.IsValidName(name) {
		return "", errors.Errorf("invalid skill name %q: use lowercase kebab-case (e.g. 'my-skill')", name)
	}

	root := filepath.Join(basePath, name)
	if _, err := os.Stat(root); err == nil {
		return "", errors.Errorf("directory %s already exists", root)
	}

	data := templateData{Name: name, Title: titleCase(name)}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create skill directory")
	}
	for _, dir := range []string{skill.ScriptsDir, skill.ReferencesDir, skill.AssetsDir} {
		if err := os.Mkdir(filepath.Join(root, dir), 0o755); err != nil {
			return "", errors.Wrapf(err, "failed to create %s directory", dir)
		}
	}

	if err := renderFile(filepath.Join(root, skill.DefinitionFileName), definitionTemplate, data, 0o644); err != nil {
		return "", err
	}
	if err := renderFile(filepath.Join(root, skill.ScriptsDir, "example.py"), scriptTemplate, data, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(root, skill.ReferencesDir, "example.md"), []byte(referenceTemplate), 0o644); err != nil {
		return "", errors.Wrap(err, "failed to write example reference")
	}
	if err := os.WriteFile(filepath.Join(root, skill.AssetsDir, "README.md"), []byte(assetReadme), 0o644); err != nil {
		return "", errors.Wrap(err, "failed to write assets README")
	}

	return root, nil
}

func renderFile(path string, tmpl *template.Template, data templateData, mode os.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return errors.Wrapf(err, "failed to render %s", path)
	}
	return nil
}

func titleCase(name string) string {
	words := strings.Split(name, "-")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}
