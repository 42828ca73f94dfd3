package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillforge/skillforge/pkg/presenter"
	"github.com/skillforge/skillforge/pkg/scaffold"
	"github.com/skillforge/skillforge/pkg/skill"
)

// InitConfig holds configuration for the init command
type InitConfig struct {
	Path string
}

// NewInitConfig creates a new InitConfig with default values
func NewInitConfig() *InitConfig {
	return &InitConfig{Path: "."}
}

var initCmd = &cobra.Command{
	Use:   "init <skill-name>",
	Short: "Create a new skill-directory skeleton",
	Long: `Create a new skill directory containing a template definition file with
placeholder frontmatter plus example scripts/, references/ and assets/
entries. The name must be lowercase kebab-case (e.g. 'my-skill'). Fails if
the target directory already exists.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := getInitConfigFromFlags(cmd)
		name := args[0]

		root, err := scaffold.Create(name, config.Path)
		if err != nil {
			presenter.Error(err, "Failed to create skill")
			os.Exit(1)
		}

		presenter.Success(fmt.Sprintf("Created skill structure at: %s", root))
		presenter.Info("")
		presenter.Info("Next steps:")
		presenter.Info(fmt.Sprintf("1. Edit %s/%s and replace the TODO placeholders", root, skill.DefinitionFileName))
		presenter.Info("2. Add scripts, references, and assets as needed")
		presenter.Info("3. Delete example files you don't need")
		presenter.Info(fmt.Sprintf("4. Validate: skillforge validate %s", root))
		presenter.Info(fmt.Sprintf("5. Package: skillforge package %s", root))
	},
}

func init() {
	defaults := NewInitConfig()
	initCmd.Flags().StringP("path", "p", defaults.Path, "Output directory for the skill")
}

func getInitConfigFromFlags(cmd *cobra.Command) *InitConfig {
	config := NewInitConfig()
	if path, err := cmd.Flags().GetString("path"); err == nil && path != "" {
		config.Path = path
	}
	return config
}
