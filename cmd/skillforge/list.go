package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/skillforge/skillforge/pkg/presenter"
	"github.com/skillforge/skillforge/pkg/skill"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List discoverable skills",
	Long: `List all skills discoverable under the configured skill directories
(./skills and ~/.skillforge/skills by default, or skill_dirs from the
config file) with their names, directories, and descriptions.`,
	Run: func(cmd *cobra.Command, _ []string) {
		opts := []skill.Option{}
		if dirs := skillDirsFromConfig(cmd); len(dirs) > 0 {
			opts = append(opts, skill.WithSkillDirs(dirs...))
		}

		discovery, err := skill.NewDiscovery(opts...)
		if err != nil {
			presenter.Error(err, "Failed to initialize skill discovery")
			os.Exit(1)
		}

		found, err := discovery.DiscoverSkills()
		if err != nil {
			presenter.Error(err, "Failed to discover skills")
			os.Exit(1)
		}

		if len(found) == 0 {
			presenter.Info("No skills found")
			return
		}

		names, err := discovery.ListNames()
		if err != nil {
			presenter.Error(err, "Failed to list skills")
			os.Exit(1)
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tDIRECTORY\tDESCRIPTION")
		fmt.Fprintln(tw, "----\t---------\t-----------")

		for _, name := range names {
			def := found[name]
			description := def.Description
			if len(description) > 60 {
				description = description[:57] + "..."
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", def.Name, def.Root, description)
		}
		tw.Flush()
	},
}

func init() {
	listCmd.Flags().StringSliceP("dir", "d", nil, "Skill directory to search (repeatable, overrides defaults)")
}

func skillDirsFromConfig(cmd *cobra.Command) []string {
	if dirs, err := cmd.Flags().GetStringSlice("dir"); err == nil && len(dirs) > 0 {
		return dirs
	}
	return viper.GetStringSlice("skill_dirs")
}
