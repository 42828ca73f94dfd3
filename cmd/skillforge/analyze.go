package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/skillforge/skillforge/pkg/analyzer"
	"github.com/skillforge/skillforge/pkg/presenter"
	"github.com/skillforge/skillforge/pkg/telemetry"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <skill-dir>",
	Short: "Analyze a skill's size and complexity",
	Long: `Report an estimated token count for the definition file, line and word
counts, bundled resource counts, and a complexity rating for a skill
directory.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		skillDir := args[0]

		var stats *analyzer.Stats
		err := telemetry.WithSpan(cmd.Context(), "skill.analyze", func(_ context.Context) error {
			var err error
			stats, err = analyzer.Analyze(skillDir)
			return err
		}, attribute.String("skill.dir", skillDir))
		if err != nil {
			presenter.Error(err, "Failed to analyze skill")
			os.Exit(1)
		}

		presenter.Section(fmt.Sprintf("Analyzing: %s", skillDir))

		presenter.Info("Token Analysis:")
		presenter.Info(fmt.Sprintf("  Estimated tokens: ~%d", stats.EstimatedTokens))
		presenter.Info(fmt.Sprintf("  Lines: %d", stats.Lines))
		presenter.Info(fmt.Sprintf("  Words: %d", stats.Words))
		presenter.Info("")

		presenter.Info("Resources:")
		presenter.Info(fmt.Sprintf("  Scripts: %d", stats.Scripts))
		presenter.Info(fmt.Sprintf("  References: %d", stats.References))
		presenter.Info(fmt.Sprintf("  Assets: %d", stats.Assets))
		presenter.Info("")

		presenter.Info("Metrics:")
		presenter.Info(fmt.Sprintf("  Complexity: %s", stats.Complexity))
		if stats.Efficient() {
			presenter.Info("  Context efficiency: Good")
		} else {
			presenter.Info("  Context efficiency: Consider optimization")
			presenter.Warning("Definition file is large. Consider moving detailed content to references/")
		}
	},
}
