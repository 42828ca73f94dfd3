package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/skillforge/skillforge/pkg/logger"
	"github.com/skillforge/skillforge/pkg/presenter"
)

func init() {
	// Environment variables
	viper.SetEnvPrefix("SKILLFORGE")
	viper.AutomaticEnv()

	// Config file support
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.skillforge")
	viper.AddConfigPath(".")

	// Load config file if it exists (ignore errors if it doesn't)
	_ = viper.ReadInConfig()

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "fmt", "Log format (fmt, json)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

var rootCmd = &cobra.Command{
	Use:   "skillforge",
	Short: "Validate and package skill directories for distribution",
	Long: `Skillforge scaffolds, validates, and packages skills: directories
containing a SKILL.md definition file with YAML frontmatter plus optional
scripts/, references/ and assets/ resources. Packaging produces a
deterministic .skill archive whose top-level folder is named after the
skill.`,
	// Runs after flag parsing, so the tracing flags are visible here.
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if err := logger.SetLogLevel(viper.GetString("log_level")); err != nil {
			presenter.Warning(fmt.Sprintf("Invalid log level %q, using info", viper.GetString("log_level")))
			_ = logger.SetLogLevel("info")
		}
		logger.SetLogFormat(viper.GetString("log_format"))
		presenter.SetQuiet(viper.GetBool("quiet"))

		shutdown, err := initTracing(cmd.Context())
		if err != nil {
			logger.G(cmd.Context()).WithError(err).Warn("Failed to initialize tracing")
			return
		}
		tracingShutdown = shutdown
	},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

func main() {
	ctx := context.Background()

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(withTracing(validateCmd))
	rootCmd.AddCommand(withTracing(packageCmd))
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(withTracing(analyzeCmd))
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)

	err := rootCmd.ExecuteContext(ctx)
	if tracingShutdown != nil {
		if shutdownErr := tracingShutdown(ctx); shutdownErr != nil {
			logger.G(ctx).WithError(shutdownErr).Debug("Failed to shut down tracing")
		}
	}
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
