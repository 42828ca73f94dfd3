package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/attribute"

	"github.com/skillforge/skillforge/pkg/packager"
	"github.com/skillforge/skillforge/pkg/presenter"
	"github.com/skillforge/skillforge/pkg/skill"
	"github.com/skillforge/skillforge/pkg/telemetry"
	"github.com/skillforge/skillforge/pkg/validator"
)

// PackageConfig holds configuration for the package command
type PackageConfig struct {
	OutputDir string
}

// NewPackageConfig creates a new PackageConfig with default values
func NewPackageConfig() *PackageConfig {
	outputDir := viper.GetString("output_dir")
	if outputDir == "" {
		outputDir = "."
	}
	return &PackageConfig{OutputDir: outputDir}
}

var packageCmd = &cobra.Command{
	Use:   "package <skill-dir> [output-dir]",
	Short: "Validate and package a skill directory into a .skill archive",
	Long: `Run the full pipeline: parse the definition file, validate the skill
directory, and package it into a deterministic .skill archive whose
top-level folder is named after the skill. Packaging refuses to run when
validation reports errors.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		config := getPackageConfigFromFlags(cmd, args)
		skillDir := args[0]

		archivePath, err := runPackaging(cmd.Context(), skillDir, config.OutputDir)
		if err != nil {
			os.Exit(1)
		}

		info, statErr := os.Stat(archivePath)
		presenter.Success(fmt.Sprintf("Successfully packaged: %s", archivePath))
		if statErr == nil {
			presenter.Info(fmt.Sprintf("  Size: %.1f KB", float64(info.Size())/1024))
		}
		fmt.Println(archivePath)
	},
}

func init() {
	packageCmd.Flags().StringP("output-dir", "o", "", "Directory to write the archive into (default: current directory)")
}

func getPackageConfigFromFlags(cmd *cobra.Command, args []string) *PackageConfig {
	config := NewPackageConfig()
	if len(args) > 1 {
		config.OutputDir = args[1]
	}
	if outputDir, err := cmd.Flags().GetString("output-dir"); err == nil && outputDir != "" {
		config.OutputDir = outputDir
	}
	return config
}

// runPackaging chains parse, validate, and package. It prints the failing
// report when validation is the cause; errors are already presented by the
// time it returns.
func runPackaging(ctx context.Context, skillDir, outputDir string) (string, error) {
	var archivePath string

	err := telemetry.WithSpan(ctx, "skill.package", func(ctx context.Context) error {
		def, err := skill.Load(skillDir)
		if err != nil {
			presenter.Error(err, "Failed to parse skill definition")
			return err
		}

		manifest, err := skill.ScanResources(skillDir)
		if err != nil {
			presenter.Error(err, "Failed to scan skill resources")
			return err
		}

		report, err := validator.Validate(def, manifest)
		if err != nil {
			presenter.Error(err, "Validation could not run")
			return err
		}
		telemetry.AddEvent(ctx, "validation.finished",
			attribute.Int("error.count", len(report.Errors)),
			attribute.Int("warning.count", len(report.Warnings)))

		printReport(report)
		if !report.IsValid() {
			presenter.Info("Packaging aborted due to validation errors.")
		}

		archivePath, err = packager.Package(def, report, outputDir)
		if err != nil {
			if pkgErr, ok := err.(*packager.PackageError); !ok || pkgErr.Code != packager.CodeValidationFailed {
				presenter.Error(err, "Packaging failed")
			}
			return err
		}

		telemetry.AddEvent(ctx, "archive.written")
		telemetry.SetAttributes(ctx, attribute.String("skill.archive", archivePath))
		return nil
	}, attribute.String("skill.dir", skillDir))

	return archivePath, err
}
