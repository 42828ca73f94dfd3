package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/skillforge/skillforge/pkg/logger"
	"github.com/skillforge/skillforge/pkg/presenter"
	"github.com/skillforge/skillforge/pkg/skill"
	"github.com/skillforge/skillforge/pkg/telemetry"
	"github.com/skillforge/skillforge/pkg/validator"
)

// ValidateConfig holds configuration for the validate command
type ValidateConfig struct {
	Watch        bool
	DebounceTime int
}

// NewValidateConfig creates a new ValidateConfig with default values
func NewValidateConfig() *ValidateConfig {
	return &ValidateConfig{
		Watch:        false,
		DebounceTime: 500,
	}
}

var validateCmd = &cobra.Command{
	Use:   "validate <skill-dir>",
	Short: "Validate a skill directory",
	Long: `Run the frontmatter parser and structural validator against a skill
directory and print the resulting report, errors first, then warnings.
Exits 0 when the report contains no errors.

With --watch the directory is re-validated whenever its contents change,
until interrupted.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := getValidateConfigFromFlags(cmd)
		skillDir := args[0]

		if config.Watch {
			watchAndValidate(cmd.Context(), skillDir, config)
			return
		}

		report, err := runValidation(cmd.Context(), skillDir)
		if err != nil {
			presenter.Error(err, "Validation could not run")
			os.Exit(1)
		}

		printReport(report)
		if !report.IsValid() {
			os.Exit(1)
		}
	},
}

func init() {
	defaults := NewValidateConfig()
	validateCmd.Flags().BoolP("watch", "w", defaults.Watch, "Re-validate whenever the skill directory changes")
	validateCmd.Flags().Int("debounce", defaults.DebounceTime, "Debounce time in milliseconds for watch mode")
}

func getValidateConfigFromFlags(cmd *cobra.Command) *ValidateConfig {
	config := NewValidateConfig()
	if watch, err := cmd.Flags().GetBool("watch"); err == nil {
		config.Watch = watch
	}
	if debounce, err := cmd.Flags().GetInt("debounce"); err == nil && debounce >= 0 {
		config.DebounceTime = debounce
	}
	return config
}

// runValidation executes the parse and validate stages for one skill
// directory. The definition is always re-read from disk; nothing is cached
// between runs.
func runValidation(ctx context.Context, skillDir string) (*validator.Report, error) {
	var report *validator.Report

	err := telemetry.WithSpan(ctx, "skill.validate", func(ctx context.Context) error {
		def, err := skill.Load(skillDir)
		if err != nil {
			return err
		}

		telemetry.AddEvent(ctx, "definition.parsed", attribute.String("skill.name", def.Name))

		manifest, err := skill.ScanResources(skillDir)
		if err != nil {
			return err
		}
		telemetry.AddEvent(ctx, "resources.scanned", attribute.Int("resource.count", len(manifest.All())))

		logger.G(ctx).WithField("skill", def.Name).Debug("Validating skill directory")

		report, err = validator.Validate(def, manifest)
		return err
	}, attribute.String("skill.dir", skillDir))
	if err != nil {
		return nil, err
	}

	return report, nil
}

func printReport(report *validator.Report) {
	for _, finding := range report.Errors {
		presenter.Error(errors.New(finding.Message), finding.Code)
	}
	for _, finding := range report.Warnings {
		presenter.Warning(fmt.Sprintf("[%s] %s", finding.Code, finding.Message))
	}

	switch {
	case !report.IsValid():
		presenter.Info(fmt.Sprintf("Validation failed: %d error(s), %d warning(s)", len(report.Errors), len(report.Warnings)))
	case len(report.Warnings) > 0:
		presenter.Success(fmt.Sprintf("Validation passed with %d warning(s)", len(report.Warnings)))
	default:
		presenter.Success("Validation passed")
	}
}

// watchAndValidate re-runs validation on every change under the skill
// directory, debounced, until the context is cancelled or a signal arrives.
func watchAndValidate(ctx context.Context, skillDir string, config *ValidateConfig) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		presenter.Warning("Cancellation requested, shutting down...")
		cancel()
	}()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		presenter.Error(err, "Failed to create file watcher")
		os.Exit(1)
	}
	defer watcher.Close()

	if err := watchRecursive(watcher, skillDir); err != nil {
		presenter.Error(err, "Failed to watch skill directory")
		os.Exit(1)
	}

	validateOnce := func() {
		report, err := runValidation(ctx, skillDir)
		if err != nil {
			presenter.Error(err, "Validation could not run")
			return
		}
		printReport(report)
	}

	presenter.Info(fmt.Sprintf("Watching %s for changes (Ctrl-C to stop)", skillDir))
	validateOnce()

	debounce := time.Duration(config.DebounceTime) * time.Millisecond
	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watchRecursive(watcher, event.Name)
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.G(ctx).WithError(err).Warn("File watcher error")
		case <-pending:
			presenter.Separator()
			validateOnce()
		}
	}
}

func watchRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
