package corpuscmd

import (
	"context"
	"errors"

	"github.com/contentkit/go-corpus/internal/commands"
	"github.com/contentkit/go-corpus/internal/logging"
	"github.com/contentkit/go-corpus/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	importOperation = "markdown.import_directory"
	syncOperation   = "markdown.sync_directory"
	lintOperation   = "markdown.lint_directory"
)

var (
	// ErrImportFeatureDisabled is returned when the import feature flag is disabled at runtime.
	ErrImportFeatureDisabled = errors.New("corpus command: import disabled")
	// ErrLintFeatureDisabled is returned when the lint feature flag is disabled at runtime.
	ErrLintFeatureDisabled = errors.New("corpus command: lint disabled")
	// ErrLintThresholdExceeded is returned when a lint run produces findings at
	// or above the configured failure threshold.
	ErrLintThresholdExceeded = errors.New("corpus command: lint findings exceed threshold")
)

var (
	_ command.Commander[ImportDirectoryCommand] = (*ImportDirectoryHandler)(nil)
	_ command.Commander[SyncDirectoryCommand]   = (*SyncDirectoryHandler)(nil)
	_ command.Commander[LintDirectoryCommand]   = (*LintDirectoryHandler)(nil)
)

// LintRunner is the slice of the lint engine the lint handler depends on.
type LintRunner interface {
	Run(ctx context.Context, docs []*interfaces.Document) (*interfaces.LintReport, error)
}

// ImportDirectoryHandler orchestrates Markdown directory imports via the
// shared command handler foundation.
type ImportDirectoryHandler struct {
	inner *commands.Handler[ImportDirectoryCommand]
}

// NewImportDirectoryHandler creates a handler bound to the supplied Markdown service.
func NewImportDirectoryHandler(service interfaces.MarkdownService, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[ImportDirectoryCommand]) *ImportDirectoryHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ImportDirectoryCommand) error {
		if !gates.importEnabled() {
			return ErrImportFeatureDisabled
		}

		result, err := service.ImportDirectory(ctx, msg.Directory, interfaces.ImportOptions{DryRun: msg.DryRun, Pattern: msg.Pattern})
		if err != nil {
			return err
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"created_count":   len(result.CreatedArticleIDs),
				"updated_count":   len(result.UpdatedArticleIDs),
				"skipped_count":   len(result.SkippedArticleIDs),
				"duplicate_count": len(result.DuplicateURLs),
				"error_count":     len(result.Errors),
				"dry_run":         msg.DryRun,
			}).Info("corpus.command.import_directory.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportDirectoryCommand]{
		commands.WithLogger[ImportDirectoryCommand](baseLogger),
		commands.WithOperation[ImportDirectoryCommand](importOperation),
		commands.WithMessageFields(func(msg ImportDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ImportDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportDirectoryCommand].
func (h *ImportDirectoryHandler) Execute(ctx context.Context, msg ImportDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// SyncDirectoryHandler orchestrates sync workflows via the shared command
// handler foundation.
type SyncDirectoryHandler struct {
	inner *commands.Handler[SyncDirectoryCommand]
}

// NewSyncDirectoryHandler creates a handler bound to the supplied Markdown service.
func NewSyncDirectoryHandler(service interfaces.MarkdownService, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[SyncDirectoryCommand]) *SyncDirectoryHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg SyncDirectoryCommand) error {
		if !gates.importEnabled() {
			return ErrImportFeatureDisabled
		}

		syncOpts := interfaces.SyncOptions{
			ImportOptions:  interfaces.ImportOptions{DryRun: msg.DryRun, Pattern: msg.Pattern},
			DeleteOrphaned: msg.DeleteOrphaned,
		}

		result, err := service.Sync(ctx, msg.Directory, syncOpts)
		if err != nil {
			return err
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"created_count":   result.Created,
				"updated_count":   result.Updated,
				"deleted_count":   result.Deleted,
				"skipped_count":   result.Skipped,
				"duplicate_count": len(result.DuplicateURLs),
				"error_count":     len(result.Errors),
				"dry_run":         msg.DryRun,
				"delete_orphans":  msg.DeleteOrphaned,
			}).Info("corpus.command.sync_directory.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[SyncDirectoryCommand]{
		commands.WithLogger[SyncDirectoryCommand](baseLogger),
		commands.WithOperation[SyncDirectoryCommand](syncOperation),
		commands.WithMessageFields(func(msg SyncDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			if msg.DeleteOrphaned {
				fields["delete_orphaned"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SyncDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SyncDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SyncDirectoryCommand].
func (h *SyncDirectoryHandler) Execute(ctx context.Context, msg SyncDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// LintDirectoryHandler loads a directory of articles and runs the corpus lint
// rules over them. The OnReport callback receives every completed report, so
// CLI frontends can print findings before the threshold verdict is applied.
type LintDirectoryHandler struct {
	inner *commands.Handler[LintDirectoryCommand]
}

// NewLintDirectoryHandler creates a handler bound to the supplied Markdown
// service and lint runner. onReport may be nil.
func NewLintDirectoryHandler(service interfaces.MarkdownService, linter LintRunner, logger interfaces.Logger, gates FeatureGates, onReport func(*interfaces.LintReport), opts ...commands.HandlerOption[LintDirectoryCommand]) *LintDirectoryHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg LintDirectoryCommand) error {
		if !gates.lintEnabled() {
			return ErrLintFeatureDisabled
		}

		docs, err := service.LoadDirectory(ctx, msg.Directory, interfaces.LoadOptions{Pattern: msg.Pattern})
		if err != nil {
			return err
		}

		report, err := linter.Run(ctx, docs)
		if err != nil {
			return err
		}
		if onReport != nil {
			onReport(report)
		}

		logging.WithFields(baseLogger, map[string]any{
			"files":    report.Files,
			"errors":   report.Errors,
			"warnings": report.Warnings,
			"infos":    report.Infos,
			"fail_on":  string(msg.Threshold()),
		}).Info("corpus.command.lint_directory.completed")

		if report.Failed(msg.Threshold()) {
			return ErrLintThresholdExceeded
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[LintDirectoryCommand]{
		commands.WithLogger[LintDirectoryCommand](baseLogger),
		commands.WithOperation[LintDirectoryCommand](lintOperation),
		commands.WithMessageFields(func(msg LintDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
				"fail_on":   string(msg.Threshold()),
			}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[LintDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &LintDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[LintDirectoryCommand].
func (h *LintDirectoryHandler) Execute(ctx context.Context, msg LintDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}
