package corpuscmd

import (
	"context"
	"errors"

	"github.com/contentkit/go-corpus/internal/commands"
	"github.com/contentkit/go-corpus/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// HandlerSet groups the corpus command handlers produced by RegisterCorpusCommands.
type HandlerSet struct {
	Import *ImportDirectoryHandler
	Sync   *SyncDirectoryHandler
	Lint   *LintDirectoryHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	importHandlerOpts []commands.HandlerOption[ImportDirectoryCommand]
	syncHandlerOpts   []commands.HandlerOption[SyncDirectoryCommand]
	lintHandlerOpts   []commands.HandlerOption[LintDirectoryCommand]
	onReport          func(*interfaces.LintReport)
}

// WithImportHandlerOptions forwards options to the ImportDirectoryHandler constructor.
func WithImportHandlerOptions(opts ...commands.HandlerOption[ImportDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.importHandlerOpts = append(cfg.importHandlerOpts, opts...)
	}
}

// WithSyncHandlerOptions forwards options to the SyncDirectoryHandler constructor.
func WithSyncHandlerOptions(opts ...commands.HandlerOption[SyncDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.syncHandlerOpts = append(cfg.syncHandlerOpts, opts...)
	}
}

// WithLintHandlerOptions forwards options to the LintDirectoryHandler constructor.
func WithLintHandlerOptions(opts ...commands.HandlerOption[LintDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.lintHandlerOpts = append(cfg.lintHandlerOpts, opts...)
	}
}

// WithReportCallback registers a callback invoked with every completed lint report.
func WithReportCallback(fn func(*interfaces.LintReport)) Option {
	return func(cfg *options) {
		cfg.onReport = fn
	}
}

// RegisterCorpusCommands builds the corpus command handlers and registers them
// with the provided registry. A HandlerSet containing the constructed handlers
// is returned so callers can wire additional integrations (dispatcher, cron).
func RegisterCorpusCommands(reg CommandRegistry, service interfaces.MarkdownService, linter LintRunner, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("corpus command registration: service is nil")
	}
	if linter == nil {
		return nil, errors.New("corpus command registration: lint runner is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "markdown")

	importHandler := NewImportDirectoryHandler(service, logger, gates, cfg.importHandlerOpts...)
	syncHandler := NewSyncDirectoryHandler(service, logger, gates, cfg.syncHandlerOpts...)
	lintHandler := NewLintDirectoryHandler(service, linter, logger, gates, cfg.onReport, cfg.lintHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(importHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(syncHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(lintHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		Import: importHandler,
		Sync:   syncHandler,
		Lint:   lintHandler,
	}, nil
}

// RegisterSyncCron wires the provided sync handler into a cron registrar using
// the supplied command configuration and message payload. The handler executes
// with a background context.
func RegisterSyncCron(reg CronRegistrar, handler *SyncDirectoryHandler, cfg command.HandlerConfig, msg SyncDirectoryCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
