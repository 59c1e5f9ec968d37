package bootstrap

import (
	"fmt"
	"strings"

	corpus "github.com/contentkit/go-corpus"
	"github.com/contentkit/go-corpus/internal/di"
	"github.com/contentkit/go-corpus/internal/logging"
	"github.com/contentkit/go-corpus/pkg/interfaces"
)

// Options captures configuration for corpus CLI bootstraps.
type Options struct {
	ContentDir     string
	Pattern        string
	Recursive      bool
	Driver         string
	DSN            string
	WithIndex      bool
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the corpus module and the services the CLIs operate on.
type Module struct {
	Module  *corpus.Module
	Service interfaces.MarkdownService
	Linter  *corpus.LintEngine
	Logger  interfaces.Logger
}

// BuildModule constructs a corpus module configured for CLI operations.
func BuildModule(opts Options) (*Module, error) {
	cfg := corpus.DefaultConfig()
	cfg.Markdown.ContentDir = strings.TrimSpace(opts.ContentDir)
	if cfg.Markdown.ContentDir == "" {
		cfg.Markdown.ContentDir = "content"
	}
	if trimmed := strings.TrimSpace(opts.Pattern); trimmed != "" {
		cfg.Markdown.Pattern = trimmed
	}
	cfg.Markdown.Recursive = opts.Recursive

	cfg.Features.Import = opts.WithIndex
	if trimmed := strings.TrimSpace(opts.Driver); trimmed != "" {
		cfg.Storage.Driver = trimmed
	}
	if trimmed := strings.TrimSpace(opts.DSN); trimmed != "" {
		cfg.Storage.DSN = trimmed
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := corpus.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise corpus module: %w", err)
	}

	service := module.Markdown()
	if service == nil {
		return nil, fmt.Errorf("markdown service not configured")
	}

	logger := logging.MarkdownLogger(module.Container().LoggerProvider())

	return &Module{
		Module:  module,
		Service: service,
		Linter:  module.Linter(),
		Logger:  logger,
	}, nil
}

// ParseSeverity maps a CLI threshold flag onto a lint severity.
func ParseSeverity(value string) (interfaces.Severity, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "error":
		return interfaces.SeverityError, nil
	case "warning", "warn":
		return interfaces.SeverityWarning, nil
	case "info":
		return interfaces.SeverityInfo, nil
	default:
		return "", fmt.Errorf("unknown severity %q (expected error, warning, or info)", value)
	}
}
