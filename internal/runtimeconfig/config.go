package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrContentDirRequired indicates the markdown content directory is missing.
var ErrContentDirRequired = errors.New("corpus config: markdown content directory is required")

// ErrStorageDriverUnknown indicates an unsupported storage driver.
var ErrStorageDriverUnknown = errors.New("corpus config: storage driver is invalid")

// ErrStorageDSNRequired indicates a missing storage DSN.
var ErrStorageDSNRequired = errors.New("corpus config: storage dsn is required")

// ErrLintFailOnInvalid indicates an unknown lint failure threshold.
var ErrLintFailOnInvalid = errors.New("corpus config: lint fail_on must be error, warning, or info")

// ErrLintWorkersInvalid indicates a negative lint worker count.
var ErrLintWorkersInvalid = errors.New("corpus config: lint workers must be zero or positive")

// ErrCommandsCronRequiresImport ensures cron sync wiring only runs when imports are enabled.
var ErrCommandsCronRequiresImport = errors.New("corpus config: sync cron auto-registration requires the import feature")

var ErrLoggingProviderRequired = errors.New("corpus config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("corpus config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("corpus config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("corpus config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the corpus module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled  bool
	Markdown MarkdownConfig
	Lint     LintConfig
	Storage  StorageConfig
	Cache    CacheConfig
	Commands CommandsConfig
	Logging  LoggingConfig
	Features Features
}

// MarkdownConfig captures filesystem and parser behaviour for article ingestion.
type MarkdownConfig struct {
	ContentDir string
	Pattern    string
	Recursive  bool
	Parser     MarkdownParserConfig
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// LintConfig captures corpus lint behaviour.
type LintConfig struct {
	// Workers bounds the lint fan-out; zero means one worker per CPU.
	Workers int
	// FailOn sets the default severity threshold for failing a run.
	FailOn string
	// FenceLanguages overrides the known code fence language set.
	FenceLanguages []string
}

// StorageConfig selects the database backing the article index.
type StorageConfig struct {
	Driver       string
	DSN          string
	MaxOpenConns int
}

// CacheConfig captures repository cache behaviour.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled                bool
	AutoRegisterDispatcher bool
	AutoRegisterCron       bool
	SyncCron               string
}

// Features toggles module functionality.
type Features struct {
	Import    bool
	Lint      bool
	Revisions bool
	Logger    bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for a local corpus checkout.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Markdown: MarkdownConfig{
			ContentDir: "content",
			Pattern:    "*.md",
			Recursive:  true,
		},
		Lint: LintConfig{
			FailOn: "error",
		},
		Storage: StorageConfig{
			Driver: "sqlite",
			DSN:    "file:corpus.db?_fk=1",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Commands: CommandsConfig{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Features: Features{
			Import:    true,
			Lint:      true,
			Revisions: true,
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Markdown.ContentDir) == "" {
		return ErrContentDirRequired
	}
	if cfg.Features.Import {
		driver := strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
		switch driver {
		case "sqlite", "postgres":
		default:
			return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Storage.Driver)
		}
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	}
	if cfg.Lint.Workers < 0 {
		return ErrLintWorkersInvalid
	}
	if failOn := strings.TrimSpace(cfg.Lint.FailOn); failOn != "" && !isSupportedSeverity(failOn) {
		return fmt.Errorf("%w: %s", ErrLintFailOnInvalid, failOn)
	}
	if cfg.Commands.AutoRegisterCron && !cfg.Features.Import {
		return ErrCommandsCronRequiresImport
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}

func isSupportedSeverity(severity string) bool {
	switch strings.ToLower(strings.TrimSpace(severity)) {
	case "error", "warning", "info":
		return true
	default:
		return false
	}
}
