package logging

import (
	"context"
	"strings"

	"github.com/contentkit/go-corpus/pkg/interfaces"
)

const (
	rootModule     = "corpus"
	markdownModule = "corpus.markdown"
	lintModule     = "corpus.lint"
	articlesModule = "corpus.articles"
)

const (
	fieldArticlePath = "article_path"
	fieldArticleURL  = "url"
	fieldSyncAction  = "sync_action"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// MarkdownLogger returns the logger namespace reserved for markdown workflows.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// LintLogger returns the logger namespace reserved for the lint engine.
func LintLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, lintModule)
}

// ArticlesLogger returns the logger namespace reserved for the article index.
func ArticlesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, articlesModule)
}

// WithArticleContext enriches the provided logger with common article fields
// such as source path, url, and sync action. Empty values are ignored.
func WithArticleContext(logger interfaces.Logger, path, url, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldArticlePath] = trimmed
	}
	if trimmed := strings.TrimSpace(url); trimmed != "" {
		fields[fieldArticleURL] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldSyncAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
