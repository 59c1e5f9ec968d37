package corpus

import "github.com/contentkit/go-corpus/internal/runtimeconfig"

var (
	ErrContentDirRequired         = runtimeconfig.ErrContentDirRequired
	ErrStorageDriverUnknown       = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired         = runtimeconfig.ErrStorageDSNRequired
	ErrLintFailOnInvalid          = runtimeconfig.ErrLintFailOnInvalid
	ErrLintWorkersInvalid         = runtimeconfig.ErrLintWorkersInvalid
	ErrCommandsCronRequiresImport = runtimeconfig.ErrCommandsCronRequiresImport
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config               = runtimeconfig.Config
	MarkdownConfig       = runtimeconfig.MarkdownConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	LintConfig           = runtimeconfig.LintConfig
	StorageConfig        = runtimeconfig.StorageConfig
	CacheConfig          = runtimeconfig.CacheConfig
	CommandsConfig       = runtimeconfig.CommandsConfig
	LoggingConfig        = runtimeconfig.LoggingConfig
	Features             = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
