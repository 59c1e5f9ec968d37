package corpuscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/contentkit/go-corpus/pkg/interfaces"
)

const (
	importDirectoryMessageType = "corpus.markdown.import_directory"
	syncDirectoryMessageType   = "corpus.markdown.sync_directory"
	lintDirectoryMessageType   = "corpus.markdown.lint_directory"
)

// ImportDirectoryCommand triggers a filesystem walk for Markdown articles
// under the provided Directory, writing each document to the article index.
type ImportDirectoryCommand struct {
	// Directory selects the filesystem path (relative or absolute) to load Markdown files from.
	Directory string `json:"directory"`
	// Pattern overrides the default *.md filename glob.
	Pattern string `json:"pattern,omitempty"`
	// DryRun toggles preview mode to collect the import outcome without persisting changes.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ImportDirectoryCommand) Type() string { return importDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ImportDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(requireNonBlank("corpus.markdown.import_directory.directory_required"))),
	)
}

// SyncDirectoryCommand orchestrates a sync run for the provided Directory,
// reconciling the article index against the files on disk.
type SyncDirectoryCommand struct {
	// Directory selects the filesystem path (relative or absolute) to load Markdown files from.
	Directory string `json:"directory"`
	// Pattern overrides the default *.md filename glob.
	Pattern string `json:"pattern,omitempty"`
	// DryRun toggles preview mode to collect the sync outcome without persisting changes.
	DryRun bool `json:"dry_run,omitempty"`
	// DeleteOrphaned removes index records without a matching Markdown file when true.
	DeleteOrphaned bool `json:"delete_orphaned,omitempty"`
}

// Type implements command.Message.
func (SyncDirectoryCommand) Type() string { return syncDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd SyncDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(requireNonBlank("corpus.markdown.sync_directory.directory_required"))),
	)
}

// LintDirectoryCommand runs the corpus lint rules over every Markdown file
// under the provided Directory.
type LintDirectoryCommand struct {
	// Directory selects the filesystem path (relative or absolute) to load Markdown files from.
	Directory string `json:"directory"`
	// Pattern overrides the default *.md filename glob.
	Pattern string `json:"pattern,omitempty"`
	// FailOn sets the severity threshold that marks the run as failed.
	// Defaults to error when empty.
	FailOn interfaces.Severity `json:"fail_on,omitempty"`
}

// Type implements command.Message.
func (LintDirectoryCommand) Type() string { return lintDirectoryMessageType }

// Validate ensures directory input is present and the threshold is a known
// severity before handlers execute.
func (cmd LintDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(requireNonBlank("corpus.markdown.lint_directory.directory_required"))),
		validation.Field(&cmd.FailOn, validation.By(func(value any) error {
			severity := value.(interfaces.Severity)
			if severity == "" || severity.Valid() {
				return nil
			}
			return validation.NewError("corpus.markdown.lint_directory.fail_on_invalid", "fail_on must be error, warning, or info")
		})),
	)
}

// Threshold resolves the effective failure threshold for the run.
func (cmd LintDirectoryCommand) Threshold() interfaces.Severity {
	if cmd.FailOn == "" {
		return interfaces.SeverityError
	}
	return cmd.FailOn
}

func requireNonBlank(code string) func(any) error {
	return func(value any) error {
		if strings.TrimSpace(value.(string)) == "" {
			return validation.NewError(code, "directory is required")
		}
		return nil
	}
}
