package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/contentkit/go-corpus/cmd/corpus/internal/bootstrap"
	corpuscmd "github.com/contentkit/go-corpus/internal/commands/corpus"
	"github.com/contentkit/go-corpus/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	code, err := runLint(os.Args[1:])
	if err != nil {
		log.Fatalf("corpus lint: %v", err)
	}
	os.Exit(code)
}

func runLint(args []string) (int, error) {
	fs := flag.NewFlagSet("corpus-lint", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	directory := fs.String("directory", ".", "Directory to lint, relative to the content root")
	failOn := fs.String("fail-on", "error", "Severity threshold that fails the run (error, warning, info)")

	if err := fs.Parse(args); err != nil {
		return 1, err
	}

	threshold, err := bootstrap.ParseSeverity(*failOn)
	if err != nil {
		return 1, err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir: *contentDir,
		Pattern:    *pattern,
		Recursive:  true,
		WithIndex:  false,
	})
	if err != nil {
		return 1, fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Module.Close()

	if module.Linter == nil {
		return 1, fmt.Errorf("lint engine not configured; ensure Features.Lint is enabled")
	}

	handler := corpuscmd.NewLintDirectoryHandler(module.Service, module.Linter, module.Logger, corpuscmd.FeatureGates{}, printReport)

	cmd := corpuscmd.LintDirectoryCommand{
		Directory: *directory,
		FailOn:    threshold,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		if errors.Is(err, corpuscmd.ErrLintThresholdExceeded) {
			return 1, nil
		}
		return 1, fmt.Errorf("execute lint command: %w", err)
	}
	return 0, nil
}

func printReport(report *interfaces.LintReport) {
	for _, issue := range report.Issues {
		if issue.Line > 0 {
			fmt.Fprintf(os.Stdout, "%s:%d: %s: %s (%s)\n", issue.Path, issue.Line, issue.Severity, issue.Message, issue.Rule)
			continue
		}
		fmt.Fprintf(os.Stdout, "%s: %s: %s (%s)\n", issue.Path, issue.Severity, issue.Message, issue.Rule)
	}
	fmt.Fprintf(os.Stdout, "%d files checked: %d errors, %d warnings, %d infos\n",
		report.Files, report.Errors, report.Warnings, report.Infos)
}
