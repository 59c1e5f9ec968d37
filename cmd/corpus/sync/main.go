package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/contentkit/go-corpus/cmd/corpus/internal/bootstrap"
	corpuscmd "github.com/contentkit/go-corpus/internal/commands/corpus"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runSync(os.Args[1:]); err != nil {
		log.Fatalf("corpus sync: %v", err)
	}
}

func runSync(args []string) error {
	fs := flag.NewFlagSet("corpus-sync", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	directory := fs.String("directory", ".", "Directory to sync, relative to the content root")
	driver := fs.String("driver", "sqlite", "Article index driver (sqlite or postgres)")
	dsn := fs.String("dsn", "", "Article index DSN (defaults to a local sqlite file)")
	dryRun := fs.Bool("dry-run", false, "Preview changes without persisting articles")
	deleteOrphaned := fs.Bool("delete-orphaned", false, "Delete indexed articles whose source files disappeared")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir: *contentDir,
		Pattern:    *pattern,
		Recursive:  true,
		Driver:     *driver,
		DSN:        *dsn,
		WithIndex:  true,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Module.Close()

	handler := corpuscmd.NewSyncDirectoryHandler(module.Service, module.Logger, corpuscmd.FeatureGates{})
	cmd := corpuscmd.SyncDirectoryCommand{
		Directory:      *directory,
		DryRun:         *dryRun,
		DeleteOrphaned: *deleteOrphaned,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute sync command: %w", err)
	}
	fmt.Fprintln(os.Stdout, "corpus sync command executed successfully")
	return nil
}
