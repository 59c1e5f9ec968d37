package commands

import (
	"strings"

	"github.com/contentkit/go-corpus/internal/logging"
	"github.com/contentkit/go-corpus/pkg/interfaces"
)

const commandModuleRoot = "corpus.commands"

// CommandLogger returns a module-scoped logger for command handlers, enriched
// with consistent structured fields so executions line up across modules.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
