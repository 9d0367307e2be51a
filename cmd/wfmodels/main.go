// Command wfmodels edits the model entries of node-graph workflow documents.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/wfmodels/internal/adapters/driven/clipboard"
	"github.com/custodia-labs/wfmodels/internal/adapters/driven/codec/ojson"
	"github.com/custodia-labs/wfmodels/internal/adapters/driven/config/file"
	"github.com/custodia-labs/wfmodels/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/wfmodels/internal/adapters/driven/watch"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/cli"
	"github.com/custodia-labs/wfmodels/internal/core/ports/driving"
	"github.com/custodia-labs/wfmodels/internal/core/services"
	"github.com/custodia-labs/wfmodels/internal/logger"
	"github.com/custodia-labs/wfmodels/internal/normalisers"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// bootstrap wires adapters into services once global flags are known.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	logger.Section("bootstrap")

	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}

	ruleService := services.NewRuleService(memory.NewRuleStore(), configStore)
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	logger.Debug("auto update %t, default name %q, %d rules",
		settings.Editor.AutoUpdate, settings.Export.DefaultName, len(ruleService.List()))

	codec := ojson.NewCodec()
	editorService := services.NewEditorService(codec, ruleService, settings.Editor.AutoUpdate)
	exportService := services.NewExportService(
		editorService,
		file.NewFileStore(),
		clipboard.New(),
		settings.Export.DefaultName,
	)

	// MCP requests each get a session that writes edits back immediately.
	newEditor := func() driving.EditorService {
		return services.NewEditorService(codec, ruleService, true)
	}

	return &cli.Services{
		Editor:    editorService,
		Rules:     ruleService,
		Export:    exportService,
		Settings:  settingsService,
		Watcher:   watch.New(0),
		NewEditor: newEditor,
		Links:     normalisers.Default(),
	}, nil
}
