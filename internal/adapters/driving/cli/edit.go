package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui"
)

var (
	editWatch  bool
	editOutDir string
)

// editCmd represents the edit command.
var editCmd = &cobra.Command{
	Use:   "edit [FILE]",
	Short: "Launch the interactive editor",
	Long: `Launch the interactive terminal editor for workflow model entries.

The editor lists every model loader node with its model paths and entries,
lets you edit names, URLs and directories in place, fills URLs from pasted
links, and saves or copies the resulting JSON.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Edit / Select
  Tab      - Next field
  Esc      - Back / Cancel
  ?        - Help
  ctrl+c   - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	for _, c := range []*cobra.Command{editCmd, rootCmd} {
		c.Flags().BoolVarP(&editWatch, "watch", "w", false, "reload FILE when it changes on disk")
		c.Flags().StringVarP(&editOutDir, "out", "o", ".", "directory saves are written to")
	}
	rootCmd.AddCommand(editCmd)
}

// newEditApp builds the TUI for the given arguments.
func newEditApp(args []string) (*tui.App, error) {
	if err := requireEditor(); err != nil {
		return nil, err
	}

	path := ""
	if len(args) > 0 {
		path = args[0]
		if err := exportService.Open(path); err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
	}
	if editWatch && path == "" {
		return nil, fmt.Errorf("--watch needs a FILE")
	}

	ports := tui.NewPorts(editorService, ruleService, exportService, settingsService)
	ports.Watcher = fileWatcher

	app, err := tui.NewApp(ports)
	if err != nil {
		return nil, fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithOutputDir(editOutDir)
	if editWatch {
		app.WithWatch(path)
	}
	return app, nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := newEditApp(args)
	if err != nil {
		return err
	}
	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
