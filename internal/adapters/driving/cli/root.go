// Package cli provides the cobra command tree for wfmodels.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/wfmodels/internal/core/ports/driven"
	"github.com/custodia-labs/wfmodels/internal/core/ports/driving"
	"github.com/custodia-labs/wfmodels/internal/logger"
)

// stdinArg names standard input in place of a file path.
const stdinArg = "-"

// ErrNoStdin is returned when "-" is given but nothing is piped in.
var ErrNoStdin = errors.New("no input piped on stdin")

// version is set at build time.
var version = "dev"

// Services holds the core services the commands drive.
type Services struct {
	Editor   driving.EditorService
	Rules    driving.RuleService
	Export   driving.ExportService
	Settings driving.SettingsService

	// Watcher backs edit --watch. Optional.
	Watcher driven.FileWatcher

	// NewEditor creates independent editor sessions for the MCP server.
	NewEditor func() driving.EditorService

	// Links converts link sources before matching. Optional.
	Links driven.LinkNormaliser
}

// Options are the global flags handed to the bootstrap function.
type Options struct {
	ConfigDir string
	Verbose   bool
}

// Bootstrap builds the services once global flags are parsed.
type Bootstrap func(opts Options) (*Services, error)

var (
	editorService   driving.EditorService
	ruleService     driving.RuleService
	exportService   driving.ExportService
	settingsService driving.SettingsService
	fileWatcher     driven.FileWatcher
	newEditor       func() driving.EditorService
	linkNormaliser  driven.LinkNormaliser

	bootstrap Bootstrap

	verbose   bool
	configDir string
)

// stdinIsTerminal reports whether stdin is an interactive terminal.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var rootCmd = &cobra.Command{
	Use:   "wfmodels [FILE]",
	Short: "Edit the model entries of node-graph workflows",
	Long: `wfmodels finds the model loader nodes of a workflow JSON document,
reconciles their properties.models entries (name, url, directory) with the
files the node loads, validates them and writes the canonical document back.

Run with an optional FILE, or use "edit", to open the interactive editor.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if bootstrap == nil {
			return nil
		}
		services, err := bootstrap(Options{ConfigDir: configDir, Verbose: verbose})
		if err != nil {
			return fmt.Errorf("initialising: %w", err)
		}
		SetServices(services)
		return nil
	},
	RunE: runEdit,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print diagnostic output to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.wfmodels)")
}

// SetBootstrap registers the function that builds services.
func SetBootstrap(fn Bootstrap) {
	bootstrap = fn
}

// SetServices injects the services directly.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	editorService = s.Editor
	ruleService = s.Rules
	exportService = s.Export
	settingsService = s.Settings
	fileWatcher = s.Watcher
	newEditor = s.NewEditor
	linkNormaliser = s.Links
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
// Reports go to stdout so they can be piped; notices stay on stderr.
func Execute() error {
	defer logger.Sync()
	rootCmd.SetOut(os.Stdout)
	return rootCmd.Execute()
}

func requireEditor() error {
	if editorService == nil || exportService == nil {
		return errors.New("editor service not configured")
	}
	return nil
}

// readInput reads a file, or stdin for "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	if path != stdinArg {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		return string(data), nil
	}
	if stdinIsTerminal() {
		return "", ErrNoStdin
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// loadDocument opens path into the editor. Files go through the export
// service so their base name is remembered.
func loadDocument(cmd *cobra.Command, path string) error {
	if path != stdinArg {
		if err := exportService.Open(path); err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		logger.Debug("opened %s", path)
		return nil
	}
	text, err := readInput(cmd, path)
	if err != nil {
		return err
	}
	if err := editorService.Load(text); err != nil {
		return fmt.Errorf("load stdin: %w", err)
	}
	return nil
}

// outputFlags are shared by commands that produce a document.
type outputFlags struct {
	outDir string
	name   string
	copy   bool
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.outDir, "out", "o", "", "write the document into this directory")
	cmd.Flags().StringVarP(&o.name, "name", "n", "", "base name of the written file")
	cmd.Flags().BoolVar(&o.copy, "copy", false, "copy the document to the clipboard")
}

func (o *outputFlags) reset() {
	*o = outputFlags{}
}

// writeOutput saves, copies or prints the current document text.
func (o *outputFlags) writeOutput(cmd *cobra.Command) error {
	if o.name != "" {
		exportService.SetBaseName(strings.TrimSuffix(filepath.Base(o.name), ".json"))
	}

	wrote := false
	if o.outDir != "" {
		path, err := exportService.Save(o.outDir)
		if err != nil {
			return fmt.Errorf("save: %w", err)
		}
		cmd.PrintErrf("Saved %s\n", path)
		wrote = true
	}
	if o.copy {
		if err := exportService.Copy(); err != nil {
			return fmt.Errorf("copy: %w", err)
		}
		cmd.PrintErrln("Copied to clipboard")
		wrote = true
	}
	if !wrote {
		fmt.Fprintln(cmd.OutOrStdout(), editorService.Text())
	}
	return nil
}
