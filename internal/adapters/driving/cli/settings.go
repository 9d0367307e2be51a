package cli

import (
	"bufio"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wfmodels/internal/core/domain"
	"github.com/custodia-labs/wfmodels/internal/core/services"
)

// Setting names accepted by "settings set".
const (
	settingAutoUpdate  = "auto_update"
	settingDefaultName = "default_name"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure editor defaults and the export file name.

Use subcommands to change a single setting or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change a setting",
	Long: `Change a single setting.

Available keys:
  auto_update   - true/false: write entry edits back to the JSON immediately
  default_name  - base name used when saving a workflow that has none`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Editor]")
	cmd.Printf("  Auto update: %s\n", onOff(settings.Editor.AutoUpdate))
	cmd.Println()

	cmd.Println("[Export]")
	cmd.Printf("  Default name: %s\n", services.ExportFileName(settings.Export.DefaultName))
	cmd.Println()

	cmd.Println("[Directory Rules]")
	if len(settings.DirectoryRules) == 0 {
		cmd.Println("  No overrides (built-in table)")
	} else {
		types := make([]string, 0, len(settings.DirectoryRules))
		for t := range settings.DirectoryRules {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			dir := settings.DirectoryRules[t]
			if dir == "" {
				dir = "(removed)"
			}
			cmd.Printf("  %s: %s\n", t, dir)
		}
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	switch key {
	case settingAutoUpdate:
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: auto_update must be true or false", domain.ErrInvalidInput)
		}
		if err := settingsService.SetAutoUpdate(enabled); err != nil {
			return fmt.Errorf("failed to set auto_update: %w", err)
		}
		cmd.Printf("Set auto update to: %s\n", onOff(enabled))

	case settingDefaultName:
		if err := settingsService.SetDefaultName(value); err != nil {
			return fmt.Errorf("failed to set default_name: %w", err)
		}
		cmd.Printf("Set default name to: %s\n", services.ExportFileName(strings.TrimSuffix(value, ".json")))

	default:
		return fmt.Errorf("%w: unknown setting %q (use %s or %s)",
			domain.ErrInvalidInput, key, settingAutoUpdate, settingDefaultName)
	}
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	current, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("wfmodels Settings Wizard")
	cmd.Println("========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Auto update
	cmd.Println("Step 1: Auto Update")
	cmd.Println("-------------------")
	cmd.Println("  1. On  - edits are written to the JSON immediately")
	cmd.Println("  2. Off - edits are written when you press u")
	defaultChoice := 1
	if !current.Editor.AutoUpdate {
		defaultChoice = 2
	}
	cmd.Printf("\nEnter choice [%d]: ", defaultChoice)
	enabled := parseChoice(readLine(reader), 2, defaultChoice) == 1

	if err := settingsService.SetAutoUpdate(enabled); err != nil {
		return fmt.Errorf("failed to set auto update: %w", err)
	}
	cmd.Printf("Set auto update to: %s\n\n", onOff(enabled))

	// Step 2: Default name
	cmd.Println("Step 2: Default Export Name")
	cmd.Println("---------------------------")
	cmd.Printf("Enter name [%s]: ", current.Export.DefaultName)
	name := readLine(reader)
	if name == "" {
		name = current.Export.DefaultName
	}
	if err := settingsService.SetDefaultName(name); err != nil {
		return fmt.Errorf("failed to set default name: %w", err)
	}
	cmd.Printf("Set default name to: %s\n\n", services.ExportFileName(strings.TrimSuffix(name, ".json")))

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	return nil
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
