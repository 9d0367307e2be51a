package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	rulesSave bool
	rulesJSON bool
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage the node type to directory rules",
	Long: `The directory rules map model loader node types to the folder their models
belong in. They decide which nodes are edited and pre-fill the directory of
new entries.

Changes last for the command unless --save writes them to the config file.`,
	RunE: runRulesList,
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List directory rules",
	RunE:  runRulesList,
}

var rulesSetCmd = &cobra.Command{
	Use:   "set TYPE DIRECTORY",
	Short: "Add or change a rule",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeRules(cmd, fmt.Sprintf("%s → %s", args[0], args[1]), func() error {
			return ruleService.Set(args[0], args[1])
		})
	},
}

var rulesRemoveCmd = &cobra.Command{
	Use:   "remove TYPE",
	Short: "Remove a rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeRules(cmd, "Removed "+args[0], func() error {
			return ruleService.Remove(args[0])
		})
	},
}

var rulesRenameCmd = &cobra.Command{
	Use:   "rename OLD NEW",
	Short: "Rename a rule's node type",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeRules(cmd, fmt.Sprintf("Renamed %s to %s", args[0], args[1]), func() error {
			return ruleService.Rename(args[0], args[1])
		})
	},
}

var rulesResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the built-in rules plus configured overrides",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return changeRules(cmd, "Rules reset", func() error {
			return ruleService.Reset()
		})
	},
}

func init() {
	rulesListCmd.Flags().BoolVar(&rulesJSON, "json", false, "output rules as JSON")
	for _, c := range []*cobra.Command{rulesSetCmd, rulesRemoveCmd, rulesRenameCmd, rulesResetCmd} {
		c.Flags().BoolVar(&rulesSave, "save", false, "write the resulting table to the config file")
		rulesCmd.AddCommand(c)
	}
	rulesCmd.AddCommand(rulesListCmd)
	rootCmd.AddCommand(rulesCmd)
}

func runRulesList(cmd *cobra.Command, _ []string) error {
	if ruleService == nil {
		return errors.New("rule service not configured")
	}

	rules := ruleService.List()
	if rulesJSON {
		data, err := json.MarshalIndent(rules, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal rules: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(rules) == 0 {
		cmd.Println("No directory rules.")
		return nil
	}
	width := 0
	for _, r := range rules {
		if len(r.NodeType) > width {
			width = len(r.NodeType)
		}
	}
	for _, r := range rules {
		cmd.Printf("  %-*s  %s\n", width, r.NodeType, r.Directory)
	}
	return nil
}

func changeRules(cmd *cobra.Command, notice string, apply func() error) error {
	if ruleService == nil {
		return errors.New("rule service not configured")
	}
	if err := apply(); err != nil {
		return err
	}
	cmd.Println(notice)

	if rulesSave {
		if err := ruleService.Persist(); err != nil {
			return fmt.Errorf("failed to save rules: %w", err)
		}
		cmd.Println("Rules saved to config")
	}
	return nil
}
