package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var formatOutput outputFlags

var formatCmd = &cobra.Command{
	Use:   "format FILE",
	Short: "Write complete model entries back and print the canonical JSON",
	Long: `Loads a workflow, writes every entry whose name, url and directory are
all set back into properties.models, and prints the re-serialised document.

Use --out to write the file into a directory instead (named after the input
or --name), and --copy to place it on the clipboard.`,
	Args: cobra.ExactArgs(1),
	RunE: runFormat,
}

func init() {
	formatOutput.register(formatCmd)
	rootCmd.AddCommand(formatCmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
	if err := requireEditor(); err != nil {
		return err
	}
	if err := loadDocument(cmd, args[0]); err != nil {
		return err
	}
	if _, err := editorService.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return formatOutput.writeOutput(cmd)
}
