package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wfmodels/internal/core/domain"
)

var positionsJSON bool

var positionsCmd = &cobra.Command{
	Use:   "positions FILE",
	Short: "Show where each node sits in the canonical JSON",
	Long: `Prints the 1-based line of every node, its id, its properties and each
persisted model entry in the canonical text of FILE.`,
	Args: cobra.ExactArgs(1),
	RunE: runPositions,
}

func init() {
	positionsCmd.Flags().BoolVar(&positionsJSON, "json", false, "output 0-based positions as JSON")
	rootCmd.AddCommand(positionsCmd)
}

func runPositions(cmd *cobra.Command, args []string) error {
	if err := requireEditor(); err != nil {
		return err
	}
	if err := loadDocument(cmd, args[0]); err != nil {
		return err
	}

	positions := editorService.Positions()
	ids := make([]domain.NodeID, 0, len(positions))
	for id := range positions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return positions[ids[i]].StartLine < positions[ids[j]].StartLine })

	if positionsJSON {
		data, err := json.MarshalIndent(positions, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal positions: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(ids) == 0 {
		cmd.Println("No nodes found.")
		return nil
	}
	for _, id := range ids {
		p := positions[id]
		cmd.Printf("#%s  node %s  id %s  properties %s  models %s\n",
			id, lineNumber(p.StartLine), lineNumber(p.IDLine),
			lineNumber(p.PropertiesLine), lineNumber(p.ModelsLine))
		for _, e := range p.ModelEntries {
			cmd.Printf("    %s  name %s  url %s\n", e.Name, lineNumber(e.NameLine), lineNumber(e.URLLine))
		}
	}
	return nil
}

// lineNumber renders a 0-based line as 1-based, or "-".
func lineNumber(line int) string {
	if line <= domain.NoLine {
		return "-"
	}
	return fmt.Sprintf("%d", line+1)
}
