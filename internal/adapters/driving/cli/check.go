package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wfmodels/internal/core/domain"
)

// ErrAuditFailed is returned by check when the audit reports errors.
var ErrAuditFailed = errors.New("workflow has model format errors")

var checkJSON bool

var checkCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Validate the model entries of a workflow",
	Long: `Loads a workflow, lists every model loader node with its entries and
their validation results, then prints entry counts and the document audit.

FILE may be "-" to read from stdin. The command fails when the audit finds
model format errors, so it can gate a pipeline.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(checkCmd)
}

// checkReport is the JSON form of a check.
type checkReport struct {
	Nodes        []nodeReport              `json:"nodes"`
	Stats        domain.EntryStats         `json:"stats"`
	Level        domain.StatusLevel        `json:"level"`
	Summary      string                    `json:"summary"`
	Audit        domain.ValidationStatus   `json:"audit"`
	InvalidFiles []domain.InvalidModelFile `json:"invalid_files,omitempty"`
}

type nodeReport struct {
	ID         domain.NodeID     `json:"id"`
	Type       string            `json:"type"`
	Files      []string          `json:"files"`
	PathStatus domain.PathStatus `json:"path_status"`
	Entries    []entryReport     `json:"entries"`
}

type entryReport struct {
	domain.ModelEntry
	Class      domain.EntryClass  `json:"class"`
	NameStatus domain.FieldStatus `json:"name_status"`
	URLStatus  domain.FieldStatus `json:"url_status"`
	Reasons    []string           `json:"reasons,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	if err := requireEditor(); err != nil {
		return err
	}
	if err := loadDocument(cmd, args[0]); err != nil {
		return err
	}

	report := buildCheckReport()

	if checkJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		cmd.Println(string(data))
	} else {
		printCheckReport(cmd, report)
	}

	if report.Level == domain.LevelError {
		return ErrAuditFailed
	}
	return nil
}

func buildCheckReport() checkReport {
	audit := editorService.Audit()
	report := checkReport{
		Stats:        editorService.Stats(),
		Level:        audit.Level(),
		Summary:      audit.Summary(),
		Audit:        audit,
		InvalidFiles: editorService.InvalidModelFiles(),
	}

	for _, state := range editorService.Nodes() {
		id, _ := state.ID()
		node := nodeReport{
			ID:         id,
			Type:       state.Type(),
			Files:      state.Context.Files(),
			PathStatus: state.PathStatus,
		}
		for _, e := range state.Entries {
			node.Entries = append(node.Entries, entryReport{
				ModelEntry: e.Model,
				Class:      e.Class(),
				NameStatus: e.Name.Status,
				URLStatus:  e.URL.Status,
				Reasons:    entryReasons(e),
			})
		}
		report.Nodes = append(report.Nodes, node)
	}
	return report
}

func entryReasons(e domain.EditableEntry) []string {
	var reasons []string
	if !e.Name.Valid() && e.Name.Reason != "" {
		reasons = append(reasons, e.Name.Reason)
	}
	if !e.URL.Valid() && e.URL.Reason != "" {
		reasons = append(reasons, e.URL.Reason)
	}
	return reasons
}

func printCheckReport(cmd *cobra.Command, report checkReport) {
	if len(report.Nodes) == 0 {
		cmd.Println("No model loader nodes found.")
	}

	for _, node := range report.Nodes {
		cmd.Printf("#%s %s\n", node.ID, node.Type)
		for i, f := range node.Files {
			if i == 0 {
				cmd.Printf("  path  %s (%s)\n", f, node.PathStatus.Description())
			} else {
				cmd.Printf("  path  %s\n", f)
			}
		}
		for _, e := range node.Entries {
			url := e.URL
			if url == "" {
				url = "(no url)"
			}
			cmd.Printf("  [%s] %s  %s  → %s\n", e.Class, e.Name, url, e.Directory)
			if len(e.Reasons) > 0 {
				cmd.Printf("        %s\n", strings.Join(e.Reasons, "; "))
			}
		}
		cmd.Println()
	}

	for _, f := range report.InvalidFiles {
		cmd.Printf("Invalid model file: #%s %s %s\n", f.NodeID, f.NodeType, f.Path)
	}

	cmd.Printf("Entries: %d total, %d valid, %d missing URL, %d URL errors\n",
		report.Stats.Total, report.Stats.Valid, report.Stats.MissingURL, report.Stats.ErrorURL)
	if report.Summary != "" {
		cmd.Printf("Audit: %s\n", report.Summary)
	}
	for _, issue := range report.Audit.Issues {
		cmd.Printf("  %-7s #%s %s: %s\n", issue.Severity, issue.NodeID, issue.NodeType, issue.Message)
	}
}
