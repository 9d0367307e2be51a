package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/wfmodels/internal/core/domain"
	"github.com/custodia-labs/wfmodels/internal/core/ports/driving"
)

// WorkflowInput is the input schema for tools that take only a workflow.
type WorkflowInput struct {
	Workflow string `json:"workflow" jsonschema:"the workflow JSON document text"`
}

// InspectOutput is the output schema for the inspect_workflow tool.
type InspectOutput struct {
	Nodes        []NodeOutput              `json:"nodes"`
	Stats        domain.EntryStats         `json:"stats"`
	Level        domain.StatusLevel        `json:"level"`
	Summary      string                    `json:"summary"`
	Issues       []domain.Issue            `json:"issues"`
	InvalidFiles []domain.InvalidModelFile `json:"invalid_files"`
}

// NodeOutput describes one model loader node.
type NodeOutput struct {
	ID         domain.NodeID     `json:"id"`
	Type       string            `json:"type"`
	Files      []string          `json:"files"`
	PathStatus domain.PathStatus `json:"path_status"`
	InRules    bool              `json:"in_rules"`
	Entries    []EntryOutput     `json:"entries"`
}

// EntryOutput describes one model entry and its validation.
type EntryOutput struct {
	Name      string            `json:"name"`
	URL       string            `json:"url"`
	Directory string            `json:"directory"`
	Class     domain.EntryClass `json:"class"`
	Reasons   []string          `json:"reasons,omitempty"`
}

// LinkInput is the input schema for the link_models tool.
type LinkInput struct {
	Workflow string `json:"workflow" jsonschema:"the workflow JSON document text"`
	Links    string `json:"links" jsonschema:"free text containing download URLs, one or more per line"`
	Format   string `json:"format,omitempty" jsonschema:"format of links: text, html or markdown (default text)"`
}

// LinkOutput is the output schema for the link_models tool.
type LinkOutput struct {
	URLsFound      int    `json:"urls_found"`
	Matched        int    `json:"matched"`
	RepairedErrors int    `json:"repaired_errors"`
	Message        string `json:"message"`
	Workflow       string `json:"workflow"`
}

// SetEntryInput is the input schema for the set_model_entry tool.
type SetEntryInput struct {
	Workflow  string `json:"workflow" jsonschema:"the workflow JSON document text"`
	NodeID    int64  `json:"node_id" jsonschema:"id of the model loader node"`
	Name      string `json:"name" jsonschema:"model file name; the entry is created when the node has none by that name"`
	URL       string `json:"url" jsonschema:"download URL whose file name matches the model name"`
	Directory string `json:"directory,omitempty" jsonschema:"target models directory (defaults to the directory rule)"`
}

// SetEntryOutput is the output schema for the set_model_entry tool.
type SetEntryOutput struct {
	Entry    EntryOutput `json:"entry"`
	Workflow string      `json:"workflow"`
}

// WorkflowOutput is the output schema for format_workflow.
type WorkflowOutput struct {
	Workflow string `json:"workflow"`
}

// ListRulesInput takes no arguments.
type ListRulesInput struct{}

// RulesOutput is the output schema for list_directory_rules.
type RulesOutput struct {
	Rules []domain.DirectoryRule `json:"rules"`
	Count int                    `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "inspect_workflow",
		Description: "List the model loader nodes of a workflow with their model entries, validation and audit",
	}, s.handleInspect)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "link_models",
		Description: "Match download URLs to the model entries of a workflow by file name and return the updated workflow",
	}, s.handleLink)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_model_entry",
		Description: "Set the URL (and optionally directory) of one model entry and return the updated workflow",
	}, s.handleSetEntry)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "format_workflow",
		Description: "Write complete model entries back to a workflow and return it in canonical form",
	}, s.handleFormat)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_directory_rules",
		Description: "List the node type to models directory rules",
	}, s.handleListRules)
}

// session loads a workflow into a fresh editor.
func (s *Server) session(workflow string) (driving.EditorService, error) {
	editor := s.ports.NewEditor()
	if err := editor.Load(workflow); err != nil {
		return nil, err
	}
	return editor, nil
}

// handleInspect handles the inspect_workflow tool invocation.
func (s *Server) handleInspect(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input WorkflowInput,
) (*mcp.CallToolResult, InspectOutput, error) {
	editor, err := s.session(input.Workflow)
	if err != nil {
		return nil, InspectOutput{}, err
	}

	audit := editor.Audit()
	output := InspectOutput{
		Nodes:        []NodeOutput{},
		Stats:        editor.Stats(),
		Level:        audit.Level(),
		Summary:      audit.Summary(),
		Issues:       append([]domain.Issue{}, audit.Issues...),
		InvalidFiles: append([]domain.InvalidModelFile{}, editor.InvalidModelFiles()...),
	}

	for _, state := range editor.Nodes() {
		id, _ := state.ID()
		node := NodeOutput{
			ID:         id,
			Type:       state.Type(),
			Files:      append([]string{}, state.Context.Files()...),
			PathStatus: state.PathStatus,
			InRules:    state.Context.IsNodeTypeInRules,
			Entries:    make([]EntryOutput, 0, len(state.Entries)),
		}
		for _, e := range state.Entries {
			node.Entries = append(node.Entries, entryOutput(e))
		}
		output.Nodes = append(output.Nodes, node)
	}

	return nil, output, nil
}

// handleLink handles the link_models tool invocation.
func (s *Server) handleLink(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input LinkInput,
) (*mcp.CallToolResult, LinkOutput, error) {
	editor, err := s.session(input.Workflow)
	if err != nil {
		return nil, LinkOutput{}, err
	}

	links := input.Links
	if s.ports.Links != nil {
		links = s.ports.Links.Normalise(linkSourceName(input.Format), links)
	}

	result, err := editor.BulkMatch(links)
	if err != nil {
		return nil, LinkOutput{}, err
	}

	return nil, LinkOutput{
		URLsFound:      result.URLsFound,
		Matched:        result.Matched,
		RepairedErrors: result.RepairedErrors,
		Message:        result.Message(),
		Workflow:       editor.Text(),
	}, nil
}

// handleSetEntry handles the set_model_entry tool invocation.
func (s *Server) handleSetEntry(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SetEntryInput,
) (*mcp.CallToolResult, SetEntryOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, SetEntryOutput{}, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	editor, err := s.session(input.Workflow)
	if err != nil {
		return nil, SetEntryOutput{}, err
	}

	id := domain.NodeID(input.NodeID)
	state, err := editor.Node(id)
	if err != nil {
		return nil, SetEntryOutput{}, err
	}

	var entryID domain.EntryID
	found := false
	for _, e := range state.Entries {
		if e.Model.Name == name {
			entryID, found = e.ID, true
			break
		}
	}
	if !found {
		added, err := editor.AddEntry(id)
		if err != nil {
			return nil, SetEntryOutput{}, err
		}
		entryID = added.ID
		if _, err := editor.UpdateEntry(entryID, domain.FieldName, name); err != nil {
			return nil, SetEntryOutput{}, err
		}
	}

	if input.Directory != "" {
		if _, err := editor.UpdateEntry(entryID, domain.FieldDirectory, input.Directory); err != nil {
			return nil, SetEntryOutput{}, err
		}
	}
	entry, err := editor.UpdateEntry(entryID, domain.FieldURL, input.URL)
	if err != nil {
		return nil, SetEntryOutput{}, err
	}

	text, err := editor.Commit()
	if err != nil {
		return nil, SetEntryOutput{}, err
	}

	return nil, SetEntryOutput{Entry: entryOutput(entry), Workflow: text}, nil
}

// handleFormat handles the format_workflow tool invocation.
func (s *Server) handleFormat(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input WorkflowInput,
) (*mcp.CallToolResult, WorkflowOutput, error) {
	editor, err := s.session(input.Workflow)
	if err != nil {
		return nil, WorkflowOutput{}, err
	}

	text, err := editor.Commit()
	if err != nil {
		return nil, WorkflowOutput{}, err
	}
	return nil, WorkflowOutput{Workflow: text}, nil
}

// handleListRules handles the list_directory_rules tool invocation.
func (s *Server) handleListRules(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListRulesInput,
) (*mcp.CallToolResult, RulesOutput, error) {
	rules := s.ports.Rules.List()
	if rules == nil {
		rules = []domain.DirectoryRule{}
	}
	return nil, RulesOutput{Rules: rules, Count: len(rules)}, nil
}

// linkSourceName maps a format to a file name the normaliser recognises.
// An unknown format leaves the choice to content sniffing.
func linkSourceName(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "html", "htm":
		return "links.html"
	case "markdown", "md":
		return "links.md"
	case "text", "txt":
		return "links.txt"
	default:
		return ""
	}
}

func entryOutput(e domain.EditableEntry) EntryOutput {
	out := EntryOutput{
		Name:      e.Model.Name,
		URL:       e.Model.URL,
		Directory: e.Model.Directory,
		Class:     e.Class(),
	}
	if !e.Name.Valid() && e.Name.Reason != "" {
		out.Reasons = append(out.Reasons, e.Name.Reason)
	}
	if !e.URL.Valid() && e.URL.Reason != "" {
		out.Reasons = append(out.Reasons, e.URL.Reason)
	}
	return out
}
