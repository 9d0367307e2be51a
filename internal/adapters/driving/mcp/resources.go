package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/wfmodels/internal/core/domain"
)

// uriScheme is the custom URI scheme for wfmodels resources.
const uriScheme = "wfmodels://"

const mimeJSON = "application/json"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "rules",
		Name:        "directory-rules",
		Description: "Node type to models directory rules",
		MIMEType:    mimeJSON,
	}, s.handleRulesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "rules/{nodeType}",
		Name:        "directory-rule",
		Description: "The models directory rule for one node type",
		MIMEType:    mimeJSON,
	}, s.handleRuleResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "extensions",
		Name:        "model-extensions",
		Description: "File extensions recognised as model files",
		MIMEType:    mimeJSON,
	}, s.handleExtensionsResource)
}

// handleRulesResource returns the whole rule table.
func (s *Server) handleRulesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	rules := s.ports.Rules.List()
	if rules == nil {
		rules = []domain.DirectoryRule{}
	}
	return jsonResource(req.Params.URI, rules)
}

// handleRuleResource returns the rule for a node type.
func (s *Server) handleRuleResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	nodeType := extractNodeType(req.Params.URI)
	if nodeType == "" || !s.ports.Rules.Has(nodeType) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return jsonResource(req.Params.URI, domain.DirectoryRule{
		NodeType:  nodeType,
		Directory: s.ports.Rules.DirectoryFor(nodeType),
	})
}

// handleExtensionsResource returns the model file extensions.
func (s *Server) handleExtensionsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, domain.ModelExtensions)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}

// extractNodeType extracts the node type from a URI like wfmodels://rules/{nodeType}.
func extractNodeType(uri string) string {
	const prefix = uriScheme + "rules/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	nodeType := strings.TrimPrefix(uri, prefix)
	if strings.Contains(nodeType, "/") {
		return ""
	}
	return nodeType
}
