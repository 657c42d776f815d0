package healthtools

import (
	"context"
	"encoding/json"

	"cardiomed/internal/agent"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "cardiomed-health"
	serverVersion = "1.0.0"
)

// NewMCPServer serves the patient-data tools over MCP
func NewMCPServer(svc *Service) (*server.MCPServer, error) {
	registry := agent.NewRegistry()
	if err := Register(registry, svc); err != nil {
		return nil, err
	}

	s := server.NewMCPServer(serverName, serverVersion, server.WithToolCapabilities(false))

	for _, def := range registry.Definitions() {
		name := def.Function.Name
		schema, err := json.Marshal(def.Function.Parameters)
		if err != nil {
			return nil, err
		}
		s.AddTool(
			mcp.NewToolWithRawSchema(name, def.Function.Description, schema),
			func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				args, err := json.Marshal(req.GetArguments())
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				out, err := registry.Call(ctx, name, args)
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				return mcp.NewToolResultText(out), nil
			},
		)
	}
	return s, nil
}
