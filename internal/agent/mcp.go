package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// MCPToolset exposes the tools of a stdio MCP server through a Registry
type MCPToolset struct {
	client *client.Client
	names  []string
}

// ConnectMCP starts the tool server process and performs the MCP handshake
func ConnectMCP(ctx context.Context, command string, args []string, env ...string) (*MCPToolset, error) {
	// mcp-go panics on a nil reader when the command cannot be started
	if _, err := exec.LookPath(command); err != nil {
		return nil, fmt.Errorf("MCP server command not found: %w", err)
	}

	c, err := client.NewStdioMCPClient(command, append(os.Environ(), env...), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP client: %w", err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "cardiomed",
		Version: "1.0.0",
	}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		c.Close()
		return nil, fmt.Errorf("MCP initialization failed: %w", err)
	}

	return &MCPToolset{client: c}, nil
}

// RegisterTools lists the server's tools and registers a forwarding handler
// for each of them
func (s *MCPToolset) RegisterTools(ctx context.Context, registry *Registry) error {
	result, err := s.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return fmt.Errorf("failed to list tools: %w", err)
	}

	for _, t := range result.Tools {
		name := t.Name
		tool := Tool{
			Name:        name,
			Description: t.Description,
			Parameters:  ObjectSchema(t.InputSchema.Properties, t.InputSchema.Required...),
			Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
				return s.call(ctx, name, args)
			},
		}
		if err := registry.Register(tool); err != nil {
			return err
		}
		s.names = append(s.names, name)
	}
	return nil
}

// Names returns the tools registered from this server
func (s *MCPToolset) Names() []string {
	return s.names
}

func (s *MCPToolset) call(ctx context.Context, name string, args json.RawMessage) (string, error) {
	var arguments map[string]interface{}
	if len(args) > 0 && string(args) != "null" {
		if err := json.Unmarshal(args, &arguments); err != nil {
			return "", fmt.Errorf("invalid arguments for %s: %w", name, err)
		}
	}

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = arguments

	result, err := s.client.CallTool(ctx, req)
	if err != nil {
		return "", fmt.Errorf("tool call failed: %w", err)
	}

	var out strings.Builder
	for _, content := range result.Content {
		if text, ok := content.(mcp.TextContent); ok {
			out.WriteString(text.Text)
		}
	}
	if result.IsError {
		return "", fmt.Errorf("%s: %s", name, out.String())
	}
	return out.String(), nil
}

func (s *MCPToolset) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
