// Package agent drives LLM-backed assistants: a tool registry, an explicit
// run state machine, and the two assistants built on them.
package agent

import (
	"context"

	"github.com/go-deepseek/deepseek/request"
)

// Provider is a chat completion backend
type Provider interface {
	SendMessage(ctx context.Context, req MessageRequest) (*MessageResponse, error)
	Name() string
	Close() error
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
}

type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // JSON object
}

type MessageRequest struct {
	Messages    []Message      `json:"messages"`
	System      string         `json:"system,omitempty"`
	Model       string         `json:"model"`
	MaxTokens   int            `json:"max_tokens"`
	Temperature float64        `json:"temperature"`
	Tools       []request.Tool `json:"tools,omitempty"`
}

type MessageResponse struct {
	Content    string     `json:"content"`
	StopReason string     `json:"stop_reason"`
	Usage      Usage      `json:"usage"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
}

type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}
