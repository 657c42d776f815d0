package agent

import (
	"context"
	"sync"
)

// scriptedProvider replays canned responses in order and records requests
type scriptedProvider struct {
	mu        sync.Mutex
	responses []*MessageResponse
	err       error
	requests  []MessageRequest
}

func (p *scriptedProvider) SendMessage(_ context.Context, req MessageRequest) (*MessageResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = append(p.requests, req)
	if p.err != nil {
		return nil, p.err
	}
	if len(p.responses) == 0 {
		return &MessageResponse{Content: "done"}, nil
	}
	resp := p.responses[0]
	p.responses = p.responses[1:]
	return resp, nil
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Close() error { return nil }

func toolCallResponse(id, name, args string) *MessageResponse {
	return &MessageResponse{
		StopReason: "tool_calls",
		ToolCalls:  []ToolCall{{ID: id, Name: name, Arguments: args}},
		Usage:      Usage{InputTokens: 10, OutputTokens: 5},
	}
}
