package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cardiomed/internal/config"

	"github.com/go-deepseek/deepseek"
	"github.com/go-deepseek/deepseek/request"
	"github.com/go-resty/resty/v2"
)

const deepseekBaseURL = "https://api.deepseek.com"

// deepseekMessage carries tool_calls, which the SDK's request.Message lacks
type deepseekMessage struct {
	Role       string             `json:"role"`
	Content    string             `json:"content"`
	ToolCallId string             `json:"tool_call_id,omitempty"`
	ToolCalls  []deepseekToolCall `json:"tool_calls,omitempty"`
}

type deepseekToolCall struct {
	Id       string               `json:"id"`
	Type     string               `json:"type"`
	Function deepseekToolFunction `json:"function"`
}

type deepseekToolFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type deepseekChatRequest struct {
	Model       string            `json:"model"`
	Messages    []deepseekMessage `json:"messages"`
	MaxTokens   int               `json:"max_tokens,omitempty"`
	Temperature *float32          `json:"temperature,omitempty"`
	Stream      bool              `json:"stream"`
	Tools       *[]request.Tool   `json:"tools,omitempty"`
}

type deepseekChatResponse struct {
	Choices []struct {
		FinishReason string `json:"finish_reason"`
		Message      struct {
			Content   string             `json:"content"`
			ToolCalls []deepseekToolCall `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

type deepseekErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

var ErrEmptyCompletion = errors.New("model returned no choices")

// DeepSeekProvider talks to the DeepSeek chat API. Plain conversations go
// through the SDK; conversations that replay tool calls go over resty.
type DeepSeekProvider struct {
	client deepseek.Client
	http   *resty.Client
}

func NewDeepSeekProvider(cfg config.DeepSeekConfig) (*DeepSeekProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("DeepSeek API key is required")
	}

	client, err := deepseek.NewClient(cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create DeepSeek client: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	httpClient := resty.New().
		SetBaseURL(deepseekBaseURL).
		SetTimeout(timeout).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &DeepSeekProvider{client: client, http: httpClient}, nil
}

func (p *DeepSeekProvider) SendMessage(ctx context.Context, req MessageRequest) (*MessageResponse, error) {
	for _, msg := range req.Messages {
		if len(msg.ToolCalls) > 0 {
			return p.sendWithToolCalls(ctx, req)
		}
	}
	return p.sendSDK(ctx, req)
}

func (p *DeepSeekProvider) sendSDK(ctx context.Context, req MessageRequest) (*MessageResponse, error) {
	messages := make([]*request.Message, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, &request.Message{Role: "system", Content: req.System})
	}
	for _, msg := range req.Messages {
		messages = append(messages, &request.Message{
			Role:       msg.Role,
			Content:    msg.Content,
			ToolCallId: msg.ToolCallID,
		})
	}

	chatReq := &request.ChatCompletionsRequest{
		Model:       req.Model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: temperature(req.Temperature),
		Stream:      false,
	}
	if len(req.Tools) > 0 {
		chatReq.Tools = &req.Tools
	}

	resp, err := p.client.CallChatCompletionsChat(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("DeepSeek API request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyCompletion
	}

	choice := resp.Choices[0]
	out := &MessageResponse{
		Content:    choice.Message.Content,
		StopReason: choice.FinishReason,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
	}
	for _, tc := range choice.Message.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, ToolCall{
			ID:        tc.Id,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return out, nil
}

func (p *DeepSeekProvider) sendWithToolCalls(ctx context.Context, req MessageRequest) (*MessageResponse, error) {
	messages := make([]deepseekMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, deepseekMessage{Role: "system", Content: req.System})
	}
	for _, msg := range req.Messages {
		m := deepseekMessage{
			Role:       msg.Role,
			Content:    msg.Content,
			ToolCallId: msg.ToolCallID,
		}
		for _, tc := range msg.ToolCalls {
			m.ToolCalls = append(m.ToolCalls, deepseekToolCall{
				Id:   tc.ID,
				Type: "function",
				Function: deepseekToolFunction{
					Name:      tc.Name,
					Arguments: tc.Arguments,
				},
			})
		}
		messages = append(messages, m)
	}

	chatReq := deepseekChatRequest{
		Model:       req.Model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: temperature(req.Temperature),
	}
	if len(req.Tools) > 0 {
		chatReq.Tools = &req.Tools
	}

	var chatResp deepseekChatResponse
	var errResp deepseekErrorResponse
	resp, err := p.http.R().
		SetContext(ctx).
		SetBody(chatReq).
		SetResult(&chatResp).
		SetError(&errResp).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("DeepSeek API request failed: %w", err)
	}
	if resp.IsError() {
		if errResp.Error.Message != "" {
			return nil, fmt.Errorf("DeepSeek API error: %s", errResp.Error.Message)
		}
		return nil, fmt.Errorf("DeepSeek API error: %s (status %d)", resp.String(), resp.StatusCode())
	}
	if len(chatResp.Choices) == 0 {
		return nil, ErrEmptyCompletion
	}

	choice := chatResp.Choices[0]
	out := &MessageResponse{
		Content:    choice.Message.Content,
		StopReason: choice.FinishReason,
		Usage: Usage{
			InputTokens:  chatResp.Usage.PromptTokens,
			OutputTokens: chatResp.Usage.CompletionTokens,
		},
	}
	for _, tc := range choice.Message.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, ToolCall{
			ID:        tc.Id,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return out, nil
}

func temperature(t float64) *float32 {
	if t <= 0 {
		return nil
	}
	v := float32(t)
	return &v
}

func (p *DeepSeekProvider) Name() string {
	return "deepseek"
}

func (p *DeepSeekProvider) Close() error {
	return nil
}
