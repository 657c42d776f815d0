package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTransition(t *testing.T) {
	cases := []struct {
		from  RunStatus
		event RunEvent
		to    RunStatus
		ok    bool
	}{
		{RunQueued, EventStart, RunInProgress, true},
		{RunQueued, EventFail, RunFailed, true},
		{RunQueued, EventFinalAnswer, RunQueued, false},
		{RunInProgress, EventToolCalls, RunRequiresAction, true},
		{RunInProgress, EventFinalAnswer, RunCompleted, true},
		{RunInProgress, EventToolOutputs, RunInProgress, false},
		{RunRequiresAction, EventToolOutputs, RunInProgress, true},
		{RunRequiresAction, EventFinalAnswer, RunRequiresAction, false},
		{RunCompleted, EventStart, RunCompleted, false},
		{RunFailed, EventFail, RunFailed, false},
	}

	for _, tc := range cases {
		to, err := Transition(tc.from, tc.event)
		assert.Equal(t, tc.to, to, "%s on %s", tc.event, tc.from)
		if tc.ok {
			assert.NoError(t, err)
		} else {
			assert.ErrorIs(t, err, ErrInvalidTransition)
		}
	}
}

func TestRunnerToolCallThenAnswer(t *testing.T) {
	provider := &scriptedProvider{responses: []*MessageResponse{
		toolCallResponse("call_1", "echo", `{"text":"120/80"}`),
		{Content: "Your reading looks great!", Usage: Usage{InputTokens: 20, OutputTokens: 8}},
	}}
	tools := NewRegistry()
	tools.MustRegister(echoTool("echo"))

	run := NewRunner(provider, tools, RunnerConfig{System: "be kind", Model: "m"}, zap.NewNop()).
		Execute(context.Background(), "How am I doing?")

	assert.Equal(t, RunCompleted, run.Status)
	assert.Equal(t, "Your reading looks great!", run.Output)
	assert.Equal(t, 2, run.Steps)
	assert.Equal(t, []string{"echo"}, run.ToolsUsed)
	assert.Equal(t, Usage{InputTokens: 30, OutputTokens: 13}, run.Usage)
	assert.NotEmpty(t, run.ID)
	assert.False(t, run.EndedAt.IsZero())

	require.Len(t, provider.requests, 2)
	assert.Equal(t, "be kind", provider.requests[0].System)
	assert.Len(t, provider.requests[0].Tools, 1)

	second := provider.requests[1].Messages
	require.Len(t, second, 3)
	assert.Equal(t, RoleUser, second[0].Role)
	assert.Equal(t, RoleAssistant, second[1].Role)
	assert.Equal(t, RoleTool, second[2].Role)
	assert.Equal(t, "call_1", second[2].ToolCallID)
	assert.JSONEq(t, `{"echo":"120/80"}`, second[2].Content)
}

func TestRunnerReportsUnknownToolToModel(t *testing.T) {
	provider := &scriptedProvider{responses: []*MessageResponse{
		toolCallResponse("call_1", "missing_tool", `{}`),
		{Content: "Sorry, I could not look that up."},
	}}

	run := NewRunner(provider, NewRegistry(), RunnerConfig{}, zap.NewNop()).
		Execute(context.Background(), "hi")

	assert.Equal(t, RunCompleted, run.Status)
	require.Len(t, provider.requests, 2)
	toolMsg := provider.requests[1].Messages[2]
	assert.Contains(t, toolMsg.Content, "tool not found")
}

func TestRunnerStepLimit(t *testing.T) {
	provider := &scriptedProvider{responses: []*MessageResponse{
		toolCallResponse("1", "echo", `{"text":"a"}`),
		toolCallResponse("2", "echo", `{"text":"b"}`),
		toolCallResponse("3", "echo", `{"text":"c"}`),
	}}
	tools := NewRegistry()
	tools.MustRegister(echoTool("echo"))

	run := NewRunner(provider, tools, RunnerConfig{MaxSteps: 2}, zap.NewNop()).
		Execute(context.Background(), "loop")

	assert.Equal(t, RunFailed, run.Status)
	assert.Equal(t, ErrStepLimit.Error(), run.Error)
	assert.Equal(t, 2, run.Steps)
	assert.Len(t, provider.requests, 2)
}

func TestRunnerProviderError(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("upstream unavailable")}

	run := NewRunner(provider, nil, RunnerConfig{}, zap.NewNop()).
		Execute(context.Background(), "hi")

	assert.Equal(t, RunFailed, run.Status)
	assert.Equal(t, "upstream unavailable", run.Error)
	assert.Empty(t, run.Output)
}

func TestRunnerCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	provider := &scriptedProvider{}

	run := NewRunner(provider, nil, RunnerConfig{}, zap.NewNop()).Execute(ctx, "hi")

	assert.Equal(t, RunFailed, run.Status)
	assert.Empty(t, provider.requests)
}
