package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAdvisorRequiresInit(t *testing.T) {
	advisor := NewAdvisor(&scriptedProvider{}, AdvisorConfig{}, zap.NewNop())

	_, err := advisor.Advice(context.Background(), 1, "hi")
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.False(t, advisor.Status().Ready)
	assert.Empty(t, advisor.Status().Tools)
}

func TestAdvisorAdvice(t *testing.T) {
	provider := &scriptedProvider{responses: []*MessageResponse{
		toolCallResponse("c1", "echo", `{"text":"profile"}`),
		{Content: "Great week, keep walking!"},
	}}
	advisor := NewAdvisor(provider, AdvisorConfig{Model: "deepseek-chat", MaxSteps: 4}, zap.NewNop(),
		InstallTools(echoTool("echo")))
	require.NoError(t, advisor.Init(context.Background()))
	defer advisor.Close()

	run, err := advisor.Advice(context.Background(), 42, "How am I doing?")
	require.NoError(t, err)

	assert.Equal(t, RunCompleted, run.Status)
	assert.Equal(t, "Great week, keep walking!", run.Output)
	assert.Equal(t, []string{"echo"}, run.ToolsUsed)
	require.NotEmpty(t, provider.requests)
	assert.Contains(t, provider.requests[0].Messages[0].Content, "user_id 42")
	assert.Equal(t, "deepseek-chat", provider.requests[0].Model)
	assert.Equal(t, advisorInstructions, provider.requests[0].System)

	status := advisor.Status()
	assert.True(t, status.Ready)
	assert.Equal(t, "scripted", status.Provider)
	assert.Equal(t, []string{"echo"}, status.Tools)
}

func TestAdvisorInitFailsOnDuplicateTools(t *testing.T) {
	advisor := NewAdvisor(&scriptedProvider{}, AdvisorConfig{}, zap.NewNop(),
		InstallTools(echoTool("echo")), InstallTools(echoTool("echo")))

	err := advisor.Init(context.Background())
	assert.ErrorIs(t, err, ErrDuplicateTool)
	assert.False(t, advisor.Status().Ready)
}

func TestAdvisorMissingToolServer(t *testing.T) {
	advisor := NewAdvisor(&scriptedProvider{}, AdvisorConfig{ToolCommand: "cardiomed-no-such-binary"}, zap.NewNop())

	err := advisor.Init(context.Background())
	assert.Error(t, err)
}

func TestAdvisorClose(t *testing.T) {
	advisor := NewAdvisor(&scriptedProvider{}, AdvisorConfig{}, zap.NewNop())
	require.NoError(t, advisor.Init(context.Background()))
	require.NoError(t, advisor.Close())

	_, err := advisor.Advice(context.Background(), 1, "hi")
	assert.ErrorIs(t, err, ErrNotInitialized)
}
