package agent

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var ErrNotInitialized = errors.New("assistant not initialized")

const advisorInstructions = `You are a friendly community health worker who checks in on people with hypertension.
Your role is to provide SHORT, ENCOURAGING, and PERSONAL daily check-ins.

Communication style:
- Keep messages under 3-4 sentences
- Be warm, friendly, and encouraging like a caring friend
- Use simple, everyday language (not medical jargon)
- Focus on positive progress and motivation
- Give ONE simple tip or reminder per message

What to do:
1. Check their recent BP readings (last 3-7 days)
2. Notice trends, improvements, or concerns
3. Give encouraging feedback about their progress
4. Provide ONE simple daily tip (water, walking, medication reminder, etc.)

BP categories (for your reference only):
- Great: <120/80
- Good: 120-129/<80
- Watch: 130-139/80-89
- Concern: >=140/>=90, supportive but suggest a medical check
- Any reading at or above 180/120 needs immediate medical attention, say so plainly

Always be encouraging, never lecture. First get their profile and recent readings,
then give a short, personal, encouraging message.`

// ToolInstaller adds tools to an assistant's registry during Init
type ToolInstaller func(*Registry) error

// InstallTools returns an installer registering fixed tools
func InstallTools(tools ...Tool) ToolInstaller {
	return func(r *Registry) error {
		for _, t := range tools {
			if err := r.Register(t); err != nil {
				return err
			}
		}
		return nil
	}
}

type AdvisorConfig struct {
	Model    string
	MaxSteps int
	// ToolCommand starts an MCP tool server whose tools are added to the
	// registry. Empty means only installed tools are available.
	ToolCommand string
	ToolArgs    []string
}

// Advisor produces short personal check-ins from a patient's own data
type Advisor struct {
	provider   Provider
	cfg        AdvisorConfig
	installers []ToolInstaller
	logger     *zap.Logger

	mu       sync.RWMutex
	registry *Registry
	runner   *Runner
	toolset  *MCPToolset
}

func NewAdvisor(provider Provider, cfg AdvisorConfig, logger *zap.Logger, installers ...ToolInstaller) *Advisor {
	return &Advisor{
		provider:   provider,
		cfg:        cfg,
		installers: installers,
		logger:     logger.Named("advisor"),
	}
}

// Init builds the tool registry and connects the tool server
func (a *Advisor) Init(ctx context.Context) error {
	registry := NewRegistry()
	for _, install := range a.installers {
		if err := install(registry); err != nil {
			return fmt.Errorf("failed to install advisor tools: %w", err)
		}
	}

	var toolset *MCPToolset
	if a.cfg.ToolCommand != "" {
		var err error
		toolset, err = ConnectMCP(ctx, a.cfg.ToolCommand, a.cfg.ToolArgs)
		if err != nil {
			return err
		}
		if err := toolset.RegisterTools(ctx, registry); err != nil {
			toolset.Close()
			return err
		}
	}

	runner := NewRunner(a.provider, registry, RunnerConfig{
		System:   advisorInstructions,
		Model:    a.cfg.Model,
		MaxSteps: a.cfg.MaxSteps,
	}, a.logger)

	a.mu.Lock()
	a.registry, a.runner, a.toolset = registry, runner, toolset
	a.mu.Unlock()

	a.logger.Info("Health advisor initialized", zap.Strings("tools", registry.Names()))
	return nil
}

// Advice runs one check-in for the user
func (a *Advisor) Advice(ctx context.Context, userID uint, message string) (*Run, error) {
	a.mu.RLock()
	runner := a.runner
	a.mu.RUnlock()
	if runner == nil {
		return nil, ErrNotInitialized
	}

	prompt := fmt.Sprintf("I am the patient with user_id %d. %s", userID, message)
	return runner.Execute(ctx, prompt), nil
}

type AdvisorStatus struct {
	Ready      bool     `json:"ready"`
	Provider   string   `json:"provider"`
	Tools      []string `json:"tools"`
	ToolServer string   `json:"tool_server,omitempty"`
}

func (a *Advisor) Status() AdvisorStatus {
	a.mu.RLock()
	defer a.mu.RUnlock()

	status := AdvisorStatus{
		Ready:      a.runner != nil,
		Provider:   a.provider.Name(),
		Tools:      []string{},
		ToolServer: a.cfg.ToolCommand,
	}
	if a.registry != nil {
		status.Tools = a.registry.Names()
	}
	return status
}

// Close stops the tool server and marks the advisor uninitialized
func (a *Advisor) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.runner = nil
	if a.toolset != nil {
		err := a.toolset.Close()
		a.toolset = nil
		return err
	}
	return nil
}
