package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RunStatus is the state of an assistant run
type RunStatus string

const (
	RunQueued         RunStatus = "queued"
	RunInProgress     RunStatus = "in_progress"
	RunRequiresAction RunStatus = "requires_action"
	RunCompleted      RunStatus = "completed"
	RunFailed         RunStatus = "failed"
)

// Terminal reports whether no further transitions are possible
func (s RunStatus) Terminal() bool {
	return s == RunCompleted || s == RunFailed
}

// RunEvent drives a run from one state to the next
type RunEvent string

const (
	EventStart       RunEvent = "start"
	EventToolCalls   RunEvent = "tool_calls"
	EventToolOutputs RunEvent = "tool_outputs"
	EventFinalAnswer RunEvent = "final_answer"
	EventFail        RunEvent = "fail"
)

var ErrInvalidTransition = errors.New("invalid run transition")

var transitions = map[RunStatus]map[RunEvent]RunStatus{
	RunQueued: {
		EventStart: RunInProgress,
		EventFail:  RunFailed,
	},
	RunInProgress: {
		EventToolCalls:   RunRequiresAction,
		EventFinalAnswer: RunCompleted,
		EventFail:        RunFailed,
	},
	RunRequiresAction: {
		EventToolOutputs: RunInProgress,
		EventFail:        RunFailed,
	},
}

// Transition returns the state reached from `from` on `event`
func Transition(from RunStatus, event RunEvent) (RunStatus, error) {
	if to, ok := transitions[from][event]; ok {
		return to, nil
	}
	return from, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, event, from)
}

// Run is one question answered by an assistant
type Run struct {
	ID        string    `json:"id"`
	Status    RunStatus `json:"status"`
	Steps     int       `json:"steps"`
	Output    string    `json:"output,omitempty"`
	Error     string    `json:"error,omitempty"`
	ToolsUsed []string  `json:"tools_used,omitempty"`
	Usage     Usage     `json:"usage"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at,omitempty"`

	messages []Message
}

func newRun(prompt string) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Status:    RunQueued,
		StartedAt: time.Now(),
		messages:  []Message{{Role: RoleUser, Content: prompt}},
	}
}

func (r *Run) apply(event RunEvent) error {
	to, err := Transition(r.Status, event)
	if err != nil {
		return err
	}
	r.Status = to
	if to.Terminal() {
		r.EndedAt = time.Now()
	}
	return nil
}

func (r *Run) fail(err error) {
	r.Error = err.Error()
	_ = r.apply(EventFail)
}

// Runner executes runs against a provider and a tool registry
type Runner struct {
	provider  Provider
	tools     *Registry
	system    string
	model     string
	maxTokens int
	maxSteps  int
	logger    *zap.Logger
}

type RunnerConfig struct {
	System    string
	Model     string
	MaxTokens int
	// MaxSteps bounds the number of model round-trips in one run
	MaxSteps int
}

func NewRunner(provider Provider, tools *Registry, cfg RunnerConfig, logger *zap.Logger) *Runner {
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = 8
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1024
	}
	if tools == nil {
		tools = NewRegistry()
	}
	return &Runner{
		provider:  provider,
		tools:     tools,
		system:    cfg.System,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		maxSteps:  cfg.MaxSteps,
		logger:    logger,
	}
}

var ErrStepLimit = errors.New("run exceeded step limit")

// Execute drives a run to a terminal state. Failures are recorded on the run;
// the returned run is never nil.
func (r *Runner) Execute(ctx context.Context, prompt string) *Run {
	run := newRun(prompt)
	log := r.logger.With(zap.String("run_id", run.ID))

	if err := run.apply(EventStart); err != nil {
		run.fail(err)
		return run
	}

	for !run.Status.Terminal() {
		if err := ctx.Err(); err != nil {
			run.fail(err)
			break
		}

		switch run.Status {
		case RunInProgress:
			if run.Steps >= r.maxSteps {
				run.fail(ErrStepLimit)
				continue
			}
			r.step(ctx, run)
		case RunRequiresAction:
			r.submitToolOutputs(ctx, run, log)
		}
	}

	log.Info("Agent run finished",
		zap.String("status", string(run.Status)),
		zap.Int("steps", run.Steps),
		zap.Strings("tools", run.ToolsUsed),
		zap.String("error", run.Error),
	)
	return run
}

// step performs one model round-trip
func (r *Runner) step(ctx context.Context, run *Run) {
	run.Steps++
	resp, err := r.provider.SendMessage(ctx, MessageRequest{
		Messages:  run.messages,
		System:    r.system,
		Model:     r.model,
		MaxTokens: r.maxTokens,
		Tools:     r.tools.Definitions(),
	})
	if err != nil {
		run.fail(err)
		return
	}
	run.Usage.InputTokens += resp.Usage.InputTokens
	run.Usage.OutputTokens += resp.Usage.OutputTokens

	run.messages = append(run.messages, Message{
		Role:      RoleAssistant,
		Content:   resp.Content,
		ToolCalls: resp.ToolCalls,
	})

	if len(resp.ToolCalls) > 0 {
		_ = run.apply(EventToolCalls)
		return
	}
	run.Output = resp.Content
	_ = run.apply(EventFinalAnswer)
}

// submitToolOutputs answers every pending tool call of the last assistant
// message. Tool errors are reported to the model rather than failing the run.
func (r *Runner) submitToolOutputs(ctx context.Context, run *Run, log *zap.Logger) {
	last := run.messages[len(run.messages)-1]
	for _, call := range last.ToolCalls {
		output, err := r.tools.Call(ctx, call.Name, json.RawMessage(call.Arguments))
		if err != nil {
			log.Warn("Tool call failed", zap.String("tool", call.Name), zap.Error(err))
			output = fmt.Sprintf(`{"error": %q}`, err.Error())
		}
		run.ToolsUsed = append(run.ToolsUsed, call.Name)
		run.messages = append(run.messages, Message{
			Role:       RoleTool,
			Content:    output,
			ToolCallID: call.ID,
		})
	}
	_ = run.apply(EventToolOutputs)
}
