package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"sync"

	"github.com/go-deepseek/deepseek/request"
)

var (
	ErrToolNotFound    = errors.New("tool not found")
	ErrInvalidToolName = errors.New("invalid tool name")
	ErrDuplicateTool   = errors.New("tool already registered")
)

var toolNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// ToolFunc executes a tool call with raw JSON arguments and returns the text
// handed back to the model
type ToolFunc func(ctx context.Context, args json.RawMessage) (string, error)

// Tool is a callable exposed to the model
type Tool struct {
	Name        string
	Description string
	// Parameters is a JSON schema object describing the arguments
	Parameters map[string]interface{}
	Handler    ToolFunc
}

// NewTool wraps a typed handler. Arguments are decoded into In and the result
// is encoded as JSON.
func NewTool[In any, Out any](name, description string, parameters map[string]interface{}, fn func(ctx context.Context, in In) (Out, error)) Tool {
	return Tool{
		Name:        name,
		Description: description,
		Parameters:  parameters,
		Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in In
			if len(args) > 0 && string(args) != "null" {
				if err := json.Unmarshal(args, &in); err != nil {
					return "", fmt.Errorf("invalid arguments for %s: %w", name, err)
				}
			}
			out, err := fn(ctx, in)
			if err != nil {
				return "", err
			}
			data, err := json.Marshal(out)
			if err != nil {
				return "", fmt.Errorf("failed to encode %s result: %w", name, err)
			}
			return string(data), nil
		},
	}
}

// ObjectSchema builds a JSON schema object with the given properties
func ObjectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	if properties == nil {
		properties = map[string]interface{}{}
	}
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// Registry holds the tools available to an assistant. Names are validated and
// unique at registration time.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

func (r *Registry) Register(tool Tool) error {
	if !toolNamePattern.MatchString(tool.Name) {
		return fmt.Errorf("%w: %q", ErrInvalidToolName, tool.Name)
	}
	if tool.Handler == nil {
		return fmt.Errorf("tool %s has no handler", tool.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[tool.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, tool.Name)
	}
	if tool.Parameters == nil {
		tool.Parameters = ObjectSchema(nil)
	}
	r.tools[tool.Name] = tool
	return nil
}

// MustRegister registers a tool and panics on error. For tools defined in code.
func (r *Registry) MustRegister(tool Tool) {
	if err := r.Register(tool); err != nil {
		panic(err)
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Names returns the registered tool names, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definitions renders the tools in the function-calling format, sorted by name
func (r *Registry) Definitions() []request.Tool {
	names := r.Names()

	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]request.Tool, 0, len(names))
	for _, name := range names {
		t := r.tools[name]
		defs = append(defs, request.Tool{
			Type: "function",
			Function: &request.ToolFunction{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	return defs
}

// Call dispatches a tool call by name
func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) (string, error) {
	r.mu.RLock()
	tool, ok := r.tools[name]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	return tool.Handler(ctx, args)
}
