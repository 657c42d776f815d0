package agent

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var ErrEmptyQuestion = errors.New("question must not be empty")

const knowledgeInstructions = `You are a friendly and knowledgeable hypertension education assistant. Your role is to:

1. Provide accurate, evidence-based information about hypertension from the provided knowledge excerpts
2. Answer questions about blood pressure, lifestyle, medications, and management
3. Use a warm, supportive tone that encourages healthy lifestyle choices
4. Acknowledge when information is outside the excerpts and suggest consulting healthcare providers

Guidelines:
- Always prioritize safety and recommend medical consultation for serious concerns
- Provide practical, actionable advice when appropriate
- Use simple, easy-to-understand language
- Cite the source file names of the excerpts you relied on in square brackets

You are an educational resource, not a replacement for professional medical advice.`

// UserContextFunc summarises a user's recent data for a prompt
type UserContextFunc func(ctx context.Context, userID uint) (string, error)

type KnowledgeConfig struct {
	Dir       string
	Model     string
	TopK      int
	ChunkSize int
}

type AskRequest struct {
	Question           string
	UserID             *uint
	IncludeUserContext bool
}

// Answer is the outcome of a knowledge question
type Answer struct {
	Status  RunStatus `json:"status"`
	Answer  string    `json:"answer"`
	Sources []string  `json:"sources"`
	RunID   string    `json:"run_id,omitempty"`
	Error   string    `json:"error,omitempty"`
	Cached  bool      `json:"cached"`
}

// Knowledge answers hypertension questions from a local document collection
type Knowledge struct {
	provider    Provider
	embedder    Embedder
	cache       AnswerCache
	userContext UserContextFunc
	cfg         KnowledgeConfig
	logger      *zap.Logger

	mu        sync.RWMutex
	index     *VectorIndex
	documents []string
	runner    *Runner
}

func NewKnowledge(provider Provider, embedder Embedder, cache AnswerCache, userContext UserContextFunc, cfg KnowledgeConfig, logger *zap.Logger) *Knowledge {
	if cfg.TopK <= 0 {
		cfg.TopK = 4
	}
	return &Knowledge{
		provider:    provider,
		embedder:    embedder,
		cache:       cache,
		userContext: userContext,
		cfg:         cfg,
		logger:      logger.Named("knowledge"),
	}
}

// Init reads every .md and .txt file under the knowledge directory and embeds it
func (k *Knowledge) Init(ctx context.Context) error {
	index := &VectorIndex{}
	var documents []string

	if _, err := os.Stat(k.cfg.Dir); errors.Is(err, fs.ErrNotExist) {
		k.logger.Warn("Knowledge directory not found, answering without documents", zap.String("dir", k.cfg.Dir))
		k.install(index, documents)
		return nil
	}

	err := filepath.WalkDir(k.cfg.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".md" && ext != ".txt" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		name := filepath.Base(path)
		for _, chunk := range ChunkText(name, string(data), k.cfg.ChunkSize) {
			embedding, err := k.embedder.Embed(ctx, chunk.Text)
			if err != nil {
				return fmt.Errorf("embed %s chunk %d: %w", name, chunk.Index, err)
			}
			index.Add(chunk, embedding)
		}
		documents = append(documents, name)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to build knowledge index: %w", err)
	}

	k.install(index, documents)
	k.logger.Info("Knowledge base indexed",
		zap.Int("documents", len(documents)),
		zap.Int("chunks", index.Len()),
	)
	return nil
}

func (k *Knowledge) install(index *VectorIndex, documents []string) {
	runner := NewRunner(k.provider, NewRegistry(), RunnerConfig{
		System:   knowledgeInstructions,
		Model:    k.cfg.Model,
		MaxSteps: 1,
	}, k.logger)

	k.mu.Lock()
	k.index, k.documents, k.runner = index, documents, runner
	k.mu.Unlock()
}

// Ask answers a question. Answers that do not depend on user data are cached.
func (k *Knowledge) Ask(ctx context.Context, req AskRequest) (*Answer, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	k.mu.RLock()
	index, runner := k.index, k.runner
	k.mu.RUnlock()
	if runner == nil {
		return nil, ErrNotInitialized
	}

	personal := req.IncludeUserContext && req.UserID != nil
	if !personal && k.cache != nil {
		if cached, ok, err := k.cache.Get(ctx, question); err != nil {
			k.logger.Warn("Answer cache read failed", zap.Error(err))
		} else if ok {
			cached.Cached = true
			return cached, nil
		}
	}

	queryVec, err := k.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}
	hits := index.Search(queryVec, k.cfg.TopK)

	var prompt strings.Builder
	if len(hits) > 0 {
		prompt.WriteString("Knowledge excerpts:\n\n")
		for _, hit := range hits {
			fmt.Fprintf(&prompt, "[%s]\n%s\n\n", hit.Source, hit.Text)
		}
	}
	if personal && k.userContext != nil {
		summary, err := k.userContext(ctx, *req.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to load user context: %w", err)
		}
		fmt.Fprintf(&prompt, "Patient context (user %d):\n%s\n\n", *req.UserID, summary)
		prompt.WriteString("Provide educational information and, if relevant, relate it to the patient's blood pressure data.\n\n")
	}
	fmt.Fprintf(&prompt, "Question: %s", question)

	run := runner.Execute(ctx, prompt.String())
	answer := &Answer{
		Status:  run.Status,
		Answer:  run.Output,
		Sources: sources(hits),
		RunID:   run.ID,
		Error:   run.Error,
	}

	if run.Status == RunCompleted && !personal && k.cache != nil {
		if err := k.cache.Set(ctx, question, answer); err != nil {
			k.logger.Warn("Answer cache write failed", zap.Error(err))
		}
	}
	return answer, nil
}

func sources(hits []SearchResult) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, hit := range hits {
		if !seen[hit.Source] {
			seen[hit.Source] = true
			out = append(out, hit.Source)
		}
	}
	sort.Strings(out)
	return out
}

type KnowledgeStatus struct {
	Ready     bool     `json:"ready"`
	Provider  string   `json:"provider"`
	Documents []string `json:"documents"`
	Chunks    int      `json:"chunks"`
	Cache     bool     `json:"cache"`
}

func (k *Knowledge) Status() KnowledgeStatus {
	k.mu.RLock()
	defer k.mu.RUnlock()

	status := KnowledgeStatus{
		Ready:     k.runner != nil,
		Provider:  k.provider.Name(),
		Documents: append([]string{}, k.documents...),
		Cache:     k.cache != nil,
	}
	if k.index != nil {
		status.Chunks = k.index.Len()
	}
	return status
}

// Close drops the index; the cache connection is owned by the caller
func (k *Knowledge) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.index, k.documents, k.runner = nil, nil, nil
	return nil
}
