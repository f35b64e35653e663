package problemgen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/matemagica/matemagica/internal/exercise"
	"github.com/matemagica/matemagica/internal/llm"
)

// LLMSource is an exercise.EnhancedSource backed by a language model.
// It remembers the exercises it produced recently and asks the model to
// avoid them.
type LLMSource struct {
	provider llm.Provider
	config   Config
	logger   *slog.Logger

	mu    sync.Mutex
	prior []string
}

var _ exercise.EnhancedSource = (*LLMSource)(nil)

// New returns an LLMSource. A nil logger discards output.
func New(provider llm.Provider, cfg Config, logger *slog.Logger) *LLMSource {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LLMSource{provider: provider, config: cfg, logger: logger}
}

// RequestExercises asks the model for req.Count exercises and returns
// those that pass every validator, at most req.Count. Provider and decode
// failures are returned as errors.
func (s *LLMSource) RequestExercises(ctx context.Context, req exercise.Request) ([]exercise.Exercise, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeExerciseGen)
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(req, s.recent(), s.config)}},
		Schema:      BatchSchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var out batchOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	exercises := make([]exercise.Exercise, 0, min(len(out.Exercises), req.Count))
	seen := make(map[string]bool, len(out.Exercises))
	for _, c := range out.Exercises {
		if len(exercises) == req.Count {
			break
		}
		if verr := s.validate(c, req); verr != nil {
			s.logger.Debug("rejected generated exercise", "candidate", c, "error", verr)
			continue
		}
		key := dedupKey(c)
		if seen[key] {
			s.logger.Debug("dropped duplicate generated exercise", "exercise", key)
			continue
		}
		seen[key] = true

		o, _ := c.operator()
		exercises = append(exercises, exercise.NewExercise(o, req.Tier, c.First, c.Second))
	}

	s.remember(exercises)
	return exercises, nil
}

func (s *LLMSource) validate(c Candidate, req exercise.Request) *ValidationError {
	for _, v := range s.config.Validators {
		if verr := v.Validate(c, req); verr != nil {
			return verr
		}
	}
	return nil
}

func (s *LLMSource) recent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prior...)
}

func (s *LLMSource) remember(exercises []exercise.Exercise) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range exercises {
		s.prior = append(s.prior, e.String())
	}
	if max := s.config.MaxPriorExercises; max > 0 && len(s.prior) > max {
		s.prior = append([]string(nil), s.prior[len(s.prior)-max:]...)
	}
}
