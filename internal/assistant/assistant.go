// Package assistant forwards a question, together with a terse summary of the
// current dashboard, to an LLM and returns its reply. Upstream failures never
// surface to the caller as errors; each mode has a fixed fallback reply.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/hisdash/internal/metrics"
)

// Request is one generation call.
type Request struct {
	Model          string
	Prompt         string
	Temperature    float64
	ThinkingBudget int
}

// Response is the generated text plus token usage.
type Response struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
}

// Caller is the LLM port.
type Caller interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}

// ErrUpstream indicates a failure in the LLM service call.
type ErrUpstream struct {
	Service string
	Err     error
}

func (e *ErrUpstream) Error() string {
	return fmt.Sprintf("upstream service error [%s]: %v", e.Service, e.Err)
}

func (e *ErrUpstream) Unwrap() error {
	return e.Err
}

// ErrEmptyQuestion is returned by Ask for a blank question.
var ErrEmptyQuestion = errors.New("question must not be empty")

// Mode selects the prompt, model and sampling parameters.
type Mode string

const (
	ModeAnalytics  Mode = "analytics"
	ModeDiagnostic Mode = "diagnostic"
)

// ParseMode accepts a mode name, ignoring case. Empty means analytics.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeAnalytics:
		return ModeAnalytics, nil
	case ModeDiagnostic:
		return ModeDiagnostic, nil
	}
	return "", fmt.Errorf("unknown assistant mode %q (want analytics or diagnostic)", s)
}

// Answer is the reply shown to the user.
type Answer struct {
	Mode     Mode   `json:"mode"`
	Model    string `json:"model"`
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
}

// Service builds prompts for each mode and calls the LLM.
type Service struct {
	caller          Caller
	analyticsModel  string
	diagnosticModel string
	metrics         *metrics.Metrics
	log             zerolog.Logger
}

// NewService creates a Service. m may be nil.
func NewService(caller Caller, analyticsModel, diagnosticModel string, m *metrics.Metrics, log zerolog.Logger) *Service {
	return &Service{
		caller:          caller,
		analyticsModel:  analyticsModel,
		diagnosticModel: diagnosticModel,
		metrics:         m,
		log:             log,
	}
}

// Ask answers a question. In analytics mode contextText is embedded in the
// prompt; diagnostic mode treats the question as symptoms and ignores it.
func (s *Service) Ask(ctx context.Context, mode Mode, question, contextText string) (*Answer, error) {
	start := time.Now()
	question = strings.TrimSpace(question)
	if question == "" {
		s.metrics.RecordAssistant(string(mode), "invalid", time.Since(start))
		return nil, ErrEmptyQuestion
	}

	req, err := s.request(mode, question, contextText)
	if err != nil {
		s.metrics.RecordAssistant(string(mode), "invalid", time.Since(start))
		return nil, err
	}

	ans := &Answer{Mode: mode, Model: req.Model}
	resp, err := s.caller.Generate(ctx, req)
	if err == nil && strings.TrimSpace(resp.Text) == "" {
		err = errors.New("empty reply")
	}
	if err != nil {
		s.log.Error().Err(err).Str("mode", string(mode)).Str("model", req.Model).Msg("assistant request failed")
		s.metrics.RecordAssistant(string(mode), "fallback", time.Since(start))
		ans.Text = fallbackReply(mode)
		ans.Fallback = true
		return ans, nil
	}

	s.metrics.RecordTokens(resp.PromptTokens, resp.CompletionTokens)
	s.metrics.RecordAssistant(string(mode), "success", time.Since(start))
	s.log.Debug().
		Str("mode", string(mode)).
		Int("prompt_tokens", resp.PromptTokens).
		Int("completion_tokens", resp.CompletionTokens).
		Str("duration", time.Since(start).String()).
		Msg("assistant reply")
	ans.Text = strings.TrimSpace(resp.Text)
	return ans, nil
}

func (s *Service) request(mode Mode, question, contextText string) (Request, error) {
	switch mode {
	case ModeAnalytics:
		return Request{
			Model:       s.analyticsModel,
			Prompt:      analyticsPrompt(question, contextText),
			Temperature: 0.7,
		}, nil
	case ModeDiagnostic:
		return Request{
			Model:          s.diagnosticModel,
			Prompt:         diagnosticPrompt(question),
			Temperature:    0.3,
			ThinkingBudget: 2000,
		}, nil
	}
	return Request{}, fmt.Errorf("unknown assistant mode %q", mode)
}
