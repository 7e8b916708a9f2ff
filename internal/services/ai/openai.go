package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"

	"github.com/flowday/flowday-api/internal/scheduler"
)

const (
	// DefaultOpenAIModel is the default model to use
	DefaultOpenAIModel = "gpt-4o-mini"
	// DefaultOpenAIBaseURL is the default OpenAI API base URL
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	// DefaultTimeout is the default timeout for API calls
	DefaultTimeout = 30 * time.Second
)

// OpenAINarrator implements Narrator using OpenAI's chat completions API
type OpenAINarrator struct {
	client    openai.Client
	model     string
	logger    *zap.Logger
	debugMode bool
}

// NewOpenAINarrator creates a new OpenAI narrator
func NewOpenAINarrator(apiKey string, model string) *OpenAINarrator {
	return NewOpenAINarratorWithLogger(apiKey, DefaultOpenAIBaseURL, model, nil, false)
}

// NewOpenAINarratorWithLogger creates a new OpenAI narrator with logger support
func NewOpenAINarratorWithLogger(apiKey string, baseURL string, model string, logger *zap.Logger, debugMode bool) *OpenAINarrator {
	if model == "" {
		model = DefaultOpenAIModel
	}
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := &http.Client{
		Timeout: DefaultTimeout,
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(httpClient),
	)

	return &OpenAINarrator{
		client:    client,
		model:     model,
		logger:    logger,
		debugMode: debugMode,
	}
}

// NarrateOptimization summarizes an optimization report in one or two sentences
func (p *OpenAINarrator) NarrateOptimization(ctx context.Context, report *scheduler.OptimizationReport) (string, error) {
	prompt := buildNarrationPrompt(report)

	if p.debugMode {
		p.logger.Debug("narration_request",
			zap.String("model", p.model),
			zap.String("prompt", SanitizePrompt(prompt, true)),
		)
	}

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You summarize schedule optimization results for a productivity app. Reply with one or two plain sentences, no markdown."),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("narration request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	message := strings.TrimSpace(resp.Choices[0].Message.Content)

	if p.debugMode {
		p.logger.Debug("narration_response",
			zap.String("response", SanitizeResponse(message, true)),
		)
	}

	return message, nil
}

// buildNarrationPrompt renders the report facts the model should restate
func buildNarrationPrompt(report *scheduler.OptimizationReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The schedule optimizer reviewed a day plan against the user's focus history.\n")
	fmt.Fprintf(&b, "Blocks flagged for high-productivity hours: %d\n", report.BetterTimeSlots)
	fmt.Fprintf(&b, "High-energy blocks flagged for rescheduling out of low-productivity hours: %d\n", report.Deweighted)
	fmt.Fprintf(&b, "Average confidence before: %.2f, after: %.2f\n", report.AvgConfidenceBefore, report.AvgConfidenceAfter)
	if len(report.Reasoning) > 0 {
		b.WriteString("Notes:\n")
		for _, reason := range report.Reasoning {
			fmt.Fprintf(&b, "- %s\n", reason)
		}
	}
	b.WriteString("Summarize this for the user.")
	return b.String()
}

var _ Narrator = (*OpenAINarrator)(nil)
