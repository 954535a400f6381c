// Package llm wraps the generative planning agent behind a narrow
// text-to-text interface so the pipeline can swap it for a stub in tests.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/avelisek/planwright/internal/config"
	"github.com/avelisek/planwright/internal/metrics"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// agentInstructions is the fixed instruction block for the planning agent.
// Everything else the agent sees arrives through the per-call prompt.
const agentInstructions = `You are a maintenance planning agent for industrial tire-manufacturing equipment.
Given a diagnosed fault, the required skills and parts, the available technicians,
and the inventory summary, draft a repair work order.

Respond with a single JSON object and nothing else. Fields:
  workOrderNumber, machineId, title, description,
  type (corrective | preventive | emergency),
  priority (critical | high | medium | low),
  status, assignedTo, notes, estimatedDuration,
  partsUsed: [{partId, partNumber, quantity}],
  tasks: [{sequence, title, description, estimatedDurationMinutes, requiredSkills, safetyNotes}]

All duration fields are integers in minutes.
Pick the most qualified available technician for assignedTo, or leave it empty.
Include only parts relevant to this fault.`

// Agent wraps a langchaingo model configured as the work-order planner.
type Agent struct {
	llm       llms.Model
	modelName string
	collector *metrics.Collector
}

// NewAgent creates the planning agent for the configured provider.
// collector may be nil.
func NewAgent(cfg config.Config, collector *metrics.Collector) (*Agent, error) {
	var model llms.Model
	var err error

	switch cfg.LLMProvider {
	case config.ProviderOllama:
		model, err = ollama.New(
			ollama.WithModel(cfg.LLMModel),
			ollama.WithServerURL(cfg.OllamaHost),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}

	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		model, err = openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.LLMModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}

	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("Anthropic API key required")
		}
		model, err = anthropic.New(
			anthropic.WithToken(cfg.AnthropicAPIKey),
			anthropic.WithModel(cfg.LLMModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}

	return &Agent{
		llm:       model,
		modelName: cfg.LLMModel,
		collector: collector,
	}, nil
}

// Model returns the configured model name.
func (a *Agent) Model() string {
	return a.modelName
}

// Invoke sends the planning prompt to the agent and returns its raw text
// response. The response is expected, not guaranteed, to contain a JSON
// work order; extraction and parsing happen downstream.
func (a *Agent) Invoke(ctx context.Context, prompt string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, agentInstructions),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	start := time.Now()
	response, err := a.llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", wrapFatalError(fmt.Errorf("generate: %w", err))
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}
	choice := response.Choices[0]

	if a.collector != nil {
		in, out := tokenUsage(choice.GenerationInfo)
		a.collector.RecordAgentUsage(time.Since(start), in, out)
	}

	return choice.Content, nil
}

// tokenUsage pulls token counts out of provider-specific generation info.
// Providers disagree on key names; unknown layouts report zero.
func tokenUsage(info map[string]any) (input, output int64) {
	for _, key := range []string{"PromptTokens", "prompt_tokens", "input_tokens", "InputTokens"} {
		if v, ok := asInt64(info[key]); ok {
			input = v
			break
		}
	}
	for _, key := range []string{"CompletionTokens", "completion_tokens", "output_tokens", "OutputTokens"} {
		if v, ok := asInt64(info[key]); ok {
			output = v
			break
		}
	}
	return input, output
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	return 0, false
}
