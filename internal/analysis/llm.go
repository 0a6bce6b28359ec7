// Package analysis wraps the Anthropic API for the two AI features the
// catalog feeds: business-commercialization analysis of one patent, and
// matching a free-text problem statement against candidate patents.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const systemPrompt = "You are a technology-transfer analyst assessing government patents for commercial potential. Respond with strict JSON only."

type llmFailureClass int

const (
	failureTimeout llmFailureClass = iota
	failureRateLimit
	failureServer
	failureClient
)

type LLMCaller interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

type AnthropicCaller struct {
	messages AnthropicMessager
}

type AnthropicMessager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

type AnthropicClientCreator func(apiKey string) AnthropicMessager

func defaultAnthropicCreator(apiKey string) AnthropicMessager {
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &c.Messages
}

var newAnthropicClient AnthropicClientCreator = defaultAnthropicCreator

func NewAnthropicCallerFromEnv() (*AnthropicCaller, error) {
	apiKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	if apiKey == "" {
		return nil, errors.New("ANTHROPIC_API_KEY not configured")
	}
	return &AnthropicCaller{messages: newAnthropicClient(apiKey)}, nil
}

func (a *AnthropicCaller) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	resp, err := a.messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.ModelClaudeSonnet4_20250514,
		MaxTokens:   4096,
		System:      []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))},
		Temperature: anthropic.Float(0),
	})
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	return sb.String(), nil
}

// generate runs one generate→parse→validate loop with up to three
// attempts, feeding parse or validation failures back into the prompt.
func generate(ctx context.Context, caller LLMCaller, name, prompt string, out any, validate func() error) error {
	feedback := ""
	for attempt := 1; attempt <= 3; attempt++ {
		fullPrompt := prompt + "\n\nRespond with only valid JSON matching the schema."
		if feedback != "" {
			fullPrompt += "\n\n" + feedback
		}

		raw, err := caller.GenerateJSON(ctx, fullPrompt)
		if err != nil {
			class := classifyTransportError(err)
			if class == failureTimeout || class == failureRateLimit || class == failureServer {
				if attempt < 3 {
					time.Sleep(backoffDelay(attempt))
					continue
				}
			}
			return fmt.Errorf("%s transport failure: %w", name, err)
		}

		clean := stripCodeFences(strings.TrimSpace(raw))
		if clean == "" {
			feedback = "Your previous response was empty. Respond with valid JSON."
			continue
		}
		if err := json.Unmarshal([]byte(clean), out); err != nil {
			feedback = "Your previous response was not valid JSON. Respond with only valid JSON."
			continue
		}
		if err := validate(); err != nil {
			feedback = fmt.Sprintf("Your response failed validation: %s. Fix these issues.", err)
			continue
		}
		return nil
	}
	return fmt.Errorf("%s failed after retries", name)
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		parts := strings.SplitN(s, "\n", 2)
		if len(parts) == 2 {
			s = parts[1]
		}
		s = strings.TrimPrefix(s, "json")
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}

func classifyTransportError(err error) llmFailureClass {
	msg := strings.ToLower(err.Error())
	if errors.Is(err, context.DeadlineExceeded) {
		return failureTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return failureTimeout
	}
	switch {
	case strings.Contains(msg, "429"):
		return failureRateLimit
	case strings.Contains(msg, "status code: 5") || strings.Contains(msg, "server error"):
		return failureServer
	case strings.Contains(msg, "status code: 4"):
		return failureClient
	default:
		return failureServer
	}
}

func backoffDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 1 * time.Second
	}
	return time.Duration(attempt*attempt) * time.Second
}
