package judge

import (
	"context"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/winematch/backend/internal/domain"
)

const (
	ProviderNone      = "none"
	ProviderAnthropic = "anthropic"

	defaultModel       = "claude-haiku-4-5-20251001"
	defaultMaxTokens   = 1000
	defaultTemperature = 0.1
	systemPrompt       = "You are an expert wine sommelier and data analyst. Answer with a single JSON object and nothing else."
)

// Options configures the semantic judge
type Options struct {
	Provider   string
	APIKey     string
	Model      string
	BaseURL    string
	MaxTokens  int64
	MaxRetries int
	Timeout    time.Duration
}

// AnthropicJudge answers judge prompts through the Anthropic Messages API
type AnthropicJudge struct {
	client    sdk.Client
	model     string
	maxTokens int64
}

// New builds the judge selected by opts.Provider. It returns a nil judge for
// provider "none" so callers fall back to the algorithmic strategy.
func New(opts Options) (domain.SemanticJudge, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "", ProviderNone:
		return nil, nil
	case ProviderAnthropic:
		if opts.APIKey == "" {
			return nil, eris.New("anthropic judge requires an API key")
		}
		return NewAnthropicJudge(opts), nil
	default:
		return nil, eris.Errorf("unknown judge provider %q", opts.Provider)
	}
}

// NewAnthropicJudge creates a judge backed by the official SDK
func NewAnthropicJudge(opts Options) *AnthropicJudge {
	if opts.Model == "" {
		opts.Model = defaultModel
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaultMaxTokens
	}

	clientOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(opts.MaxRetries),
	}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.Timeout > 0 {
		clientOpts = append(clientOpts, option.WithRequestTimeout(opts.Timeout))
	}

	return &AnthropicJudge{
		client:    sdk.NewClient(clientOpts...),
		model:     opts.Model,
		maxTokens: opts.MaxTokens,
	}
}

// Judge sends one prompt and returns the concatenated text of the reply
func (j *AnthropicJudge) Judge(ctx context.Context, prompt string) (string, error) {
	msg, err := j.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:       sdk.Model(j.model),
		MaxTokens:   j.maxTokens,
		Temperature: sdk.Float(defaultTemperature),
		System:      []sdk.TextBlockParam{{Text: systemPrompt}},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", eris.Wrap(domain.ErrJudgeUnavailable, err.Error())
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	zap.L().Debug("judge reply",
		zap.String("model", string(msg.Model)),
		zap.Int64("input_tokens", msg.Usage.InputTokens),
		zap.Int64("output_tokens", msg.Usage.OutputTokens),
	)

	if sb.Len() == 0 {
		return "", eris.Wrap(domain.ErrJudgeResponse, "reply has no text content")
	}
	return sb.String(), nil
}
