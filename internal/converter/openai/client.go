// Package openai implements converter.Converter on top of an OpenAI-style
// chat completions endpoint.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mattn/go-runewidth"
	goopenai "github.com/sashabaranov/go-openai"

	"github.com/zhubert/chatsh/internal/converter"
	cerrors "github.com/zhubert/chatsh/internal/errors"
	"github.com/zhubert/chatsh/internal/logger"
)

// DefaultBaseURL is the public OpenAI API.
const DefaultBaseURL = "https://api.openai.com/v1"

// maxErrorBody caps, in terminal columns, how much of a failed reply is
// quoted in errors.
const maxErrorBody = 512

// Options configures a Client.
type Options struct {
	APIKey  string
	BaseURL string // defaults to DefaultBaseURL
	Model   string // defaults to DefaultModel

	// HTTPClient defaults to a client without a timeout; the request is
	// bounded only by ctx.
	HTTPClient *http.Client
}

// Client is a converter backed by the chat completions API.
type Client struct {
	baseURL string
	variant Variant
	api     *goopenai.Client
	log     *slog.Logger
}

// New creates a Client for the variant matching opts.Model.
func New(opts Options) *Client {
	model := opts.Model
	if model == "" {
		model = DefaultModel
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	cfg := goopenai.DefaultConfig(opts.APIKey)
	cfg.BaseURL = baseURL
	if opts.HTTPClient != nil {
		cfg.HTTPClient = opts.HTTPClient
	} else {
		cfg.HTTPClient = &http.Client{}
	}

	return &Client{
		baseURL: baseURL,
		variant: Lookup(model),
		api:     goopenai.NewClientWithConfig(cfg),
		log:     logger.ComponentLogger("Converter"),
	}
}

// Variant returns the variant the client was built for.
func (c *Client) Variant() Variant {
	return c.variant
}

// Convert sends question to the model and normalizes the reply.
func (c *Client) Convert(ctx context.Context, question string) (converter.Detail, error) {
	model := c.variant.Model

	req := goopenai.ChatCompletionRequest{
		Model: model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: c.variant.Prompt()},
			{Role: goopenai.ChatMessageRoleUser, Content: question},
		},
		N: 1,
	}

	c.log.Debug("Sending conversion request", "model", model, "schema", c.variant.Schema.String(), "questionLen", len(question))

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		c.log.Warn("Conversion request failed", "model", model, "error", err)
		return converter.Detail{}, mapError(model, err)
	}

	if len(resp.Choices) != 1 {
		return converter.Detail{}, cerrors.ConversionCandidates(model, len(resp.Choices))
	}

	content := resp.Choices[0].Message.Content
	detail, err := c.variant.parse(content)
	if err != nil {
		return converter.Detail{}, cerrors.ConversionMalformed(model, truncate(content, maxErrorBody), err)
	}

	c.log.Debug("Conversion succeeded", "model", model, "descriptions", len(detail.Descriptions()))
	return detail, nil
}

// mapError turns a go-openai failure into a conversion error.
func mapError(model string, err error) error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return cerrors.ConversionStatus(model, apiErr.HTTPStatusCode, truncate(apiErr.Message, maxErrorBody))
	}

	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		msg := ""
		if reqErr.Err != nil {
			msg = reqErr.Err.Error()
		}
		return cerrors.ConversionStatus(model, reqErr.HTTPStatusCode, truncate(msg, maxErrorBody))
	}

	// A 2xx reply whose body is not a chat completion.
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return cerrors.ConversionUndecodable(model, err)
	}

	return cerrors.ConversionTransport(model, err)
}

// truncate shortens s to at most n terminal columns without splitting a
// character.
func truncate(s string, n int) string {
	return runewidth.Truncate(s, n, "...")
}

// Ensure Client implements converter.Converter at compile time.
var _ converter.Converter = (*Client)(nil)
