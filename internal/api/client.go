// Package api wraps the OpenAI-compatible chat completion API used by rpchat.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	apierrors "github.com/diogo/rpchat/internal/errors"
	"github.com/diogo/rpchat/internal/models"
)

// Stream delivers the text fragments of one streamed completion.
// Recv returns io.EOF once the stream is exhausted.
type Stream interface {
	Recv() (string, error)
	Close() error
}

// ChatStreamer opens streaming chat completions.
type ChatStreamer interface {
	StreamChat(ctx context.Context, model string, messages []models.Message) (Stream, error)
}

// Client is the production ChatStreamer backed by go-openai.
type Client struct {
	api        *openai.Client
	baseURL    string
	httpClient *http.Client
	headers    map[string]string
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client used for requests
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithHeader adds a header to every request (e.g. OpenRouter's HTTP-Referer or X-Title)
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// NewClient creates a client for the API at baseURL
func NewClient(apiKey, baseURL string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if baseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		headers:    make(map[string]string),
	}

	for _, opt := range opts {
		opt(c)
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	cfg.HTTPClient = c.httpClient
	if len(c.headers) > 0 {
		cfg.HTTPClient = &http.Client{
			Transport: &headerTransport{base: c.httpClient.Transport, headers: c.headers},
			Timeout:   c.httpClient.Timeout,
		}
	}
	c.api = openai.NewClientWithConfig(cfg)

	return c, nil
}

// BaseURL returns the endpoint the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// StreamChat opens a streaming completion for the full message history.
// It returns as soon as the server has accepted the request.
func (c *Client) StreamChat(ctx context.Context, model string, messages []models.Message) (Stream, error) {
	req := openai.ChatCompletionRequest{
		Model:    model,
		Messages: toOpenAIMessages(messages),
		Stream:   true,
	}

	s, err := c.api.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, apierrors.NewStreamError(model, true, wrapHTTPError(err))
	}
	return &completionStream{stream: s, model: model}, nil
}

func toOpenAIMessages(messages []models.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		out[i] = openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		}
	}
	return out
}

// completionStream adapts go-openai's stream to Stream
type completionStream struct {
	stream *openai.ChatCompletionStream
	model  string
}

// Recv skips chunks that carry no text (role headers, usage chunks).
func (s *completionStream) Recv() (string, error) {
	for {
		resp, err := s.stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", io.EOF
			}
			return "", apierrors.NewStreamError(s.model, false, wrapHTTPError(err))
		}
		if len(resp.Choices) == 0 {
			continue
		}
		if text := resp.Choices[0].Delta.Content; text != "" {
			return text, nil
		}
	}
}

func (s *completionStream) Close() error {
	return s.stream.Close()
}

// HTTPError carries the status code of a failed API request.
type HTTPError struct {
	Status int
	Err    error
}

func (e *HTTPError) Error() string {
	return e.Err.Error()
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// StatusCode implements errors.HTTPStatusError
func (e *HTTPError) StatusCode() int {
	return e.Status
}

func wrapHTTPError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode > 0 {
		return &HTTPError{Status: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode > 0 {
		return &HTTPError{Status: reqErr.HTTPStatusCode, Err: err}
	}
	return err
}

type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	return base.RoundTrip(req)
}
