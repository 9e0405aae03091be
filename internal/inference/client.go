// Package inference sends generation and chat requests, either waiting for
// the complete reply or exposing it as a Stream of text fragments.
package inference

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"ollamakit/internal/transport"
	"ollamakit/pkg/types"
)

const (
	pathGenerate = "/generate"
	pathChat     = "/chat"
)

// Op names the operation in failure messages.
type Op string

const (
	OpGenerate Op = "Generation"
	OpChat     Op = "Chat"
)

// Error is the failure carried by a Result when a request did not produce
// a reply. Its text is "<Op> error (<status>): <body>" for HTTP status
// failures and "<Op> error: <cause>" otherwise.
type Error struct {
	Op  Op
	Err error
}

func (e *Error) Error() string {
	var se *transport.StatusError
	if errors.As(e.Err, &se) {
		return fmt.Sprintf("%s error (%d): %s", e.Op, se.Code, se.Body)
	}
	return fmt.Sprintf("%s error: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Transport is the subset of transport.Client the inference client needs.
type Transport interface {
	Do(ctx context.Context, method, path string, body, out any) error
	Stream(ctx context.Context, path string, body any) (io.ReadCloser, error)
}

// Client talks to the generate and chat endpoints.
type Client struct {
	t Transport
}

// New returns an inference client over t.
func New(t Transport) *Client {
	return &Client{t: t}
}

// Generate returns the complete reply to prompt.
func (c *Client) Generate(ctx context.Context, model, prompt string, opts *types.Options) types.Result[string] {
	req := types.GenerateRequest{Model: model, Prompt: prompt, Stream: false, Options: opts.OrNil()}
	var resp types.GenerateResponse
	if err := c.t.Do(ctx, http.MethodPost, pathGenerate, req, &resp); err != nil {
		return types.Failure[string](&Error{Op: OpGenerate, Err: err})
	}
	if resp.Response == nil {
		return types.Failure[string](&Error{Op: OpGenerate, Err: fmt.Errorf("%w: missing \"response\" field", transport.ErrMalformedResponse)})
	}
	return types.Success(*resp.Response)
}

// GenerateStream opens a streaming generation. The caller owns the Stream.
func (c *Client) GenerateStream(ctx context.Context, model, prompt string, opts *types.Options) types.Result[*Stream] {
	req := types.GenerateRequest{Model: model, Prompt: prompt, Stream: true, Options: opts.OrNil()}
	body, err := c.t.Stream(ctx, pathGenerate, req)
	if err != nil {
		return types.Failure[*Stream](&Error{Op: OpGenerate, Err: err})
	}
	return types.Success(newStream(pathGenerate, body, generateFragment))
}

// Chat returns the complete assistant reply to messages.
func (c *Client) Chat(ctx context.Context, model string, messages []types.ChatMessage, opts *types.Options) types.Result[string] {
	req := types.ChatRequest{Model: model, Messages: nonNil(messages), Stream: false, Options: opts.OrNil()}
	var resp types.ChatResponse
	if err := c.t.Do(ctx, http.MethodPost, pathChat, req, &resp); err != nil {
		return types.Failure[string](&Error{Op: OpChat, Err: err})
	}
	if resp.Message == nil {
		return types.Failure[string](&Error{Op: OpChat, Err: fmt.Errorf("%w: missing \"message\" field", transport.ErrMalformedResponse)})
	}
	return types.Success(resp.Message.Content)
}

// ChatStream opens a streaming chat. The caller owns the Stream.
func (c *Client) ChatStream(ctx context.Context, model string, messages []types.ChatMessage, opts *types.Options) types.Result[*Stream] {
	req := types.ChatRequest{Model: model, Messages: nonNil(messages), Stream: true, Options: opts.OrNil()}
	body, err := c.t.Stream(ctx, pathChat, req)
	if err != nil {
		return types.Failure[*Stream](&Error{Op: OpChat, Err: err})
	}
	return types.Success(newStream(pathChat, body, chatFragment))
}

// nonNil keeps "messages" encoded as [] rather than null.
func nonNil(m []types.ChatMessage) []types.ChatMessage {
	if m == nil {
		return []types.ChatMessage{}
	}
	return m
}
