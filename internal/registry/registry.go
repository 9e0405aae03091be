// Package registry lists, inspects, installs and removes models on the
// model server. Every operation reports failure as a value: a failed
// types.Result or a human-readable string.
//
// Name lookups are exact and case-sensitive. "llama3.2" does not match
// "llama3.2:latest"; no default tag is assumed.
package registry

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"ollamakit/internal/transport"
	"ollamakit/pkg/types"
)

// ErrModelNotFound is the failure of DeleteModel when the server answers 404.
var ErrModelNotFound = errors.New("Model not found") //nolint:staticcheck // user-facing message

// DeletedMessage is the output of a successful DeleteModel.
const DeletedMessage = "Model deleted successfully"

// Transport is the subset of transport.Client the registry needs.
type Transport interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

// Client talks to the tags, pull and delete endpoints.
type Client struct {
	t Transport
}

// New returns a registry client over t.
func New(t Transport) *Client {
	return &Client{t: t}
}

// listError prefixes list failures the way callers display them.
type listError struct{ err error }

func (e listError) Error() string { return "Failed to list models: " + e.err.Error() }
func (e listError) Unwrap() error { return e.err }

// ListModels returns the installed models in server order.
func (c *Client) ListModels(ctx context.Context) types.Result[[]types.Model] {
	var resp types.TagsResponse
	if err := c.t.Do(ctx, http.MethodGet, "/tags", nil, &resp); err != nil {
		return types.Failure[[]types.Model](listError{err: err})
	}
	if resp.Models == nil {
		resp.Models = []types.Model{}
	}
	return types.Success(resp.Models)
}

// PullModel installs name and blocks until the server reports completion.
func (c *Client) PullModel(ctx context.Context, name string) types.Result[types.PullResponse] {
	var resp types.PullResponse
	req := types.PullRequest{Name: name, Stream: false}
	if err := c.t.Do(ctx, http.MethodPost, "/pull", req, &resp); err != nil {
		return types.Failure[types.PullResponse](err)
	}
	return types.Success(resp)
}

// DeleteModel removes name. A 404 answer becomes ErrModelNotFound.
func (c *Client) DeleteModel(ctx context.Context, name string) types.Result[string] {
	err := c.t.Do(ctx, http.MethodDelete, "/delete", types.DeleteRequest{Model: name}, nil)
	switch {
	case err == nil:
		return types.Success(DeletedMessage)
	case transport.IsNotFound(err):
		return types.Failure[string](ErrModelNotFound)
	default:
		return types.Failure[string](err)
	}
}

// FindModel returns the model whose name equals name exactly.
func (c *Client) FindModel(ctx context.Context, name string) (types.Model, bool, error) {
	models, err := c.ListModels(ctx).Unwrap()
	if err != nil {
		return types.Model{}, false, err
	}
	for _, m := range models {
		if m.Name == name {
			return m, true, nil
		}
	}
	return types.Model{}, false, nil
}

// IsModelInstalled reports whether name is installed. A failed registry
// call answers false.
func (c *Client) IsModelInstalled(ctx context.Context, name string) bool {
	_, ok, err := c.FindModel(ctx, name)
	return err == nil && ok
}

// ShowModel returns a multi-line summary of name, or an error line
// containing "not found" when no model matches exactly.
func (c *Client) ShowModel(ctx context.Context, name string) string {
	var resp types.TagsResponse
	if err := c.t.Do(ctx, http.MethodGet, "/tags", nil, &resp); err != nil {
		return fmt.Sprintf("Error showing model info: %v", err)
	}
	for _, m := range resp.Models {
		if m.Name == name {
			return Describe(m)
		}
	}
	return fmt.Sprintf("Error showing model info: Model '%s' not found", name)
}
