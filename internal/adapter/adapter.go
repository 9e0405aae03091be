// Package adapter turns registry and inference calls into what interactive
// front ends display: model choices, chat turns rendered incrementally and
// a text menu for model management.
package adapter

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_registry.go -package=mocks ollamakit/internal/adapter Registry
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_inference.go -package=mocks ollamakit/internal/adapter Inference

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"ollamakit/internal/inference"
	"ollamakit/internal/session"
	"ollamakit/pkg/types"
)

// Cursor trails the partial reply while fragments are still arriving.
const Cursor = "▌"

// ErrNoModels is returned by ModelChoices when there is nothing to pick.
var ErrNoModels = errors.New("No models found. Please install a model using 'ollama pull <model-name>'")

// Registry is the model registry as seen by front ends.
type Registry interface {
	ListModels(ctx context.Context) types.Result[[]types.Model]
	PullModel(ctx context.Context, name string) types.Result[types.PullResponse]
	DeleteModel(ctx context.Context, name string) types.Result[string]
	FindModel(ctx context.Context, name string) (types.Model, bool, error)
	IsModelInstalled(ctx context.Context, name string) bool
	ShowModel(ctx context.Context, name string) string
}

// Inference is the generation and chat API as seen by front ends.
type Inference interface {
	Generate(ctx context.Context, model, prompt string, opts *types.Options) types.Result[string]
	GenerateStream(ctx context.Context, model, prompt string, opts *types.Options) types.Result[*inference.Stream]
	Chat(ctx context.Context, model string, messages []types.ChatMessage, opts *types.Options) types.Result[string]
	ChatStream(ctx context.Context, model string, messages []types.ChatMessage, opts *types.Options) types.Result[*inference.Stream]
}

// Update is one redraw of the reply area.
type Update struct {
	// Delta is the fragment received since the previous update.
	Delta string
	// Text is what to display: the partial reply followed by Cursor while
	// streaming, the final reply once Done, or "Error: ..." when Err is set.
	Text string
	Done bool
	Err  error
}

// Renderer receives updates as a reply is produced.
type Renderer interface {
	Render(Update)
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(Update)

func (f RenderFunc) Render(u Update) { f(u) }

type discard struct{}

func (discard) Render(Update) {}

// Adapter binds a registry and an inference client for a front end.
type Adapter struct {
	reg Registry
	inf Inference
	log zerolog.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger used for failed turns.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Adapter) { a.log = l }
}

func New(reg Registry, inf Inference, opts ...Option) *Adapter {
	a := &Adapter{reg: reg, inf: inf, log: zerolog.Nop()}
	for _, o := range opts {
		o(a)
	}
	return a
}

func (a *Adapter) Registry() Registry   { return a.reg }
func (a *Adapter) Inference() Inference { return a.inf }

// ModelChoices returns installed model names in registry order. Every
// failure matches ErrNoModels; a listing failure also wraps its cause.
func (a *Adapter) ModelChoices(ctx context.Context) ([]string, error) {
	models, err := a.reg.ListModels(ctx).Unwrap()
	if err != nil {
		return nil, fmt.Errorf("%w (%w)", ErrNoModels, err)
	}
	if len(models) == 0 {
		return nil, ErrNoModels
	}
	names := make([]string, len(models))
	for i, m := range models {
		names[i] = m.Name
	}
	return names, nil
}

// ChatTurn sends prompt as the next user message of sess and records the
// assistant reply. On failure the transcript gets "Error: <message>" as the
// assistant reply and the error is returned. A non-empty model replaces the
// session model. Turns on the same session run one at a time; a turn whose
// ctx ends while waiting leaves the transcript untouched.
func (a *Adapter) ChatTurn(ctx context.Context, sess *session.Session, model, prompt string, streaming bool, r Renderer) (string, error) {
	if r == nil {
		r = discard{}
	}
	end, err := sess.BeginTurn(ctx)
	if err != nil {
		r.Render(Update{Text: errorText(err), Done: true, Err: err})
		return "", err
	}
	defer end()
	if model != "" {
		sess.SetModel(model)
	}
	sess.Append(types.RoleUser, prompt)
	msgs, opts := sess.Messages(), sess.Options()

	var reply string
	if streaming {
		reply, err = render(r, a.inf.ChatStream(ctx, sess.Model(), msgs, opts))
	} else {
		reply, err = renderWhole(r, a.inf.Chat(ctx, sess.Model(), msgs, opts))
	}
	if err != nil {
		a.log.Warn().Err(err).Str("session", sess.ID()).Str("model", sess.Model()).Msg("chat turn failed")
		sess.Append(types.RoleAssistant, errorText(err))
		return "", err
	}
	sess.Append(types.RoleAssistant, reply)
	return reply, nil
}

// GenerateText runs a one-shot completion of prompt.
func (a *Adapter) GenerateText(ctx context.Context, model, prompt string, streaming bool, opts *types.Options, r Renderer) (string, error) {
	if r == nil {
		r = discard{}
	}
	if streaming {
		return render(r, a.inf.GenerateStream(ctx, model, prompt, opts))
	}
	return renderWhole(r, a.inf.Generate(ctx, model, prompt, opts))
}

func render(r Renderer, res types.Result[*inference.Stream]) (string, error) {
	s, err := res.Unwrap()
	if err != nil {
		r.Render(Update{Text: errorText(err), Done: true, Err: err})
		return "", err
	}
	var b strings.Builder
	for frag := range s.All() {
		b.WriteString(frag)
		r.Render(Update{Delta: frag, Text: b.String() + Cursor})
	}
	if err := s.Err(); err != nil {
		r.Render(Update{Text: errorText(err), Done: true, Err: err})
		return "", err
	}
	r.Render(Update{Text: b.String(), Done: true})
	return b.String(), nil
}

func renderWhole(r Renderer, res types.Result[string]) (string, error) {
	text, err := res.Unwrap()
	if err != nil {
		r.Render(Update{Text: errorText(err), Done: true, Err: err})
		return "", err
	}
	r.Render(Update{Delta: text, Text: text, Done: true})
	return text, nil
}

func errorText(err error) string {
	return "Error: " + err.Error()
}
