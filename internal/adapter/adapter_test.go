package adapter

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"ollamakit/internal/adapter/mocks"
	"ollamakit/internal/inference"
	"ollamakit/internal/session"
	"ollamakit/pkg/types"
)

func chatBody(frames ...string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(strings.Join(frames, "\n")))
}

func recorder(updates *[]Update) Renderer {
	return RenderFunc(func(u Update) { *updates = append(*updates, u) })
}

func TestModelChoices(t *testing.T) {
	ctrl := gomock.NewController(t)
	reg := mocks.NewMockRegistry(ctrl)
	reg.EXPECT().ListModels(gomock.Any()).Return(types.Success([]types.Model{{Name: "b:1"}, {Name: "a:2"}}))

	names, err := New(reg, nil).ModelChoices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"b:1", "a:2"}, names)
}

func TestModelChoices_NoModels(t *testing.T) {
	ctrl := gomock.NewController(t)
	reg := mocks.NewMockRegistry(ctrl)
	reg.EXPECT().ListModels(gomock.Any()).Return(types.Success([]types.Model{}))
	reg.EXPECT().ListModels(gomock.Any()).Return(types.Failure[[]types.Model](errors.New("Failed to list models: down")))

	a := New(reg, nil)
	_, err := a.ModelChoices(context.Background())
	assert.ErrorIs(t, err, ErrNoModels)
	_, err = a.ModelChoices(context.Background())
	assert.ErrorIs(t, err, ErrNoModels)
	assert.Equal(t, "No models found. Please install a model using 'ollama pull <model-name>'", ErrNoModels.Error())
}

func TestModelChoices_ListFailureKeepsCause(t *testing.T) {
	ctrl := gomock.NewController(t)
	reg := mocks.NewMockRegistry(ctrl)
	down := errors.New("Failed to list models: connection refused")
	reg.EXPECT().ListModels(gomock.Any()).Return(types.Failure[[]types.Model](down))

	_, err := New(reg, nil).ModelChoices(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoModels)
	assert.ErrorIs(t, err, down)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestChatTurn_SameSessionTurnsDoNotInterleave(t *testing.T) {
	ctrl := gomock.NewController(t)
	inf := mocks.NewMockInference(ctrl)
	sess := session.New("m", nil)

	entered := make(chan []types.ChatMessage, 2)
	release := make(chan struct{})
	inf.EXPECT().
		Chat(gomock.Any(), "m", gomock.Any(), gomock.Any()).
		Times(2).
		DoAndReturn(func(_ context.Context, _ string, msgs []types.ChatMessage, _ *types.Options) types.Result[string] {
			entered <- msgs
			last := msgs[len(msgs)-1].Content
			if last == "first" {
				<-release
			}
			return types.Success("re: " + last)
		})

	a := New(nil, inf)
	var wg sync.WaitGroup
	turn := func(prompt string) {
		defer wg.Done()
		_, err := a.ChatTurn(context.Background(), sess, "", prompt, false, nil)
		assert.NoError(t, err)
	}
	wg.Add(1)
	go turn("first")
	first := <-entered
	require.Len(t, first, 1)

	wg.Add(1)
	go turn("second")
	select {
	case msgs := <-entered:
		t.Fatalf("second turn reached the server while the first was in flight: %v", msgs)
	case <-time.After(50 * time.Millisecond):
	}
	close(release)
	wg.Wait()

	second := <-entered
	require.Len(t, second, 3, "second turn sees the whole first exchange")
	assert.Equal(t, []types.ChatMessage{
		{Role: types.RoleUser, Content: "first"},
		{Role: types.RoleAssistant, Content: "re: first"},
		{Role: types.RoleUser, Content: "second"},
		{Role: types.RoleAssistant, Content: "re: second"},
	}, sess.Messages())
}

func TestChatTurn_CancelledWhileWaitingLeavesTranscript(t *testing.T) {
	ctrl := gomock.NewController(t)
	inf := mocks.NewMockInference(ctrl)
	sess := session.New("m", nil)
	end, err := sess.BeginTurn(context.Background())
	require.NoError(t, err)
	defer end()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	var got []Update
	_, err = New(nil, inf).ChatTurn(ctx, sess, "", "q", true, recorder(&got))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, sess.Len())
	require.Len(t, got, 1)
	assert.True(t, got[0].Done)
	assert.True(t, strings.HasPrefix(got[0].Text, "Error: "))
}

func TestChatTurn_StreamingRendersCursorThenFinal(t *testing.T) {
	ctrl := gomock.NewController(t)
	inf := mocks.NewMockInference(ctrl)
	sess := session.New("", &types.Options{Temperature: types.Float(0.7)})

	inf.EXPECT().
		ChatStream(gomock.Any(), "llama3.2:latest", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, msgs []types.ChatMessage, opts *types.Options) types.Result[*inference.Stream] {
			require.Len(t, msgs, 1)
			assert.Equal(t, types.RoleUser, msgs[0].Role)
			assert.Equal(t, 0.7, *opts.Temperature)
			return types.Success(inference.NewChatStream(chatBody(
				`{"message":{"content":"Hel"}}`,
				`{"message":{"content":""}}`,
				`{"message":{"content":"lo"}}`,
			)))
		})

	var got []Update
	reply, err := New(nil, inf).ChatTurn(context.Background(), sess, "llama3.2:latest", "Hello", true, recorder(&got))
	require.NoError(t, err)
	assert.Equal(t, "Hello", reply)

	require.Len(t, got, 3)
	assert.Equal(t, "Hel"+Cursor, got[0].Text)
	assert.Equal(t, "lo", got[1].Delta)
	assert.Equal(t, "Hello"+Cursor, got[1].Text)
	assert.Equal(t, Update{Text: "Hello", Done: true}, got[2])

	msgs := sess.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, types.ChatMessage{Role: types.RoleAssistant, Content: "Hello"}, msgs[1])
	assert.Equal(t, "llama3.2:latest", sess.Model())
}

func TestChatTurn_StreamFailureStoresErrorReply(t *testing.T) {
	ctrl := gomock.NewController(t)
	inf := mocks.NewMockInference(ctrl)
	sess := session.New("m", nil)

	inf.EXPECT().ChatStream(gomock.Any(), "m", gomock.Any(), gomock.Nil()).
		Return(types.Success(inference.NewChatStream(chatBody(`{"message":{"content":"par"}}`, `{broken`))))

	var got []Update
	_, err := New(nil, inf).ChatTurn(context.Background(), sess, "", "q", true, recorder(&got))
	require.Error(t, err)

	last := got[len(got)-1]
	assert.True(t, last.Done)
	assert.Error(t, last.Err)
	assert.True(t, strings.HasPrefix(last.Text, "Error: "))

	msgs := sess.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, last.Text, msgs[1].Content)
}

func TestChatTurn_OpenFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	inf := mocks.NewMockInference(ctrl)
	sess := session.New("m", nil)
	openErr := errors.New("Chat error (404): model not found")

	inf.EXPECT().ChatStream(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(types.Failure[*inference.Stream](openErr))

	_, err := New(nil, inf).ChatTurn(context.Background(), sess, "", "q", true, nil)
	assert.ErrorIs(t, err, openErr)
	assert.Equal(t, "Error: Chat error (404): model not found", sess.Messages()[1].Content)
}

func TestChatTurn_NonStreaming(t *testing.T) {
	ctrl := gomock.NewController(t)
	inf := mocks.NewMockInference(ctrl)
	sess := session.New("m", nil)
	sess.Append(types.RoleUser, "earlier")
	sess.Append(types.RoleAssistant, "reply")

	inf.EXPECT().Chat(gomock.Any(), "m", gomock.Len(3), gomock.Any()).Return(types.Success("Hello! How can I help you?"))

	var got []Update
	reply, err := New(nil, inf).ChatTurn(context.Background(), sess, "", "Hello", false, recorder(&got))
	require.NoError(t, err)
	assert.Equal(t, "Hello! How can I help you?", reply)
	assert.Equal(t, []Update{{Delta: reply, Text: reply, Done: true}}, got)
	assert.Equal(t, 4, sess.Len())
}

func TestGenerateText(t *testing.T) {
	ctrl := gomock.NewController(t)
	inf := mocks.NewMockInference(ctrl)
	opts := &types.Options{NumPredict: types.Int(1000)}

	inf.EXPECT().GenerateStream(gomock.Any(), "m", "Write a haiku", opts).
		Return(types.Success(inference.NewGenerateStream(chatBody(`{"response":"A"}`, `{"response":""}`, `{"response":"B"}`))))
	inf.EXPECT().Generate(gomock.Any(), "m", "p", gomock.Nil()).
		Return(types.Failure[string](errors.New("Generation error (500): boom")))

	a := New(nil, inf)
	var deltas []string
	text, err := a.GenerateText(context.Background(), "m", "Write a haiku", true, opts, RenderFunc(func(u Update) {
		if u.Delta != "" {
			deltas = append(deltas, u.Delta)
		}
	}))
	require.NoError(t, err)
	assert.Equal(t, "AB", text)
	assert.Equal(t, []string{"A", "B"}, deltas)

	_, err = a.GenerateText(context.Background(), "m", "p", false, nil, nil)
	assert.EqualError(t, err, "Generation error (500): boom")
}
