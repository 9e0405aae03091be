package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ollamakit/pkg/types"
)

// fakeServer is a model server with two installed models. Chat echoes the
// last message back.
type fakeServer struct {
	mu       sync.Mutex
	chatDown bool
	pulled   []string
	lastGen  types.GenerateRequest
	lastChat types.ChatRequest
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/tags", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(types.TagsResponse{Models: []types.Model{
			{Name: "llama3.2:latest", Size: 2019393189, Details: types.ModelDetails{Family: "llama", Format: "gguf"}},
			{Name: "qwen2.5:0.5b", Size: 397821319},
		}})
	})
	mux.HandleFunc("/pull", func(w http.ResponseWriter, r *http.Request) {
		var req types.PullRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.pulled = append(f.pulled, req.Name)
		f.mu.Unlock()
		_, _ = io.WriteString(w, `{"status":"success"}`)
	})
	mux.HandleFunc("/delete", func(w http.ResponseWriter, r *http.Request) {
		var req types.DeleteRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Model != "llama3.2:latest" {
			http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
		}
	})
	mux.HandleFunc("/generate", func(w http.ResponseWriter, r *http.Request) {
		var req types.GenerateRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.lastGen = req
		f.mu.Unlock()
		if req.Stream {
			_, _ = io.WriteString(w, "{\"response\":\"Hel\"}\n{\"response\":\"\"}\n{\"response\":\"lo\",\"done\":true}\n")
			return
		}
		_, _ = io.WriteString(w, `{"response":"Hello","done":true}`)
	})
	mux.HandleFunc("/chat", func(w http.ResponseWriter, r *http.Request) {
		var req types.ChatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.lastChat = req
		down := f.chatDown
		f.mu.Unlock()
		if down {
			http.Error(w, "overloaded", http.StatusInternalServerError)
			return
		}
		reply := "echo: " + req.Messages[len(req.Messages)-1].Content
		if req.Stream {
			half := len(reply) / 2
			_ = json.NewEncoder(w).Encode(types.ChatResponse{Message: &types.ChatMessage{Role: types.RoleAssistant, Content: reply[:half]}})
			_ = json.NewEncoder(w).Encode(types.ChatResponse{Message: &types.ChatMessage{Role: types.RoleAssistant, Content: reply[half:]}, Done: true})
			return
		}
		_ = json.NewEncoder(w).Encode(types.ChatResponse{Message: &types.ChatMessage{Role: types.RoleAssistant, Content: reply}, Done: true})
	})
	return mux
}

func newFake(t *testing.T) (*fakeServer, string) {
	t.Helper()
	f := &fakeServer{}
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	// Keep the developer's own config out of the way.
	t.Setenv("HOME", t.TempDir())
	return f, srv.URL
}

// run executes the CLI with stdin and returns what it printed.
func run(t *testing.T, baseURL, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := buildRootCmd(newApp(strings.NewReader(stdin), &out, &errOut))
	root.SetArgs(append([]string{"--base-url", baseURL}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestModelsList(t *testing.T) {
	_, url := newFake(t)
	out, err := run(t, url, "", "models", "list")
	require.NoError(t, err)
	assert.Equal(t, "Found 2 models:\n1. llama3.2:latest (2.0GB)\n2. qwen2.5:0.5b (0.4GB)\n", out)
}

func TestModelsList_JSON(t *testing.T) {
	_, url := newFake(t)
	out, err := run(t, url, "", "models", "list", "--json")
	require.NoError(t, err)
	var models []types.Model
	require.NoError(t, json.Unmarshal([]byte(out), &models))
	require.Len(t, models, 2)
	assert.Equal(t, "llama", models[0].Details.Family)
}

func TestModelsList_ServerDown(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	url := "http://" + ln.Addr().String()
	require.NoError(t, ln.Close())

	_, err = run(t, url, "", "models", "list")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Failed to list models: "), err.Error())
}

func TestModelsShowAndCheck(t *testing.T) {
	_, url := newFake(t)
	out, err := run(t, url, "", "models", "show", "llama3.2:latest")
	require.NoError(t, err)
	assert.Contains(t, out, "Size: 2.0GB")
	assert.Contains(t, out, "Family: llama")

	out, err = run(t, url, "", "models", "show", "llama3.2")
	require.NoError(t, err)
	assert.Contains(t, out, "not found")

	out, err = run(t, url, "", "models", "check", "qwen2.5:0.5b")
	require.NoError(t, err)
	assert.Equal(t, "qwen2.5:0.5b: ✅ Installed\n", out)

	out, err = run(t, url, "", "models", "check", "mistral")
	var ee *exitError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, 1, ee.code)
	assert.Equal(t, "mistral: ❌ Not installed\n", out)
}

func TestModelsPull(t *testing.T) {
	f, url := newFake(t)
	out, err := run(t, url, "n\n", "models", "pull", "llama3.2:1b")
	require.NoError(t, err)
	assert.Contains(t, out, "Operation cancelled.")
	assert.Empty(t, f.pulled)

	out, err = run(t, url, "y\n", "models", "pull", "llama3.2:1b")
	require.NoError(t, err)
	assert.Contains(t, out, "✅ Model pulled successfully!")

	_, err = run(t, url, "", "models", "pull", "--yes", "qwen2.5:0.5b")
	require.NoError(t, err)
	assert.Equal(t, []string{"llama3.2:1b", "qwen2.5:0.5b"}, f.pulled)
}

func TestModelsDelete(t *testing.T) {
	_, url := newFake(t)
	out, err := run(t, url, "", "models", "delete", "-y", "llama3.2:latest")
	require.NoError(t, err)
	assert.Equal(t, "✅ Model deleted successfully\n", out)

	_, err = run(t, url, "", "models", "delete", "-y", "missing")
	require.Error(t, err)
	assert.Equal(t, "Model not found", err.Error())
}

func TestGenerate(t *testing.T) {
	f, url := newFake(t)
	out, err := run(t, url, "", "generate", "--model", "qwen2.5:0.5b", "--temperature", "1.2", "Say", "hello")
	require.NoError(t, err)
	assert.Equal(t, "Hello\n", out)

	assert.Equal(t, "qwen2.5:0.5b", f.lastGen.Model)
	assert.Equal(t, "Say hello", f.lastGen.Prompt)
	assert.False(t, f.lastGen.Stream)
	require.NotNil(t, f.lastGen.Options)
	assert.Equal(t, 1.2, *f.lastGen.Options.Temperature)
	assert.Nil(t, f.lastGen.Options.NumPredict, "unset fields are left to the server")
}

func TestGenerate_NoSamplingSentByDefault(t *testing.T) {
	f, url := newFake(t)
	_, err := run(t, url, "", "generate", "--model", "qwen2.5:0.5b", "hi")
	require.NoError(t, err)
	assert.Nil(t, f.lastGen.Options)
}

func TestGenerate_ConfiguredZeroTemperature(t *testing.T) {
	f, url := newFake(t)
	t.Setenv("OLLAMAKIT_OPTIONS_TEMPERATURE", "0")
	_, err := run(t, url, "", "generate", "--model", "qwen2.5:0.5b", "hi")
	require.NoError(t, err)
	require.NotNil(t, f.lastGen.Options)
	require.NotNil(t, f.lastGen.Options.Temperature)
	assert.Equal(t, 0.0, *f.lastGen.Options.Temperature)
	assert.Nil(t, f.lastGen.Options.NumPredict)
}

func TestGenerate_StreamAndDefaultModel(t *testing.T) {
	f, url := newFake(t)
	out, err := run(t, url, "", "generate", "--stream", "hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello\n", out)
	assert.True(t, f.lastGen.Stream)
	assert.Equal(t, "llama3.2:latest", f.lastGen.Model, "first installed model")
}

func TestGenerate_RejectsOutOfRangeSettings(t *testing.T) {
	_, url := newFake(t)
	_, err := run(t, url, "", "generate", "--temperature", "3", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "temperature must be between 0 and 2")
}

func TestChat(t *testing.T) {
	f, url := newFake(t)
	out, err := run(t, url, "hi\n/clear\n\nthere\n/exit\n", "chat", "--model", "llama3.2:latest", "--no-stream")
	require.NoError(t, err)
	assert.Contains(t, out, "echo: hi\n")
	assert.Contains(t, out, "Chat history cleared.")
	assert.Contains(t, out, "echo: there\n")
	assert.Len(t, f.lastChat.Messages, 1, "history cleared before the second turn")
	assert.False(t, f.lastChat.Stream)
}

func TestChat_StreamingKeepsHistory(t *testing.T) {
	f, url := newFake(t)
	out, err := run(t, url, "one\ntwo\n", "chat")
	require.NoError(t, err)
	assert.Contains(t, out, "echo: one\n")
	assert.Contains(t, out, "echo: two\n")
	require.Len(t, f.lastChat.Messages, 3)
	assert.Equal(t, "echo: one", f.lastChat.Messages[1].Content)
	assert.True(t, f.lastChat.Stream)
}

func TestChat_FailureIsPrintedAndRecorded(t *testing.T) {
	f, url := newFake(t)
	f.chatDown = true
	out, err := run(t, url, "hi\nagain\n", "chat", "-m", "llama3.2:latest")
	require.NoError(t, err)
	assert.Contains(t, out, "Error: Chat error (500): overloaded")
	require.Len(t, f.lastChat.Messages, 3)
	assert.Equal(t, types.RoleAssistant, f.lastChat.Messages[1].Role)
	assert.True(t, strings.HasPrefix(f.lastChat.Messages[1].Content, "Error: Chat error (500)"))
}

func TestMenu(t *testing.T) {
	_, url := newFake(t)
	out, err := run(t, url, "1\n6\n", "menu")
	require.NoError(t, err)
	assert.Contains(t, out, "Interactive Model Management")
	assert.Contains(t, out, "1. llama3.2:latest (2.0GB)")
	assert.Contains(t, out, "Goodbye!")
}

func TestConfigShow(t *testing.T) {
	_, url := newFake(t)
	t.Setenv("OLLAMAKIT_DEFAULT_MODEL", "qwen2.5:0.5b")
	out, err := run(t, url, "", "config", "show", "-o", "json")
	require.NoError(t, err)
	var cfg map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, "qwen2.5:0.5b", cfg["default_model"])
	assert.Equal(t, url, cfg["base_url"], "flag wins over defaults")

	out, err = run(t, url, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "default_model:")
	assert.Contains(t, out, "qwen2.5:0.5b")

	out, err = run(t, url, "", "config", "show", "-o", "toml")
	require.NoError(t, err)
	assert.Contains(t, out, "default_model = ")
	assert.Contains(t, out, "[options]")

	_, err = run(t, url, "", "config", "show", "-o", "xml")
	assert.Error(t, err)
}

func TestConfigSchema(t *testing.T) {
	_, url := newFake(t)
	out, err := run(t, url, "", "config", "schema")
	require.NoError(t, err)
	assert.Contains(t, out, `"base_url"`)
	assert.True(t, json.Valid([]byte(out)))
}

func TestInvalidFlagsFailValidation(t *testing.T) {
	_, url := newFake(t)
	_, err := run(t, url, "", "--log-format", "xml", "models", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_format")

	_, err = run(t, "localhost:11434", "", "models", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_url")
}

func TestCompletion(t *testing.T) {
	var out bytes.Buffer
	root := buildRootCmd(newApp(strings.NewReader(""), &out, io.Discard))
	root.SetArgs([]string{"completion", "bash"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "bash completion")
}

func TestServe(t *testing.T) {
	_, url := newFake(t)
	a := newApp(strings.NewReader(""), io.Discard, io.Discard)
	root := buildRootCmd(a)
	require.NoError(t, root.ParseFlags([]string{"--base-url", url}))
	require.NoError(t, a.setup(root))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.serve(ctx, ln) }()

	base := "http://" + ln.Addr().String()
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/readyz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	resp, err := http.Get(base + "/api/models")
	require.NoError(t, err)
	var names types.ModelNamesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&names))
	resp.Body.Close()
	assert.Equal(t, []string{"llama3.2:latest", "qwen2.5:0.5b"}, names.Models)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop")
	}
}
