package inference

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"strings"
	"sync"

	"ollamakit/internal/transport"
	"ollamakit/pkg/types"
)

const maxFrameBytes = 4 << 20

// extractor pulls the text fragment out of one decoded frame. ok is false
// when the frame carries no fragment.
type extractor func(frame []byte) (text string, ok bool, err error)

func generateFragment(frame []byte) (string, bool, error) {
	var f types.GenerateResponse
	if err := json.Unmarshal(frame, &f); err != nil {
		return "", false, err
	}
	if f.Response == nil || *f.Response == "" {
		return "", false, nil
	}
	return *f.Response, true, nil
}

func chatFragment(frame []byte) (string, bool, error) {
	var f types.ChatResponse
	if err := json.Unmarshal(frame, &f); err != nil {
		return "", false, err
	}
	if f.Message == nil || f.Message.Content == "" {
		return "", false, nil
	}
	return f.Message.Content, true, nil
}

// Stream is a forward-only sequence of text fragments read from a live
// response. It holds the connection open until Close, the end of an All
// loop, or cancellation of the context it was opened with.
//
//	for s.Next() {
//		fmt.Print(s.Text())
//	}
//	if err := s.Err(); err != nil { ... }
//	s.Close()
type Stream struct {
	endpoint string
	body     io.ReadCloser
	scanner  *bufio.Scanner
	extract  extractor

	cur  string
	err  error
	done bool

	closeOnce sync.Once
	closeErr  error
}

func newStream(endpoint string, body io.ReadCloser, extract extractor) *Stream {
	sc := bufio.NewScanner(body)
	sc.Buffer(make([]byte, 0, 64<<10), maxFrameBytes)
	return &Stream{endpoint: endpoint, body: body, scanner: sc, extract: extract}
}

// NewGenerateStream reads generate frames from body. The client builds
// streams itself; this is for callers holding an NDJSON body of their own.
func NewGenerateStream(body io.ReadCloser) *Stream {
	return newStream(pathGenerate, body, generateFragment)
}

// NewChatStream reads chat frames from body.
func NewChatStream(body io.ReadCloser) *Stream {
	return newStream(pathChat, body, chatFragment)
}

// Next advances to the next non-empty fragment. It returns false at the end
// of the response or on the first failure; check Err afterwards.
func (s *Stream) Next() bool {
	if s.done {
		return false
	}
	for s.scanner.Scan() {
		frame := bytes.TrimSpace(s.scanner.Bytes())
		if len(frame) == 0 {
			continue
		}
		text, ok, err := s.extract(frame)
		if err != nil {
			s.fail(fmt.Errorf("%w: decode frame: %v", transport.ErrMalformedResponse, err))
			return false
		}
		if !ok {
			continue
		}
		s.cur = text
		transport.CountFragment(s.endpoint)
		return true
	}
	if err := s.scanner.Err(); err != nil {
		s.fail(fmt.Errorf("read stream: %w", err))
		return false
	}
	s.done = true
	s.cur = ""
	return false
}

func (s *Stream) fail(err error) {
	s.err = err
	s.done = true
	s.cur = ""
}

// Text returns the fragment produced by the last successful Next.
func (s *Stream) Text() string { return s.cur }

// Err returns the failure that ended iteration, or nil after a clean end.
func (s *Stream) Err() error { return s.err }

// Close releases the connection. It is safe to call more than once.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() {
		s.done = true
		s.closeErr = s.body.Close()
	})
	return s.closeErr
}

// All yields every remaining fragment and closes the stream when the loop
// ends, early break included. Check Err after the loop.
func (s *Stream) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		defer s.Close()
		for s.Next() {
			if !yield(s.Text()) {
				return
			}
		}
	}
}

// Collect drains the stream, closes it and returns the concatenated text.
// On failure the text read so far is returned with the error.
func (s *Stream) Collect() (string, error) {
	var b strings.Builder
	for frag := range s.All() {
		b.WriteString(frag)
	}
	return b.String(), s.Err()
}
