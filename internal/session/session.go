// Package session keeps chat transcripts for interactive front ends.
//
// A Session is owned by whoever created it; the Store only indexes sessions
// by id for front ends (the web dashboard) that need to find them again.
package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"ollamakit/pkg/types"
)

// Session is one conversation: an ordered transcript plus the model and
// sampling options used for the next turn. It is safe for concurrent use.
type Session struct {
	id      string
	created time.Time

	// turn holds one token while a chat turn runs.
	turn chan struct{}

	mu       sync.Mutex
	model    string
	messages []types.ChatMessage
	opts     *types.Options
	active   time.Time
}

// New returns an empty session with a fresh id.
func New(model string, opts *types.Options) *Session {
	now := time.Now()
	return &Session{
		id:      uuid.NewString(),
		created: now,
		turn:    make(chan struct{}, 1),
		model:   model,
		opts:    opts.Merge(nil),
		active:  now,
	}
}

func (s *Session) ID() string         { return s.id }
func (s *Session) Created() time.Time { return s.created }

// BeginTurn waits until no other turn runs on the session and claims it.
// The returned func releases the turn; extra calls are no-ops.
func (s *Session) BeginTurn(ctx context.Context) (end func(), err error) {
	select {
	case s.turn <- struct{}{}:
		s.touch()
		var once sync.Once
		return func() { once.Do(func() { <-s.turn }) }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Busy reports whether a turn is in flight.
func (s *Session) Busy() bool { return len(s.turn) > 0 }

// LastActive is the time of the last turn or transcript change.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *Session) touch() {
	s.mu.Lock()
	s.active = time.Now()
	s.mu.Unlock()
}

// Append adds a message to the end of the transcript.
func (s *Session) Append(role types.Role, content string) {
	s.mu.Lock()
	s.messages = append(s.messages, types.ChatMessage{Role: role, Content: content})
	s.active = time.Now()
	s.mu.Unlock()
}

// Messages returns a copy of the transcript in insertion order.
func (s *Session) Messages() []types.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Clear empties the transcript. Model and options are kept.
func (s *Session) Clear() {
	s.mu.Lock()
	s.messages = nil
	s.mu.Unlock()
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// SetOptions merges opts over the session's current options.
func (s *Session) SetOptions(opts *types.Options) {
	s.mu.Lock()
	s.opts = s.opts.Merge(opts)
	s.mu.Unlock()
}

// Options returns a copy of the session options, nil when none are set.
func (s *Session) Options() *types.Options {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts.Merge(nil).OrNil()
}

func (s *Session) SetModel(model string) {
	s.mu.Lock()
	s.model = model
	s.mu.Unlock()
}

func (s *Session) Model() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model
}

// Store indexes live sessions by id. Idle sessions past the TTL and the
// least recently active ones beyond the size cap are evicted when a new
// session is created or Sweep runs. Sessions with a turn in flight are kept.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	max      int
	now      func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithTTL evicts sessions idle for longer than d. Zero disables.
func WithTTL(d time.Duration) StoreOption {
	return func(st *Store) { st.ttl = d }
}

// WithMaxSessions caps the number of live sessions. Zero disables.
func WithMaxSessions(n int) StoreOption {
	return func(st *Store) { st.max = n }
}

func NewStore(opts ...StoreOption) *Store {
	st := &Store{sessions: make(map[string]*Session), now: time.Now}
	for _, o := range opts {
		o(st)
	}
	return st
}

// Create makes a new session and registers it.
func (st *Store) Create(model string, opts *types.Options) *Session {
	s := New(model, opts)
	st.mu.Lock()
	st.evictLocked(1)
	st.sessions[s.id] = s
	st.mu.Unlock()
	return s
}

func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Delete drops the session and reports whether it existed.
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	return true
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep evicts expired sessions and returns how many were dropped.
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.evictLocked(0)
}

// Janitor runs Sweep every interval until ctx is done.
func (st *Store) Janitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 || st.ttl <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			st.Sweep()
		}
	}
}

// evictLocked drops idle sessions, then the least recently active ones until
// room new sessions fit under the cap.
func (st *Store) evictLocked(room int) int {
	dropped := 0
	if st.ttl > 0 {
		cutoff := st.now().Add(-st.ttl)
		for id, s := range st.sessions {
			if !s.Busy() && s.LastActive().Before(cutoff) {
				delete(st.sessions, id)
				dropped++
			}
		}
	}
	if st.max <= 0 || len(st.sessions)+room <= st.max {
		return dropped
	}
	idle := make([]*Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		if !s.Busy() {
			idle = append(idle, s)
		}
	}
	sort.Slice(idle, func(i, j int) bool { return idle[i].LastActive().Before(idle[j].LastActive()) })
	for _, s := range idle {
		if len(st.sessions)+room <= st.max {
			break
		}
		delete(st.sessions, s.id)
		dropped++
	}
	return dropped
}
