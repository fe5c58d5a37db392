package session

import (
	"container/list"
	"sync"
	"time"

	"github.com/google/uuid"

	"product-details/internal/selection"
)

// Session is one browser's selection state. Lock it for the whole of an
// event so that the view sees one event at a time.
type Session struct {
	ID string

	mu     sync.Mutex
	source *selection.SourceList
	view   *selection.View
	nav    *selection.Recorder

	// guarded by Store.mu
	expiresAt time.Time
	elem      *list.Element
}

// Do runs fn with exclusive access to the session's view and source list and
// returns the navigation target fn triggered, if any.
func (s *Session) Do(fn func(source *selection.SourceList, view *selection.View)) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.Take()
	fn(s.source, s.view)
	return s.nav.Take()
}

// ViewFactory builds the view for a new session.
type ViewFactory func(source *selection.SourceList, nav selection.Navigator) *selection.View

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithMaxSessions caps the number of live sessions. Creating a session past
// the cap evicts the least recently used one. n <= 0 means no cap.
func WithMaxSessions(n int) StoreOption {
	return func(s *Store) {
		s.max = n
	}
}

// Store keeps sessions in memory with an idle TTL. Recency is tracked in a
// list with the most recently used session at the front.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	recent   *list.List
	ttl      time.Duration
	max      int
	evicted  int
	newView  ViewFactory
	now      func() time.Time
}

func NewStore(ttl time.Duration, newView ViewFactory, opts ...StoreOption) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		recent:   list.New(),
		ttl:      ttl,
		newView:  newView,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns a live session and extends its lifetime.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if now.After(sess.expiresAt) {
		s.remove(sess)
		return nil, false
	}
	sess.expiresAt = now.Add(s.ttl)
	s.recent.MoveToFront(sess.elem)
	return sess, true
}

// Create starts a session with an empty source list.
func (s *Store) Create() *Session {
	source := selection.NewSourceList(nil)
	nav := &selection.Recorder{}
	sess := &Session{
		ID:     uuid.NewString(),
		source: source,
		nav:    nav,
		view:   s.newView(source, nav),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for s.max > 0 && len(s.sessions) >= s.max {
		oldest := s.recent.Back()
		if oldest == nil {
			break
		}
		s.remove(oldest.Value.(*Session))
		s.evicted++
	}
	sess.expiresAt = s.now().Add(s.ttl)
	sess.elem = s.recent.PushFront(sess)
	s.sessions[sess.ID] = sess
	return sess
}

// GetOrCreate returns the session for id, or a fresh one when id is unknown
// or expired.
func (s *Store) GetOrCreate(id string) (*Session, bool) {
	if id != "" {
		if sess, ok := s.Get(id); ok {
			return sess, false
		}
	}
	return s.Create(), true
}

// Sweep drops expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for e := s.recent.Back(); e != nil; {
		prev := e.Prev()
		sess := e.Value.(*Session)
		if now.After(sess.expiresAt) {
			s.remove(sess)
			removed++
		}
		e = prev
	}
	return removed
}

// Len reports the number of tracked sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Evicted reports how many sessions were dropped to respect the cap.
func (s *Store) Evicted() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evicted
}

func (s *Store) remove(sess *Session) {
	delete(s.sessions, sess.ID)
	s.recent.Remove(sess.elem)
}
