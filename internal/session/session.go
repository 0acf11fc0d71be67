// Package session carries the per-visitor navigation and auth context
// that the original UI kept in global state: owner flag, member id,
// and the calendar view position.
package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	CookieName = "session_id"
	TTL        = 24 * time.Hour
)

type Session struct {
	ID           string `json:"id"`
	OwnerMode    bool   `json:"owner_mode"`
	UserID       *int64 `json:"user_id,omitempty"`
	ViewYear     int    `json:"view_year"`
	ViewMonth    int    `json:"view_month"`
	SelectedDate string `json:"selected_date,omitempty"`
}

// New seeds a session with the current month view.
func New() *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		ViewYear:  now.Year(),
		ViewMonth: int(now.Month()),
	}
}

type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

// Manager resolves the session for a request, creating one (and
// setting the cookie) on first contact.
type Manager struct {
	Store Store
}

func NewManager(store Store) *Manager {
	return &Manager{Store: store}
}

func (m *Manager) FromRequest(w http.ResponseWriter, r *http.Request) *Session {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		if s, err := m.Store.Get(r.Context(), cookie.Value); err == nil && s != nil {
			return s
		}
	}

	s := New()
	_ = m.Store.Save(r.Context(), s)
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

func (m *Manager) Save(ctx context.Context, s *Session) error {
	return m.Store.Save(ctx, s)
}

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// MemoryStore keeps sessions in-process; the fallback when no redis
// address is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	session := entry.session
	return &session, nil
}

func (s *MemoryStore) Save(_ context.Context, sess *Session) error {
	s.mu.Lock()
	s.sessions[sess.ID] = memoryEntry{session: *sess, expiresAt: time.Now().Add(TTL)}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}
