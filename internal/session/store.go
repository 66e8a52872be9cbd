package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/wonny/finlens/internal/contracts"
	"github.com/wonny/finlens/pkg/config"
)

// State is what the dashboard remembers for one browser between requests
type State struct {
	ID        string
	APIKey    string
	Symbol    string
	Report    *contracts.Report
	Narrative string
}

// HasCredential reports whether the session holds an API key
func (s State) HasCredential() bool {
	return s.APIKey != ""
}

// Store keeps session state in memory; everything is lost on restart.
// ⭐ SSOT: UI 세션 상태는 이 저장소에서만
type Store struct {
	cache      *cache.Cache
	mu         sync.Mutex
	cookieName string
	secure     bool
	ttl        time.Duration
}

// NewStore creates a session store whose entries expire after cfg.TTL of inactivity
func NewStore(cfg config.SessionConfig) *Store {
	return &Store{
		cache:      cache.New(cfg.TTL, 2*cfg.TTL),
		cookieName: cfg.CookieName,
		secure:     cfg.SecureCookie,
		ttl:        cfg.TTL,
	}
}

// Get returns a copy of the session state for id
func (s *Store) Get(id string) (State, bool) {
	v, ok := s.cache.Get(id)
	if !ok {
		return State{}, false
	}
	return *(v.(*State)), true
}

// Create starts a new empty session
func (s *Store) Create() State {
	st := &State{ID: uuid.New().String()}
	s.cache.SetDefault(st.ID, st)
	return *st
}

// Update applies fn to the session under the store lock and refreshes its TTL.
// A missing or expired session is recreated under the same id.
func (s *Store) Update(id string, fn func(*State)) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &State{ID: id}
	if v, ok := s.cache.Get(id); ok {
		cp := *(v.(*State))
		st = &cp
	}
	fn(st)
	st.ID = id

	s.cache.SetDefault(id, st)
	return *st
}

// Delete drops a session
func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

// Count returns the number of live sessions
func (s *Store) Count() int {
	return s.cache.ItemCount()
}

// Resolve returns the session named by the request cookie, starting a new
// one (and setting the cookie) when the cookie is absent or expired
func (s *Store) Resolve(w http.ResponseWriter, r *http.Request) State {
	if c, err := r.Cookie(s.cookieName); err == nil {
		if st, ok := s.Get(c.Value); ok {
			return st
		}
	}

	st := s.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    st.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl.Seconds()),
	})
	return st
}
