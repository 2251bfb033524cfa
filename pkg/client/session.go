package client

import "sync"

// Session is the explicit holder of the access token for one logical user
// session. There is no ambient global store; callers pass a Session to the
// Client they construct.
//
// No expiry pre-check happens here: an expired token is only discovered when
// a request comes back Unauthorized, at which point the caller decides
// whether to Logout and re-login.
type Session struct {
	mu    sync.RWMutex
	token string
}

func (s *Session) Login(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Logout forgets the token locally. The server keeps no session state, so
// the token itself stays valid until it expires.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}
