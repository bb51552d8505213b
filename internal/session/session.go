// Package session holds the portal credential for the lifetime of the process.
package session

import (
	"strings"
	"sync"
)

// CookieStore persists the credential between runs.
type CookieStore interface {
	Cookie(name string) string
	SetCookie(name, value string, days int, path string)
	RemoveCookie(name, path string)
}

// Session is the single owner of the credential. The zero value is an
// unauthenticated session without persistence.
type Session struct {
	mu         sync.RWMutex
	credential string

	cookies    CookieStore
	cookieName string
	cookieDays int
}

// New creates a session mirrored to the named cookie. cookies may be nil.
func New(cookies CookieStore, cookieName string, cookieDays int) *Session {
	if cookieName == "" {
		cookieName = "auth_cookie"
	}
	if cookieDays <= 0 {
		cookieDays = 7
	}
	return &Session{cookies: cookies, cookieName: cookieName, cookieDays: cookieDays}
}

// Restore loads the persisted credential, if any.
func (s *Session) Restore() {
	if s.cookies == nil {
		return
	}
	v := strings.TrimSpace(s.cookies.Cookie(s.cookieName))
	s.mu.Lock()
	s.credential = v
	s.mu.Unlock()
}

// Credential returns the current credential or "".
func (s *Session) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential
}

// Authenticated reports whether a credential is held.
func (s *Session) Authenticated() bool {
	return s.Credential() != ""
}

// Set stores a credential after login. An empty value clears the session.
func (s *Session) Set(credential string) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		s.Clear()
		return
	}
	s.mu.Lock()
	s.credential = credential
	s.mu.Unlock()
	if s.cookies != nil {
		s.cookies.SetCookie(s.cookieName, credential, s.cookieDays, "/")
	}
}

// Clear drops the credential from memory and from the cookie.
func (s *Session) Clear() {
	s.mu.Lock()
	s.credential = ""
	s.mu.Unlock()
	if s.cookies != nil {
		s.cookies.RemoveCookie(s.cookieName, "/")
	}
}
