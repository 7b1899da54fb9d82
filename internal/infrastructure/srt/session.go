package srt

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// Session owns the cookie jar, the credentials used for automatic
// re-authentication and the logged-in flag of one SRT account. It is created
// anonymous, becomes authenticated through login or ImportToken, and can be
// exported again at any point.
type Session struct {
	baseURL   string
	userAgent string

	mu         sync.RWMutex
	base       *http.Client
	http       *http.Client
	jar        *jar
	userID     string
	password   string
	loggedIn   bool
	generation uint64 // bumped on every successful authentication
}

func newSession(baseURL, userAgent string, base *http.Client) *Session {
	s := &Session{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		base:      base,
	}
	s.useJar(newJar())
	return s
}

// useJar swaps the jar while keeping the base client's transport, timeout
// and redirect policy. Callers must hold mu or own s exclusively.
func (s *Session) useJar(j *jar) {
	c := *s.base
	c.Jar = j
	s.jar = j
	s.http = &c
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn
}

// ExportToken serializes the cookie jar into an opaque string.
func (s *Session) ExportToken() (string, error) {
	s.mu.RLock()
	j := s.jar
	s.mu.RUnlock()
	return j.export()
}

// ImportToken restores a jar produced by ExportToken and marks the session
// authenticated without contacting the server.
func (s *Session) ImportToken(token string) error {
	j, err := importJar(token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.useJar(j)
	s.loggedIn = true
	s.generation++
	return nil
}

func (s *Session) setCredentials(userID, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
	s.password = password
}

func (s *Session) credentials() (userID, password string, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID, s.password, s.userID != "" && s.password != ""
}

func (s *Session) markAuthenticated() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn = true
	s.generation++
}

func (s *Session) markExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn = false
}

func (s *Session) currentGeneration() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// send posts form to path and returns the raw reply body.
func (s *Session) send(ctx context.Context, path string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	s.mu.RLock()
	client := s.http
	s.mu.RUnlock()

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("post %s: unexpected status code: %d", path, resp.StatusCode)
	}
	return body, nil
}
