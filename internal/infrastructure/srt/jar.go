package srt

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"sync"

	"github.com/X1ag/SRTScheduler/internal/domain"
)

// jar is a cookie jar that remembers what the server set so the session can
// be exported and replayed into a fresh jar later.
type jar struct {
	*cookiejar.Jar

	mu  sync.Mutex
	set map[string]storedCookie
}

type storedCookie struct {
	URL    string       `json:"url"`
	Cookie *http.Cookie `json:"cookie"`
}

func newJar() *jar {
	j, _ := cookiejar.New(nil)
	return &jar{Jar: j, set: make(map[string]storedCookie)}
}

func (j *jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.Jar.SetCookies(u, cookies)

	j.mu.Lock()
	defer j.mu.Unlock()
	source := (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: u.Path}).String()
	for _, c := range cookies {
		key := u.Host + "|" + c.Domain + "|" + c.Path + "|" + c.Name
		j.set[key] = storedCookie{URL: source, Cookie: c}
	}
}

// export serializes every cookie the server has set into an opaque token.
func (j *jar) export() (string, error) {
	j.mu.Lock()
	keys := make([]string, 0, len(j.set))
	for k := range j.set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	entries := make([]storedCookie, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, j.set[k])
	}
	j.mu.Unlock()

	data, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshal cookies: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// importJar rebuilds a jar from a token produced by export.
func importJar(token string) (*jar, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, domain.NewError(domain.KindProtocol, fmt.Sprintf("decode session token: %v", err))
	}
	var entries []storedCookie
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, domain.NewError(domain.KindProtocol, fmt.Sprintf("unmarshal session token: %v", err))
	}

	j := newJar()
	for _, e := range entries {
		u, err := url.Parse(e.URL)
		if err != nil || e.Cookie == nil {
			return nil, domain.NewError(domain.KindProtocol, fmt.Sprintf("invalid cookie entry for %q", e.URL))
		}
		j.SetCookies(u, []*http.Cookie{e.Cookie})
	}
	return j, nil
}
