package srt

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

const sessionCookie = "JSESSIONID_XEBEC"

// fakeSRT scripts replies of the SRT service. Login hands out a fresh
// session cookie; protected handlers answer S111 unless the request carries
// a cookie that is still valid.
type fakeSRT struct {
	mu       sync.Mutex
	replyMu  sync.Mutex // serializes scripted replies
	calls    map[string]int
	forms    map[string][]map[string]string
	sessions map[string]bool
	issued   int
	loginMsg string
	onLogin  func() // runs before each login reply when set
	server   *httptest.Server
	mux      *http.ServeMux
}

func newFakeSRT(t *testing.T) *fakeSRT {
	t.Helper()
	f := &fakeSRT{
		calls:    map[string]int{},
		forms:    map[string][]map[string]string{},
		sessions: map[string]bool{},
		loginMsg: "정상적으로 로그인되었습니다.",
	}
	mux := http.NewServeMux()
	mux.HandleFunc(pathLogin, f.login)
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	f.mux = mux
	return f
}

func (f *fakeSRT) client(opts ...Option) *Client {
	opts = append([]Option{
		WithBaseURL(f.server.URL),
		WithHTTPClient(f.server.Client()),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)
	return NewClient(opts...)
}

func (f *fakeSRT) record(r *http.Request) {
	_ = r.ParseForm()
	form := map[string]string{}
	for k := range r.PostForm {
		form[k] = r.PostForm.Get(k)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[r.URL.Path]++
	f.forms[r.URL.Path] = append(f.forms[r.URL.Path], form)
}

func (f *fakeSRT) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func (f *fakeSRT) lastForm(path string) map[string]string {
	return f.formAt(path, f.count(path)-1)
}

func (f *fakeSRT) formAt(path string, i int) map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	forms := f.forms[path]
	if i < 0 || i >= len(forms) {
		return nil
	}
	return forms[i]
}

func (f *fakeSRT) login(w http.ResponseWriter, r *http.Request) {
	f.record(r)
	f.mu.Lock()
	hook := f.onLogin
	f.mu.Unlock()
	if hook != nil {
		hook()
	}

	f.mu.Lock()
	msg := f.loginMsg
	if r.PostForm.Get("hmpgPwdCphd") != "secret" {
		msg = "비밀번호 오류입니다."
	}
	if !strings.Contains(msg, messageUserNotFound) && !strings.Contains(msg, messagePasswordIncorrect) {
		f.issued++
		id := fmt.Sprintf("session-%d", f.issued)
		f.sessions[id] = true
		http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: id, Path: "/"})
	}
	f.mu.Unlock()
	writeJSON(w, map[string]any{"MSG": msg})
}

func (f *fakeSRT) holdLogins(hook func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onLogin = hook
}

// expireAll invalidates every session handed out so far.
func (f *fakeSRT) expireAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id := range f.sessions {
		f.sessions[id] = false
	}
}

func (f *fakeSRT) authorized(r *http.Request) bool {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessions[c.Value]
}

// protected registers a handler that only runs for a valid session.
func (f *fakeSRT) protected(path string, reply func(r *http.Request) any) {
	f.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		if !f.authorized(r) {
			writeJSON(w, failure(codeLoginRequired, "로그인 후 사용하십시요."))
			return
		}
		writeJSON(w, f.reply(reply, r))
	})
}

func (f *fakeSRT) reply(fn func(*http.Request) any, r *http.Request) any {
	f.replyMu.Lock()
	defer f.replyMu.Unlock()
	return fn(r)
}

// public registers a handler that ignores the session.
func (f *fakeSRT) public(path string, reply func(r *http.Request) any) {
	f.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		writeJSON(w, f.reply(reply, r))
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func success(payload map[string]any) map[string]any {
	if payload == nil {
		payload = map[string]any{}
	}
	payload["resultMap"] = []any{map[string]any{"strResult": "SUCC", "msgCd": "S000", "msgTxt": ""}}
	return payload
}

func failure(code, msg string) map[string]any {
	return map[string]any{
		"resultMap": []any{map[string]any{"strResult": "FAIL", "msgCd": code, "msgTxt": msg}},
	}
}
