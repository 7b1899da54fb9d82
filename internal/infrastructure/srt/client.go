package srt

import (
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	DefaultBaseURL   = "https://app.srail.or.kr"
	DefaultUserAgent = "Mozilla/5.0 (Linux; Android 14; SM-S918N Build/UP1A.231005.007; wv) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Version/4.0 Chrome/120.0.6099.230 Mobile Safari/537.36 " +
		"SRT-APP-Android V.1.0.6"
)

// Client talks to the SRT mobile web service on behalf of one account.
// A Client is safe for concurrent use; all calls share its Session.
type Client struct {
	session *Session
	log     *slog.Logger
	metrics *Metrics
	relogin singleflight.Group
}

type options struct {
	baseURL   string
	userAgent string
	http      *http.Client
	log       *slog.Logger
	metrics   *Metrics
}

type Option func(*options)

func WithBaseURL(u string) Option { return func(o *options) { o.baseURL = u } }

func WithUserAgent(ua string) Option { return func(o *options) { o.userAgent = ua } }

// WithHTTPClient sets the client whose transport and timeout every request
// uses. Its Jar is replaced by the session's own.
func WithHTTPClient(c *http.Client) Option { return func(o *options) { o.http = c } }

func WithLogger(l *slog.Logger) Option { return func(o *options) { o.log = l } }

func WithMetrics(m *Metrics) Option { return func(o *options) { o.metrics = m } }

func NewClient(opts ...Option) *Client {
	o := options{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		http:      &http.Client{Timeout: 10 * time.Second},
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Client{
		session: newSession(o.baseURL, o.userAgent, o.http),
		log:     o.log,
		metrics: o.metrics,
	}
}

// Session exposes the client's session for token export and import.
func (c *Client) Session() *Session {
	return c.session
}
