package srt

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/X1ag/SRTScheduler/internal/domain"
)

const pathEcho = "/echo.do"

func echoReply(*http.Request) any { return success(map[string]any{"value": "ok"}) }

func loggedInClient(t *testing.T, f *fakeSRT, opts ...Option) *Client {
	t.Helper()
	c := f.client(opts...)
	require.NoError(t, c.Login(context.Background(), "myid123", "secret", ""))
	return c
}

func TestCall_reauthenticatesOnce(t *testing.T) {
	f := newFakeSRT(t)
	f.protected(pathEcho, echoReply)
	metrics := NewMetrics(prometheus.NewRegistry())
	c := loggedInClient(t, f, WithMetrics(metrics))
	f.expireAll()

	env, err := c.call(context.Background(), pathEcho, nil)
	require.NoError(t, err)
	var value string
	require.NoError(t, env.Decode("value", &value))
	assert.Equal(t, "ok", value)

	assert.Equal(t, 2, f.count(pathLogin), "initial login plus one re-login")
	assert.Equal(t, 2, f.count(pathEcho))
	assert.True(t, c.Session().IsAuthenticated())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.relogins))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.requests.WithLabelValues(pathEcho, string(domain.KindLoginRequired))))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.requests.WithLabelValues(pathEcho, "ok")))
}

func TestCall_loginRequiredTwiceIsTerminal(t *testing.T) {
	f := newFakeSRT(t)
	f.public(pathEcho, func(*http.Request) any { return failure(codeLoginRequired, "로그인 후 사용하십시요.") })
	c := loggedInClient(t, f)

	_, err := c.call(context.Background(), pathEcho, nil)
	assert.ErrorIs(t, err, domain.ErrLoginRequired)
	assert.Equal(t, 2, f.count(pathLogin), "initial login plus exactly one re-login")
	assert.Equal(t, 2, f.count(pathEcho))
}

func TestCall_noCredentials(t *testing.T) {
	f := newFakeSRT(t)
	f.protected(pathEcho, echoReply)
	c := f.client()

	_, err := c.call(context.Background(), pathEcho, nil)
	assert.ErrorIs(t, err, domain.ErrLoginRequired)
	assert.Equal(t, 0, f.count(pathLogin))
	assert.Equal(t, 1, f.count(pathEcho))
}

func TestCall_otherErrorsAreNotRetried(t *testing.T) {
	f := newFakeSRT(t)
	f.public(pathEcho, func(*http.Request) any { return failure(codeAlreadyCancelled, "이미 취소된 예약입니다.") })
	c := loggedInClient(t, f)

	_, err := c.call(context.Background(), pathEcho, nil)
	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)
	assert.Equal(t, "이미 취소된 예약입니다.", err.(*domain.Error).Message)
	assert.Equal(t, 1, f.count(pathLogin))
	assert.Equal(t, 1, f.count(pathEcho))
}

func TestCall_reloginFailurePropagates(t *testing.T) {
	f := newFakeSRT(t)
	f.protected(pathEcho, echoReply)
	c := loggedInClient(t, f)
	f.expireAll()
	f.loginMsg = "존재하지않는 회원입니다."

	_, err := c.call(context.Background(), pathEcho, nil)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.False(t, c.Session().IsAuthenticated())
	assert.Equal(t, 1, f.count(pathEcho))
}

func TestCall_concurrentExpiryLogsInOnce(t *testing.T) {
	f := newFakeSRT(t)
	f.protected(pathEcho, echoReply)
	c := loggedInClient(t, f)
	f.expireAll()

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.call(context.Background(), pathEcho, nil)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 2, f.count(pathLogin), "initial login plus one shared re-login")
}

func TestCall_sharedReloginSurvivesLeaderCancel(t *testing.T) {
	f := newFakeSRT(t)
	f.protected(pathEcho, echoReply)
	c := loggedInClient(t, f)
	f.expireAll()

	started := make(chan struct{})
	release := make(chan struct{})
	releaseLogin := sync.OnceFunc(func() { close(release) })
	t.Cleanup(releaseLogin)
	var once sync.Once
	f.holdLogins(func() {
		once.Do(func() { close(started) })
		<-release
	})

	leaderCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	leaderErr := make(chan error, 1)
	go func() {
		_, err := c.call(leaderCtx, pathEcho, nil)
		leaderErr <- err
	}()
	<-started

	followerErr := make(chan error, 1)
	go func() {
		_, err := c.call(context.Background(), pathEcho, nil)
		followerErr <- err
	}()
	require.Eventually(t, func() bool { return f.count(pathEcho) >= 2 }, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-leaderErr, context.Canceled)
	releaseLogin()

	assert.NoError(t, <-followerErr)
	assert.Equal(t, 2, f.count(pathLogin), "initial login plus one shared re-login")
	assert.True(t, c.Session().IsAuthenticated())
}
