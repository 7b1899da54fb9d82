package srt

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/X1ag/SRTScheduler/internal/domain"
)

// call sends form to path and validates the reply. When the server reports
// an expired session and credentials are known, it logs in again and
// replays the request once; a second expiry is returned to the caller.
func (c *Client) call(ctx context.Context, path string, form url.Values) (Envelope, error) {
	retried := false
	for {
		generation := c.session.currentGeneration()
		c.log.Debug("srt request", "path", path, "retried", retried)

		body, err := c.session.send(ctx, path, form)
		if err != nil {
			c.metrics.observeRequest(path, err)
			return nil, err
		}
		env, err := ParseEnvelope(body)
		c.metrics.observeRequest(path, err)
		if err == nil || retried || !errors.Is(err, domain.ErrLoginRequired) {
			return env, err
		}

		userID, password, ok := c.session.credentials()
		if !ok {
			return nil, err
		}
		if err := c.reauthenticate(ctx, generation, userID, password); err != nil {
			return nil, err
		}
		retried = true
	}
}

// reloginTimeout bounds a shared login once no caller can cancel it.
const reloginTimeout = 30 * time.Second

// reauthenticate logs in again unless another call already did so since
// generation was observed. Concurrent callers that saw the same generation
// share a single login submission. The login outlives the caller that
// started it; each caller stops waiting when its own ctx is done.
func (c *Client) reauthenticate(ctx context.Context, generation uint64, userID, password string) error {
	ch := c.relogin.DoChan(strconv.FormatUint(generation, 10), func() (any, error) {
		if c.session.currentGeneration() != generation {
			return nil, nil
		}
		loginCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), reloginTimeout)
		defer cancel()

		c.session.markExpired()
		c.log.Info("session expired, logging in again")
		c.metrics.observeRelogin()
		return nil, c.login(loginCtx, userID, password, "")
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// requireLogin fails fast for operations that need an authenticated session.
func (c *Client) requireLogin() error {
	if !c.session.IsAuthenticated() {
		return domain.NewError(domain.KindLoginRequired, "로그인이 필요한 서비스입니다.")
	}
	return nil
}
