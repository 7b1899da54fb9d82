package srt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/X1ag/SRTScheduler/internal/domain"
)

func TestDetectLoginMethod(t *testing.T) {
	assert.Equal(t, LoginEmail, DetectLoginMethod("a@b.com"))
	assert.Equal(t, LoginPhone, DetectLoginMethod("010-1234-5678"))
	assert.Equal(t, LoginPhone, DetectLoginMethod("010-123-5678"))
	assert.Equal(t, LoginMembershipID, DetectLoginMethod("myid123"))
	assert.Equal(t, LoginMembershipID, DetectLoginMethod("01012345678"))
	assert.Equal(t, LoginMembershipID, DetectLoginMethod("1234567890"))
}

func TestLogin_success(t *testing.T) {
	f := newFakeSRT(t)
	c := f.client()

	require.NoError(t, c.Login(context.Background(), "010-1234-5678", "secret", ""))
	assert.True(t, c.Session().IsAuthenticated())

	form := f.lastForm(pathLogin)
	assert.Equal(t, "3", form["srchDvCd"])
	assert.Equal(t, "01012345678", form["srchDvNm"])
	assert.Equal(t, "secret", form["hmpgPwdCphd"])
	assert.Equal(t, defaultReferer, form["login_referer"])
}

func TestLogin_unknownMessageCountsAsSuccess(t *testing.T) {
	f := newFakeSRT(t)
	f.loginMsg = "시스템 점검 안내"
	c := f.client()

	require.NoError(t, c.Login(context.Background(), "a@b.com", "secret", "https://app.srail.or.kr/ara/"))
	assert.True(t, c.Session().IsAuthenticated())
	assert.Equal(t, "https://app.srail.or.kr/ara/", f.lastForm(pathLogin)["login_referer"])
	assert.Equal(t, "2", f.lastForm(pathLogin)["srchDvCd"])
}

func TestLogin_failures(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		password string
		want     *domain.Error
	}{
		{"user not found", "존재하지않는 회원입니다.", "secret", domain.ErrUserNotFound},
		{"wrong password", "", "wrong", domain.ErrPasswordIncorrect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeSRT(t)
			f.loginMsg = tt.message
			c := f.client()

			err := c.Login(context.Background(), "myid123", tt.password, "")
			assert.ErrorIs(t, err, tt.want)
			assert.NotEmpty(t, err.(*domain.Error).Message)
			assert.False(t, c.Session().IsAuthenticated())

			_, _, ok := c.Session().credentials()
			assert.False(t, ok)
		})
	}
}
