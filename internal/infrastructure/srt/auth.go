package srt

import (
	"context"
	"encoding/json"
	"net/url"
	"regexp"
	"strings"

	"github.com/X1ag/SRTScheduler/internal/domain"
)

const (
	pathLogin      = "/apb/selectListApb01080_n.do"
	defaultReferer = "https://app.srail.or.kr/main/main.do"

	messageUserNotFound      = "존재하지않는 회원입니다"
	messagePasswordIncorrect = "비밀번호 오류"
)

// LoginMethod is the srchDvCd value telling the server how to read the
// user id.
type LoginMethod string

const (
	LoginMembershipID LoginMethod = "1"
	LoginEmail        LoginMethod = "2"
	LoginPhone        LoginMethod = "3"
)

var (
	emailPattern = regexp.MustCompile(`[^@]+@[^@]+\.[^@]+`)
	phonePattern = regexp.MustCompile(`^\d{3}-\d{3,4}-\d{4}$`)
)

// DetectLoginMethod classifies a user id by its shape.
func DetectLoginMethod(userID string) LoginMethod {
	switch {
	case emailPattern.MatchString(userID):
		return LoginEmail
	case phonePattern.MatchString(userID):
		return LoginPhone
	default:
		return LoginMembershipID
	}
}

// Login authenticates with a membership number, email or phone number.
// referer may be empty.
func (c *Client) Login(ctx context.Context, userID, password, referer string) error {
	if err := c.login(ctx, userID, password, referer); err != nil {
		return err
	}
	c.log.Info("logged in", "method", DetectLoginMethod(userID))
	return nil
}

// Resume restores a session exported with Session().ExportToken. When
// userID and password are given they are kept for automatic
// re-authentication once the restored cookies expire.
func (c *Client) Resume(token, userID, password string) error {
	if err := c.session.ImportToken(token); err != nil {
		return err
	}
	if userID != "" && password != "" {
		c.session.setCredentials(userID, password)
	}
	return nil
}

// ExportToken serializes the current session; see Session.ExportToken.
func (c *Client) ExportToken() (string, error) {
	return c.session.ExportToken()
}

// login submits the login form directly on the session, bypassing the
// re-authentication path so a failed login never recurses.
func (c *Client) login(ctx context.Context, userID, password, referer string) error {
	if referer == "" {
		referer = defaultReferer
	}
	form := url.Values{
		"auto":          {"Y"},
		"check":         {"Y"},
		"page":          {"menu"},
		"deviceKey":     {"-"},
		"customerYn":    {""},
		"login_referer": {referer},
		"srchDvCd":      {string(DetectLoginMethod(userID))},
		"srchDvNm":      {strings.ReplaceAll(userID, "-", "")},
		"hmpgPwdCphd":   {password},
	}

	body, err := c.session.send(ctx, pathLogin, form)
	c.metrics.observeRequest(pathLogin, err)
	if err != nil {
		return err
	}

	var reply struct {
		Message string `json:"MSG"`
	}
	if err := json.Unmarshal(body, &reply); err != nil {
		return domain.ErrProtocol
	}

	// The service has no success flag here; anything that is not a known
	// failure message counts as logged in.
	switch {
	case strings.Contains(reply.Message, messageUserNotFound):
		return &domain.Error{Kind: domain.KindUserNotFound, Message: reply.Message}
	case strings.Contains(reply.Message, messagePasswordIncorrect):
		return &domain.Error{Kind: domain.KindPasswordIncorrect, Message: reply.Message}
	}

	c.session.setCredentials(userID, password)
	c.session.markAuthenticated()
	return nil
}
