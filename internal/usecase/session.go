package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/X1ag/SRTScheduler/internal/domain"
)

var (
	ErrUserIDEmpty   = errors.New("user id must not be empty")
	ErrPasswordEmpty = errors.New("password must not be empty")
)

// SessionUsecase keeps the SRT session of an account across process
// restarts by storing its exported token.
type SessionUsecase struct {
	sessions domain.SessionRepository
	auth     domain.Authenticator
}

func NewSessionUsecase(sessions domain.SessionRepository, auth domain.Authenticator) *SessionUsecase {
	return &SessionUsecase{
		sessions: sessions,
		auth:     auth,
	}
}

// Login authenticates with the service and stores the resulting session.
func (s *SessionUsecase) Login(ctx context.Context, userID, password string) error {
	if userID == "" {
		return ErrUserIDEmpty
	}
	if password == "" {
		return ErrPasswordEmpty
	}
	if err := s.auth.Login(ctx, userID, password, ""); err != nil {
		return err
	}
	return s.Save(ctx, userID)
}

// Resume restores the stored session of userID, logging in afresh when
// nothing is stored. The credentials are kept either way so an expired
// session can be renewed automatically.
func (s *SessionUsecase) Resume(ctx context.Context, userID, password string) error {
	if userID == "" {
		return ErrUserIDEmpty
	}
	stored, err := s.sessions.GetByUserID(ctx, userID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return s.Login(ctx, userID, password)
	}
	if err != nil {
		return err
	}
	if err := s.auth.Resume(stored.Token, userID, password); err != nil {
		slog.Warn("stored session is unusable, logging in again", "user", userID, "error", err)
		return s.Login(ctx, userID, password)
	}
	return nil
}

// Save stores the current session of userID.
func (s *SessionUsecase) Save(ctx context.Context, userID string) error {
	token, err := s.auth.ExportToken()
	if err != nil {
		return err
	}
	return s.sessions.Save(ctx, &domain.StoredSession{UserID: userID, Token: token})
}

func (s *SessionUsecase) Logout(ctx context.Context, userID string) error {
	return s.sessions.Delete(ctx, userID)
}
