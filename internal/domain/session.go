package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUniqueViolation = "23505"
	ErrSessionNotFound = errors.New("session not found")
)

// StoredSession is an exported session token kept for one SRT account.
type StoredSession struct {
	UserID    string
	Token     string
	UpdatedAt time.Time
}

type SessionRepository interface {
	Save(ctx context.Context, s *StoredSession) error
	GetByUserID(ctx context.Context, userID string) (*StoredSession, error)
	Delete(ctx context.Context, userID string) error
}
