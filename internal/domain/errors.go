package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure reported by the SRT service or detected
// by the client before a request is sent.
type ErrorKind string

const (
	KindLoginRequired     ErrorKind = "LOGIN_REQUIRED"
	KindUserNotFound      ErrorKind = "USER_NOT_FOUND"
	KindPasswordIncorrect ErrorKind = "PASSWORD_INCORRECT"
	KindStationNotFound   ErrorKind = "STATION_NOT_FOUND"
	KindOnlySRTTrain      ErrorKind = "ONLY_SRT_TRAIN"
	KindAlreadyCancelled  ErrorKind = "ALREADY_CANCELLED"
	KindFailToReserve     ErrorKind = "FAIL_TO_RESERVE"
	KindProtocol          ErrorKind = "PROTOCOL"
	KindUnknown           ErrorKind = "UNKNOWN"
)

// Error is a classified failure. Message keeps the text the server sent so
// callers never have to decode upstream codes themselves.
type Error struct {
	Kind    ErrorKind
	Code    string // upstream msgCd, empty when the error is raised locally
	Message string
}

func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s / %s", e.Kind, e.Message)
}

// Is matches on Kind only, so errors.Is(err, ErrLoginRequired) holds for any
// login-required failure regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

var (
	ErrLoginRequired     = &Error{Kind: KindLoginRequired, Message: "로그인 후 사용하십시요."}
	ErrUserNotFound      = &Error{Kind: KindUserNotFound}
	ErrPasswordIncorrect = &Error{Kind: KindPasswordIncorrect}
	ErrStationNotFound   = &Error{Kind: KindStationNotFound, Message: "해당 역을 찾을 수 없습니다."}
	ErrOnlySRTTrain      = &Error{Kind: KindOnlySRTTrain, Message: "SRT 열차만 예약할 수 있습니다."}
	ErrAlreadyCancelled  = &Error{Kind: KindAlreadyCancelled}
	ErrFailToReserve     = &Error{Kind: KindFailToReserve, Message: "알 수 없는 원인으로 인해 예약에 실패하였습니다."}
	ErrProtocol          = &Error{Kind: KindProtocol, Message: "오류가 발생하였습니다."}
	ErrUnknown           = &Error{Kind: KindUnknown}
)

// KindOf returns the classified kind of err, or KindUnknown when err does not
// carry one.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
