package domain

import (
	"errors"
	"time"
)

type NoticeKind string

const (
	NoticeWalletUnavailable         NoticeKind = "wallet_unavailable"
	NoticeAuthenticationDeclined    NoticeKind = "authentication_declined"
	NoticeAccountNotFound           NoticeKind = "account_not_found"
	NoticeAlreadyInitialized        NoticeKind = "already_initialized"
	NoticeInsufficientAuthorization NoticeKind = "insufficient_authorization"
	NoticeRejectedByProgram         NoticeKind = "rejected_by_program"
	NoticeDecoding                  NoticeKind = "decoding_error"
	NoticeNetworkFailure            NoticeKind = "network_failure"
	NoticeFailure                   NoticeKind = "failure"
)

// Notice is a user-visible, actionable message about a failed intent.
type Notice struct {
	Kind    NoticeKind `json:"kind" yaml:"kind"`
	Message string     `json:"message" yaml:"message"`
	At      time.Time  `json:"at" yaml:"at"`
}

func NoticeKindOf(err error) NoticeKind {
	switch {
	case errors.Is(err, ErrWalletUnavailable):
		return NoticeWalletUnavailable
	case errors.Is(err, ErrAuthenticationDeclined):
		return NoticeAuthenticationDeclined
	case errors.Is(err, ErrAccountNotFound):
		return NoticeAccountNotFound
	case errors.Is(err, ErrAlreadyInitialized):
		return NoticeAlreadyInitialized
	case errors.Is(err, ErrInsufficientAuthorization):
		return NoticeInsufficientAuthorization
	case errors.Is(err, ErrRejectedByProgram):
		return NoticeRejectedByProgram
	case errors.Is(err, ErrDecoding):
		return NoticeDecoding
	case errors.Is(err, ErrNetworkFailure):
		return NoticeNetworkFailure
	default:
		return NoticeFailure
	}
}
