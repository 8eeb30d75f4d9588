package domain

import "errors"

var (
	ErrWalletUnavailable         = errors.New("wallet unavailable")
	ErrAuthenticationDeclined    = errors.New("authentication declined")
	ErrAccountNotFound           = errors.New("account not found")
	ErrAlreadyInitialized        = errors.New("account already initialized")
	ErrInsufficientAuthorization = errors.New("insufficient authorization")
	ErrRejectedByProgram         = errors.New("rejected by program")
	ErrDecoding                  = errors.New("account data decoding failed")
	ErrNetworkFailure            = errors.New("network failure")

	ErrInvalidState      = errors.New("operation not valid in current session state")
	ErrEmptyEntry        = errors.New("entry text is empty")
	ErrInvalidTransition = errors.New("invalid record state transition")
)
