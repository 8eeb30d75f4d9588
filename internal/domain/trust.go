package domain

import (
	"errors"
	"time"
)

var ErrTrustNotFound = errors.New("trusted app not found")

// TrustedApp records that the wallet owner approved an app origin for an
// identity, which lets later sessions reconnect without prompting.
type TrustedApp struct {
	Origin     string
	Identity   Identity
	ApprovedAt time.Time
}
