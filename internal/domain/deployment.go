package domain

import (
	"errors"
	"strings"
)

// Deployment names the fixed program, the shared record it owns and the
// ledger endpoint. It is built once at startup and passed by value.
type Deployment struct {
	ProgramID     Identity
	TargetAccount Identity
	Endpoint      string
}

func (d Deployment) Validate() error {
	if d.ProgramID.IsZero() {
		return errors.New("program id is required")
	}
	if d.TargetAccount.IsZero() {
		return errors.New("target account is required")
	}
	if d.ProgramID == d.TargetAccount {
		return errors.New("target account must differ from program id")
	}
	if strings.TrimSpace(d.Endpoint) == "" {
		return errors.New("ledger endpoint is required")
	}
	return nil
}
