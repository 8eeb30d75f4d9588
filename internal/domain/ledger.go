package domain

import (
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// Hash is a 32-byte ledger hash, used for recent blockhashes.
type Hash [32]byte

func ParseHash(raw string) (Hash, error) {
	decoded, err := base58.Decode(strings.TrimSpace(raw))
	if err != nil {
		return Hash{}, fmt.Errorf("decode hash %q: %w", raw, err)
	}
	if len(decoded) != len(Hash{}) {
		return Hash{}, fmt.Errorf("decode hash %q: expected 32 bytes, got %d", raw, len(decoded))
	}
	var h Hash
	copy(h[:], decoded)
	return h, nil
}

func (h Hash) String() string {
	return base58.Encode(h[:])
}

// LedgerRejection is a transaction the ledger refused or executed with an
// error. Reason is the runtime's error name (for example
// "MissingRequiredSignature" or "Custom"); Custom holds the program error
// code when Reason is "Custom". InstructionIndex is -1 when the failure is
// not tied to one instruction.
type LedgerRejection struct {
	Code             int
	Message          string
	Logs             []string
	InstructionIndex int
	Reason           string
	Custom           *uint32
}

func (e *LedgerRejection) Error() string {
	var b strings.Builder
	b.WriteString("ledger rejected transaction")
	if e.Code != 0 {
		fmt.Fprintf(&b, " (code %d)", e.Code)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Reason != "" {
		b.WriteString(" [")
		if e.InstructionIndex >= 0 {
			fmt.Fprintf(&b, "instruction %d: ", e.InstructionIndex)
		}
		b.WriteString(e.Reason)
		if e.Custom != nil {
			fmt.Fprintf(&b, " %d", *e.Custom)
		}
		b.WriteString("]")
	}
	return b.String()
}

func (e *LedgerRejection) LogsContain(fragment string) bool {
	for _, line := range e.Logs {
		if strings.Contains(line, fragment) {
			return true
		}
	}
	return strings.Contains(e.Message, fragment)
}
