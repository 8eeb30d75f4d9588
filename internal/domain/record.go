package domain

import "fmt"

type RecordStatus int

const (
	// RecordUnknown means no query has completed yet.
	RecordUnknown RecordStatus = iota
	// RecordMissing means the ledger confirmed the target account does not exist.
	RecordMissing
	// RecordReady means the account exists and Entries holds its last fetched contents.
	RecordReady
)

func (s RecordStatus) String() string {
	switch s {
	case RecordUnknown:
		return "unknown"
	case RecordMissing:
		return "missing"
	case RecordReady:
		return "ready"
	default:
		return fmt.Sprintf("RecordStatus(%d)", int(s))
	}
}

func (s RecordStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *RecordStatus) UnmarshalText(text []byte) error {
	for _, status := range []RecordStatus{RecordUnknown, RecordMissing, RecordReady} {
		if string(text) == status.String() {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown record status %q", text)
}

// RecordState tracks whether the shared record exists. It only moves forward:
// Unknown -> Missing | Ready, Missing -> Ready, Ready -> Ready.
type RecordState struct {
	Status  RecordStatus `json:"status" yaml:"status"`
	Entries []Entry      `json:"entries" yaml:"entries"`
}

// Resolve replaces the state wholesale with the fetched entries.
func (s RecordState) Resolve(entries []Entry) RecordState {
	return RecordState{Status: RecordReady, Entries: copyEntries(entries)}
}

// MarkMissing records that the account was not found. A record that was
// already seen present cannot go back to missing.
func (s RecordState) MarkMissing() (RecordState, error) {
	if s.Status == RecordReady {
		return s, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, RecordReady, RecordMissing)
	}
	return RecordState{Status: RecordMissing}, nil
}

func (s RecordState) CanProvision() bool {
	return s.Status == RecordMissing
}

func (s RecordState) CanAppend() bool {
	return s.Status == RecordReady
}

func (s RecordState) Clone() RecordState {
	return RecordState{Status: s.Status, Entries: copyEntries(s.Entries)}
}

func copyEntries(entries []Entry) []Entry {
	if entries == nil {
		return nil
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
