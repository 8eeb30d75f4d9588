package domain

// Session is the client-local state handed to the presentation layer.
// Wallet is meaningful only when Connected is true.
type Session struct {
	Wallet       Identity    `json:"wallet" yaml:"wallet"`
	Connected    bool        `json:"connected" yaml:"connected"`
	PendingInput string      `json:"pending_input" yaml:"pending_input"`
	Record       RecordState `json:"record" yaml:"record"`
	Notice       *Notice     `json:"notice,omitempty" yaml:"notice,omitempty"`
}

func NewSession() Session {
	return Session{Record: RecordState{Status: RecordUnknown}}
}

func (s Session) Clone() Session {
	out := s
	out.Record = s.Record.Clone()
	if s.Notice != nil {
		notice := *s.Notice
		out.Notice = &notice
	}
	return out
}
