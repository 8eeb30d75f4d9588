package domain

// Entry is one appended link. Entries are never edited or removed.
type Entry struct {
	Link      string   `json:"link" yaml:"link"`
	Submitter Identity `json:"submitter" yaml:"submitter"`
	Position  int      `json:"position" yaml:"position"`
}
