package toml

import "fmt"

const currentTrustSchemaVersion = 1

type trustFileSchema struct {
	Version int           `toml:"version"`
	Apps    []trustSchema `toml:"apps"`
}

func (s *trustFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentTrustSchemaVersion
	}
}

func (s trustFileSchema) validateVersion() error {
	if s.Version > currentTrustSchemaVersion {
		return fmt.Errorf("unsupported trust schema version %d (current %d)", s.Version, currentTrustSchemaVersion)
	}

	return nil
}

type trustSchema struct {
	Origin     string `toml:"origin"`
	Identity   string `toml:"identity"`
	ApprovedAt string `toml:"approved_at"`
}
