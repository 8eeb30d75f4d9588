package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

const IdentitySize = 32

var ErrInvalidIdentity = errors.New("invalid identity")

// Identity is a 32-byte public key naming a wallet, an account or a program.
// Its text form is base58.
type Identity [IdentitySize]byte

// SystemProgramID owns account allocation on the ledger.
var SystemProgramID = Identity{}

func ParseIdentity(raw string) (Identity, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Identity{}, fmt.Errorf("%w: value is empty", ErrInvalidIdentity)
	}

	decoded, err := base58.Decode(trimmed)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %q is not base58", ErrInvalidIdentity, trimmed)
	}

	return IdentityFromBytes(decoded)
}

func IdentityFromBytes(raw []byte) (Identity, error) {
	if len(raw) != IdentitySize {
		return Identity{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidIdentity, IdentitySize, len(raw))
	}

	var id Identity
	copy(id[:], raw)
	return id, nil
}

func MustParseIdentity(raw string) Identity {
	id, err := ParseIdentity(raw)
	if err != nil {
		panic(err)
	}
	return id
}

func (id Identity) String() string {
	return base58.Encode(id[:])
}

func (id Identity) Short() string {
	full := id.String()
	if len(full) <= 10 {
		return full
	}
	return full[:4] + ".." + full[len(full)-4:]
}

func (id Identity) IsZero() bool {
	return id == Identity{}
}

func (id Identity) Bytes() []byte {
	out := make([]byte, IdentitySize)
	copy(out, id[:])
	return out
}

func (id Identity) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *Identity) UnmarshalText(text []byte) error {
	parsed, err := ParseIdentity(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
