package local

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

const hardenedOffset uint32 = 0x80000000

// SolanaPath is the account path wallet extensions use for the first
// account: m/44'/501'/0'/0'.
var SolanaPath = []uint32{44, 501, 0, 0}

var (
	ErrInvalidMnemonic  = errors.New("invalid mnemonic")
	ErrMnemonicRequired = errors.New("mnemonic is required")
)

// NewMnemonic returns a fresh 12-word recovery phrase.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

func normalizeMnemonic(mnemonic string) (string, error) {
	normalized := strings.Join(strings.Fields(strings.ToLower(mnemonic)), " ")
	if normalized == "" {
		return "", ErrMnemonicRequired
	}
	if !bip39.IsMnemonicValid(normalized) {
		return "", ErrInvalidMnemonic
	}
	return normalized, nil
}

// DeriveKey returns the ed25519 key at path, every index hardened (SLIP-0010).
func DeriveKey(mnemonic string, path []uint32) (ed25519.PrivateKey, error) {
	normalized, err := normalizeMnemonic(mnemonic)
	if err != nil {
		return nil, err
	}

	key, chainCode := masterKey(bip39.NewSeed(normalized, ""))
	for _, index := range path {
		key, chainCode = childKey(key, chainCode, index|hardenedOffset)
	}

	return ed25519.NewKeyFromSeed(key), nil
}

func masterKey(seed []byte) ([]byte, []byte) {
	mac := hmac.New(sha512.New, []byte("ed25519 seed"))
	mac.Write(seed)
	sum := mac.Sum(nil)
	return sum[:32], sum[32:]
}

func childKey(key, chainCode []byte, index uint32) ([]byte, []byte) {
	data := make([]byte, 0, 37)
	data = append(data, 0x00)
	data = append(data, key...)
	data = binary.BigEndian.AppendUint32(data, index)

	mac := hmac.New(sha512.New, chainCode)
	mac.Write(data)
	sum := mac.Sum(nil)
	return sum[:32], sum[32:]
}
