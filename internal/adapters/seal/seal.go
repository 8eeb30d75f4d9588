package seal

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	sealVersion = 1
	saltSize    = 16
	kdfName     = "argon2id"
	blobPrefix  = "LPSEAL1\n"
)

// KDF cost. Tests lower these through Params.
var DefaultParams = Params{Time: 2, MemoryKB: 64 * 1024, Threads: 1}

var (
	ErrWrongPassphrase = errors.New("sealed secret: wrong passphrase or corrupted data")
	ErrMalformed       = errors.New("sealed secret: malformed envelope")
)

type Params struct {
	Time     uint32
	MemoryKB uint32
	Threads  uint8
}

type envelope struct {
	Version     uint32 `json:"version"`
	KDF         string `json:"kdf"`
	KDFTime     uint32 `json:"kdf_time"`
	KDFMemoryKB uint32 `json:"kdf_memory_kb"`
	KDFThreads  uint8  `json:"kdf_threads"`
	Salt        []byte `json:"salt"`
	Nonce       []byte `json:"nonce"`
	Ciphertext  []byte `json:"ciphertext"`
}

// Seal encrypts plaintext under a key stretched from passphrase and returns
// a printable blob suitable for a text secret store.
func Seal(passphrase string, plaintext []byte) (string, error) {
	return SealWith(DefaultParams, passphrase, plaintext)
}

func SealWith(params Params, passphrase string, plaintext []byte) (string, error) {
	if passphrase == "" {
		return "", errors.New("seal secret: passphrase is empty")
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("seal secret: read salt: %w", err)
	}
	key := deriveKey(params, passphrase, salt)
	defer zero(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return "", fmt.Errorf("seal secret: %w", err)
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("seal secret: read nonce: %w", err)
	}

	raw, err := json.Marshal(envelope{
		Version:     sealVersion,
		KDF:         kdfName,
		KDFTime:     params.Time,
		KDFMemoryKB: params.MemoryKB,
		KDFThreads:  params.Threads,
		Salt:        salt,
		Nonce:       nonce,
		Ciphertext:  aead.Seal(nil, nonce, plaintext, nil),
	})
	if err != nil {
		return "", fmt.Errorf("seal secret: encode envelope: %w", err)
	}

	return blobPrefix + string(raw), nil
}

// Open reverses Seal. KDF cost is read back from the envelope.
func Open(passphrase string, blob string) ([]byte, error) {
	if !strings.HasPrefix(blob, blobPrefix) {
		return nil, ErrMalformed
	}

	var env envelope
	if err := json.Unmarshal([]byte(blob[len(blobPrefix):]), &env); err != nil {
		return nil, ErrMalformed
	}
	if env.Version != sealVersion || env.KDF != kdfName || len(env.Nonce) != chacha20poly1305.NonceSizeX {
		return nil, ErrMalformed
	}

	key := deriveKey(Params{Time: env.KDFTime, MemoryKB: env.KDFMemoryKB, Threads: env.KDFThreads}, passphrase, env.Salt)
	defer zero(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("open secret: %w", err)
	}
	plaintext, err := aead.Open(nil, env.Nonce, env.Ciphertext, nil)
	if err != nil {
		return nil, ErrWrongPassphrase
	}

	return plaintext, nil
}

func deriveKey(params Params, passphrase string, salt []byte) []byte {
	return argon2.IDKey([]byte(passphrase), salt, params.Time, params.MemoryKB, params.Threads, chacha20poly1305.KeySize)
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
