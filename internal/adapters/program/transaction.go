package program

import (
	"fmt"

	"github.com/bnema/link-portal-cli/internal/domain"
)

const signatureSize = 64

type accountMeta struct {
	key      domain.Identity
	signer   bool
	writable bool
}

type instruction struct {
	programID domain.Identity
	accounts  []accountMeta
	data      []byte
}

// message is a compiled legacy transaction message.
type message struct {
	keys             []domain.Identity
	requiredSigs     int
	readonlySigned   int
	readonlyUnsigned int
	blockhash        domain.Hash
	instructions     []instruction
}

// compileMessage orders accounts as the runtime expects: fee payer first,
// then writable signers, readonly signers, writable and readonly
// non-signers. Program ids are readonly non-signers.
func compileMessage(payer domain.Identity, blockhash domain.Hash, instructions ...instruction) (message, error) {
	type flags struct{ signer, writable bool }
	seen := map[domain.Identity]*flags{payer: {signer: true, writable: true}}
	order := []domain.Identity{payer}

	add := func(key domain.Identity, signer, writable bool) {
		if f, ok := seen[key]; ok {
			f.signer = f.signer || signer
			f.writable = f.writable || writable
			return
		}
		seen[key] = &flags{signer: signer, writable: writable}
		order = append(order, key)
	}
	for _, ix := range instructions {
		for _, meta := range ix.accounts {
			add(meta.key, meta.signer, meta.writable)
		}
		add(ix.programID, false, false)
	}

	var groups [4][]domain.Identity
	for _, key := range order[1:] {
		f := seen[key]
		switch {
		case f.signer && f.writable:
			groups[0] = append(groups[0], key)
		case f.signer:
			groups[1] = append(groups[1], key)
		case f.writable:
			groups[2] = append(groups[2], key)
		default:
			groups[3] = append(groups[3], key)
		}
	}

	msg := message{blockhash: blockhash, instructions: instructions}
	msg.keys = append(msg.keys, payer)
	for _, group := range groups {
		msg.keys = append(msg.keys, group...)
	}
	msg.requiredSigs = 1 + len(groups[0]) + len(groups[1])
	msg.readonlySigned = len(groups[1])
	msg.readonlyUnsigned = len(groups[3])

	if len(msg.keys) > 256 {
		return message{}, fmt.Errorf("compile message: %d accounts exceed the limit", len(msg.keys))
	}
	return msg, nil
}

func (m message) signers() []domain.Identity {
	return m.keys[:m.requiredSigs]
}

func (m message) indexOf(key domain.Identity) int {
	for i, candidate := range m.keys {
		if candidate == key {
			return i
		}
	}
	return -1
}

func (m message) serialize() []byte {
	out := []byte{byte(m.requiredSigs), byte(m.readonlySigned), byte(m.readonlyUnsigned)}

	out = appendCompactU16(out, len(m.keys))
	for _, key := range m.keys {
		out = append(out, key[:]...)
	}
	out = append(out, m.blockhash[:]...)

	out = appendCompactU16(out, len(m.instructions))
	for _, ix := range m.instructions {
		out = append(out, byte(m.indexOf(ix.programID)))
		out = appendCompactU16(out, len(ix.accounts))
		for _, meta := range ix.accounts {
			out = append(out, byte(m.indexOf(meta.key)))
		}
		out = appendCompactU16(out, len(ix.data))
		out = append(out, ix.data...)
	}

	return out
}

func serializeTransaction(signatures [][]byte, msg []byte) []byte {
	out := appendCompactU16(nil, len(signatures))
	for _, signature := range signatures {
		out = append(out, signature...)
	}
	return append(out, msg...)
}

// appendCompactU16 writes n as the runtime's short vector length: seven bits
// per byte, high bit set on every byte but the last.
func appendCompactU16(dst []byte, n int) []byte {
	v := uint16(n)
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(dst, b)
		}
		dst = append(dst, b|0x80)
	}
}
