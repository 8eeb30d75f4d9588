package fakeledger

import (
	"errors"

	"github.com/bnema/link-portal-cli/internal/domain"
)

type compiledInstruction struct {
	programIndex int
	accounts     []int
	data         []byte
}

type transaction struct {
	signatures   [][]byte
	message      []byte
	requiredSigs int
	keys         []domain.Identity
	blockhash    domain.Hash
	instructions []compiledInstruction
}

func (tx transaction) isSigner(index int) bool {
	return index < tx.requiredSigs
}

var errShort = errors.New("transaction truncated")

type cursor struct {
	buf []byte
	off int
}

func (c *cursor) take(n int) ([]byte, error) {
	if n < 0 || c.off+n > len(c.buf) {
		return nil, errShort
	}
	out := c.buf[c.off : c.off+n]
	c.off += n
	return out, nil
}

func (c *cursor) shortVec() (int, error) {
	value := 0
	for shift := 0; shift < 21; shift += 7 {
		b, err := c.take(1)
		if err != nil {
			return 0, err
		}
		value |= int(b[0]&0x7f) << shift
		if b[0]&0x80 == 0 {
			return value, nil
		}
	}
	return 0, errors.New("short vector length overflows")
}

func parseTransaction(raw []byte) (transaction, error) {
	c := &cursor{buf: raw}
	var tx transaction

	count, err := c.shortVec()
	if err != nil {
		return tx, err
	}
	for i := 0; i < count; i++ {
		signature, err := c.take(64)
		if err != nil {
			return tx, err
		}
		tx.signatures = append(tx.signatures, signature)
	}

	tx.message = raw[c.off:]
	header, err := c.take(3)
	if err != nil {
		return tx, err
	}
	tx.requiredSigs = int(header[0])

	keyCount, err := c.shortVec()
	if err != nil {
		return tx, err
	}
	for i := 0; i < keyCount; i++ {
		key, err := c.take(32)
		if err != nil {
			return tx, err
		}
		var id domain.Identity
		copy(id[:], key)
		tx.keys = append(tx.keys, id)
	}

	hash, err := c.take(32)
	if err != nil {
		return tx, err
	}
	copy(tx.blockhash[:], hash)

	ixCount, err := c.shortVec()
	if err != nil {
		return tx, err
	}
	for i := 0; i < ixCount; i++ {
		program, err := c.take(1)
		if err != nil {
			return tx, err
		}
		ix := compiledInstruction{programIndex: int(program[0])}

		accountCount, err := c.shortVec()
		if err != nil {
			return tx, err
		}
		indices, err := c.take(accountCount)
		if err != nil {
			return tx, err
		}
		for _, index := range indices {
			if int(index) >= len(tx.keys) {
				return tx, errors.New("account index out of range")
			}
			ix.accounts = append(ix.accounts, int(index))
		}

		dataLen, err := c.shortVec()
		if err != nil {
			return tx, err
		}
		if ix.data, err = c.take(dataLen); err != nil {
			return tx, err
		}
		if ix.programIndex >= len(tx.keys) {
			return tx, errors.New("program index out of range")
		}
		tx.instructions = append(tx.instructions, ix)
	}

	if c.off != len(raw) {
		return tx, errors.New("trailing bytes after message")
	}
	return tx, nil
}
