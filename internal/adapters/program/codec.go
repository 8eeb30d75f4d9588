package program

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/bnema/link-portal-cli/internal/domain"
)

const (
	discriminatorSize = 8
	entryKeySize      = domain.IdentitySize
)

func instructionDiscriminator(name string) []byte {
	sum := sha256.Sum256([]byte("global:" + name))
	return sum[:discriminatorSize]
}

func accountDiscriminator(accountType string) []byte {
	sum := sha256.Sum256([]byte("account:" + accountType))
	return sum[:discriminatorSize]
}

func appendBorshString(dst []byte, value string) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(value)))
	return append(dst, value...)
}

// decodeRecord reads the record account layout: discriminator, u64 total,
// then a vector of (string link, 32-byte submitter). Bytes after the vector
// are allocation padding and are ignored.
func decodeRecord(data []byte, discriminator []byte) ([]domain.Entry, error) {
	r := reader{buf: data}

	head, err := r.next(discriminatorSize)
	if err != nil {
		return nil, err
	}
	if string(head) != string(discriminator) {
		return nil, fmt.Errorf("%w: account discriminator %x does not match %x", domain.ErrDecoding, head, discriminator)
	}

	if _, err := r.next(8); err != nil {
		return nil, err
	}
	count, err := r.u32()
	if err != nil {
		return nil, err
	}
	if remaining := len(r.buf) - r.off; uint64(count)*(4+entryKeySize) > uint64(remaining) {
		return nil, fmt.Errorf("%w: %d entries cannot fit in %d bytes", domain.ErrDecoding, count, remaining)
	}

	entries := make([]domain.Entry, 0, count)
	for i := 0; i < int(count); i++ {
		linkLen, err := r.u32()
		if err != nil {
			return nil, err
		}
		link, err := r.next(int(linkLen))
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(link) {
			return nil, fmt.Errorf("%w: entry %d link is not valid UTF-8", domain.ErrDecoding, i)
		}
		key, err := r.next(entryKeySize)
		if err != nil {
			return nil, err
		}

		var submitter domain.Identity
		copy(submitter[:], key)
		entries = append(entries, domain.Entry{Link: string(link), Submitter: submitter, Position: i})
	}

	return entries, nil
}

type reader struct {
	buf []byte
	off int
}

func (r *reader) next(n int) ([]byte, error) {
	if n < 0 || len(r.buf)-r.off < n {
		return nil, fmt.Errorf("%w: account data truncated at byte %d", domain.ErrDecoding, r.off)
	}
	out := r.buf[r.off : r.off+n]
	r.off += n
	return out, nil
}

func (r *reader) u32() (uint32, error) {
	b, err := r.next(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}
