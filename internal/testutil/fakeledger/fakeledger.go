// Package fakeledger is an in-process JSON-RPC ledger node that runs the
// record program, for adapter and command tests.
package fakeledger

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/bnema/link-portal-cli/internal/domain"
)

const recordSpace = 9000

type Options struct {
	ProgramID         domain.Identity
	AppendInstruction string
	AccountType       string
}

type Entry struct {
	Link      string
	Submitter domain.Identity
}

type Ledger struct {
	server *httptest.Server
	opts   Options

	mu         sync.Mutex
	accounts   map[domain.Identity][]byte
	blockhash  domain.Hash
	issued     map[domain.Hash]bool
	statuses   map[string]bool
	calls      map[string]int
	httpFaults map[string][]int
}

// New starts a ledger serving until the test ends.
func New(t testing.TB, opts Options) *Ledger {
	t.Helper()

	if opts.AppendInstruction == "" {
		opts.AppendInstruction = "add_gif"
	}
	if opts.AccountType == "" {
		opts.AccountType = "BaseAccount"
	}

	l := &Ledger{
		opts:       opts,
		accounts:   map[domain.Identity][]byte{},
		issued:     map[domain.Hash]bool{},
		statuses:   map[string]bool{},
		calls:      map[string]int{},
		httpFaults: map[string][]int{},
	}
	l.server = httptest.NewServer(http.HandlerFunc(l.serveHTTP))
	t.Cleanup(l.server.Close)

	return l
}

func (l *Ledger) URL() string {
	return l.server.URL
}

// FailNext makes the next call to method answer with an HTTP status instead
// of a JSON-RPC response.
func (l *Ledger) FailNext(method string, status int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.httpFaults[method] = append(l.httpFaults[method], status)
}

func (l *Ledger) Calls(method string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls[method]
}

// SetAccount stores raw account data, bypassing the program.
func (l *Ledger) SetAccount(key domain.Identity, data []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.accounts[key] = append([]byte(nil), data...)
}

// Seed creates the record account holding entries.
func (l *Ledger) Seed(target domain.Identity, entries ...Entry) {
	data := l.emptyRecord()
	for _, entry := range entries {
		data = appendEntry(data, entry)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.accounts[target] = data
}

// Entries decodes the record account, or returns nil if it does not exist.
func (l *Ledger) Entries(target domain.Identity) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, ok := l.accounts[target]
	if !ok {
		return nil
	}
	entries, _ := readEntries(data)
	return entries
}

func (l *Ledger) instructionTag(name string) string {
	sum := sha256.Sum256([]byte("global:" + name))
	return string(sum[:8])
}

func (l *Ledger) emptyRecord() []byte {
	sum := sha256.Sum256([]byte("account:" + l.opts.AccountType))
	data := make([]byte, 0, recordSpace)
	data = append(data, sum[:8]...)
	data = binary.LittleEndian.AppendUint64(data, 0)
	return binary.LittleEndian.AppendUint32(data, 0)
}

// appendEntry rewrites the record with one more item. The record is kept
// unpadded here and padded when served.
func appendEntry(data []byte, entry Entry) []byte {
	entries, _ := readEntries(data)
	entries = append(entries, entry)

	out := append([]byte(nil), data[:8]...)
	total := binary.LittleEndian.Uint64(data[8:16]) + 1
	out = binary.LittleEndian.AppendUint64(out, total)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(entries)))
	for _, e := range entries {
		out = binary.LittleEndian.AppendUint32(out, uint32(len(e.Link)))
		out = append(out, e.Link...)
		out = append(out, e.Submitter[:]...)
	}
	return out
}

func readEntries(data []byte) ([]Entry, error) {
	if len(data) < 20 {
		return nil, errors.New("record too short")
	}
	count := binary.LittleEndian.Uint32(data[16:20])
	off := 20
	entries := make([]Entry, 0, count)
	for i := uint32(0); i < count; i++ {
		if off+4 > len(data) {
			return nil, errors.New("record truncated")
		}
		n := int(binary.LittleEndian.Uint32(data[off:]))
		off += 4
		if off+n+32 > len(data) {
			return nil, errors.New("record truncated")
		}
		var submitter domain.Identity
		copy(submitter[:], data[off+n:off+n+32])
		entries = append(entries, Entry{Link: string(data[off : off+n]), Submitter: submitter})
		off += n + 32
	}
	return entries, nil
}

func pad(data []byte) []byte {
	if len(data) >= recordSpace {
		return data
	}
	out := make([]byte, recordSpace)
	copy(out, data)
	return out
}
