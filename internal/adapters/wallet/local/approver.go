package local

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/bnema/link-portal-cli/internal/domain"
)

// Approver stands in for the wallet's own confirmation dialog.
type Approver interface {
	Approve(ctx context.Context, origin string, identity domain.Identity) (bool, error)
	Passphrase(ctx context.Context) (string, error)
}

// PromptApprover asks on a terminal. With AutoApprove set the connection
// question is answered yes without reading input.
type PromptApprover struct {
	In          io.Reader
	Out         io.Writer
	AutoApprove bool

	once   sync.Once
	reader *bufio.Reader
}

var _ Approver = (*PromptApprover)(nil)

func (p *PromptApprover) Approve(ctx context.Context, origin string, identity domain.Identity) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if p.AutoApprove {
		return true, nil
	}

	if _, err := fmt.Fprintf(p.Out, "Allow %q to connect to wallet %s? [y/N]: ", origin, identity); err != nil {
		return false, err
	}
	answer, err := p.readLine()
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (p *PromptApprover) Passphrase(ctx context.Context) (string, error) {
	return p.Ask(ctx, "Wallet passphrase: ")
}

// Ask prints prompt and reads one trimmed line.
func (p *PromptApprover) Ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := fmt.Fprint(p.Out, prompt); err != nil {
		return "", err
	}
	return p.readLine()
}

func (p *PromptApprover) readLine() (string, error) {
	p.once.Do(func() {
		p.reader = bufio.NewReader(p.In)
	})

	line, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
