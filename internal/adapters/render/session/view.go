package session

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bnema/link-portal-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Target domain.Identity
	// Now, when set, adds the notice age.
	Now time.Time
}

func renderView(session domain.Session, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Link Portal"),
		s.header.Render("record: " + opts.Target.String()),
		walletLine(session, s),
	}

	if session.Notice != nil {
		lines = append(lines, s.warning.Render(noticeLine(*session.Notice, opts.Now)))
	}

	lines = append(lines, s.section.Render(recordBlock(session, s)))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func walletLine(session domain.Session, s styles) string {
	if !session.Connected {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			s.header.Render("wallet: not connected "),
			s.hint.Render("(run `lp connect`)"),
		)
	}
	return s.header.Render("wallet: ") + s.wallet.Render(session.Wallet.String())
}

func recordBlock(session domain.Session, s styles) string {
	switch session.Record.Status {
	case domain.RecordMissing:
		return lipgloss.JoinVertical(lipgloss.Left,
			s.empty.Render("The record has not been created yet."),
			s.hint.Render("Run `lp init` to do the one-time initialization."),
		)
	case domain.RecordReady:
		return entryLines(session, s)
	default:
		if !session.Connected {
			return s.empty.Render("Connect a wallet to load the record.")
		}
		return s.empty.Render("Record state unknown.")
	}
}

func entryLines(session domain.Session, s styles) string {
	entries := session.Record.Entries
	lines := []string{s.header.Render(fmt.Sprintf("entries: %d", len(entries)))}
	if len(entries) == 0 {
		lines = append(lines, s.empty.Render("No links yet. Add one with `lp submit <link>`."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	width := len(strconv.Itoa(len(entries)))
	for _, entry := range entries {
		submitter := s.submitter.Render("by " + entry.Submitter.Short())
		if session.Connected && entry.Submitter == session.Wallet {
			submitter = s.mine.Render("by you")
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			s.position.Render(fmt.Sprintf("%*d. ", width, entry.Position+1)),
			s.link.Render(entry.Link),
			" ",
			submitter,
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func noticeLine(notice domain.Notice, now time.Time) string {
	line := "! " + notice.Message
	if !now.IsZero() && !notice.At.IsZero() && now.After(notice.At) {
		line += fmt.Sprintf(" (%s ago)", now.Sub(notice.At).Round(time.Second))
	}
	return line
}
