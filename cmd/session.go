package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sessionrender "github.com/bnema/link-portal-cli/internal/adapters/render/session"
	"github.com/bnema/link-portal-cli/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// statusOutput is the machine-readable form of one session.
type statusOutput struct {
	Program  domain.Identity `json:"program" yaml:"program"`
	Target   domain.Identity `json:"target" yaml:"target"`
	Endpoint string          `json:"endpoint" yaml:"endpoint"`
	Session  domain.Session  `json:"session" yaml:"session"`
}

func newConnectCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect the wallet and show the shared record",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(cmd *cobra.Command, app *app, _ []string) error {
			ctx := cmd.Context()
			app.controller.RestoreSession(ctx)
			if err := app.controller.Connect(ctx); err != nil {
				return err
			}

			return writeSession(cmd, app, formatText)
		}),
	}
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "Approve the wallet connection without asking")

	return cmd
}

func newStatusCmd(flags *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "status",
		Aliases: []string{"list"},
		Short:   "Show the wallet and the shared record",
		Args:    cobra.NoArgs,
		RunE: withApp(flags, func(cmd *cobra.Command, app *app, _ []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			err := runPendingSpinner(cmd.Context(), cmd.ErrOrStderr(), "Loading record...", func(ctx context.Context) error {
				app.controller.RestoreSession(ctx)
				return nil
			})
			if err != nil {
				return err
			}

			return writeSession(cmd, app, format)
		}),
	}
	cmd.Flags().StringVarP(&format, "format", "o", formatText, "Output format: text, json or yaml")

	return cmd
}

func newInitCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the shared record (one-time initialization)",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(cmd *cobra.Command, app *app, _ []string) error {
			if err := ensureConnected(cmd.Context(), app); err != nil {
				return err
			}

			err := runPendingSpinner(cmd.Context(), cmd.ErrOrStderr(), "Creating record...", app.controller.ProvisionRecord)
			if err != nil {
				return err
			}

			return writeSession(cmd, app, formatText)
		}),
	}
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "Approve the wallet connection without asking")

	return cmd
}

func newSubmitCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit <link>",
		Short: "Append a link to the shared record",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(flags, func(cmd *cobra.Command, app *app, args []string) error {
			if strings.TrimSpace(args[0]) == "" {
				return fmt.Errorf("submit entry: %w", domain.ErrEmptyEntry)
			}
			if err := ensureConnected(cmd.Context(), app); err != nil {
				return err
			}

			app.controller.UpdatePendingInput(args[0])
			err := runPendingSpinner(cmd.Context(), cmd.ErrOrStderr(), "Submitting link...", app.controller.SubmitPending)
			if err != nil {
				return err
			}

			return writeSession(cmd, app, formatText)
		}),
	}
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "Approve the wallet connection without asking")

	return cmd
}

// ensureConnected restores a trusted session and falls back to an
// interactive connection.
func ensureConnected(ctx context.Context, app *app) error {
	app.controller.RestoreSession(ctx)
	if app.controller.Snapshot().Connected {
		return nil
	}
	return app.controller.Connect(ctx)
}

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported format %q (want text, json or yaml)", format)
	}
}

func writeSession(cmd *cobra.Command, app *app, format string) error {
	snapshot := app.controller.Snapshot()

	switch format {
	case formatJSON:
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(newStatusOutput(app, snapshot))
	case formatYAML:
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(newStatusOutput(app, snapshot)); err != nil {
			return err
		}
		return enc.Close()
	}

	rendered, err := app.renderer(snapshot, sessionrender.RenderOptions{
		Target: app.deployment.TargetAccount,
		Now:    app.clock.Now(),
	})
	if err != nil {
		return fmt.Errorf("render session: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func newStatusOutput(app *app, session domain.Session) statusOutput {
	return statusOutput{
		Program:  app.deployment.ProgramID,
		Target:   app.deployment.TargetAccount,
		Endpoint: app.deployment.Endpoint,
		Session:  session,
	}
}
