package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/link-portal-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newWalletCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Manage the local wallet",
	}

	cmd.AddCommand(
		newWalletCreateCmd(flags),
		newWalletImportCmd(flags),
		newWalletAddressCmd(flags),
		newWalletRevokeCmd(flags),
	)

	return cmd
}

func newWalletCreateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a wallet and print its recovery phrase once",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(cmd *cobra.Command, app *app, _ []string) error {
			passphrase, err := walletPassphrase(cmd, app)
			if err != nil {
				return err
			}

			mnemonic, identity, err := app.wallet.Create(cmd.Context(), passphrase)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Wallet %q created: %s\n", app.config.Wallet.Name, identity)
			_, _ = fmt.Fprintln(out, "Recovery phrase (shown once, keep it safe):")
			_, err = fmt.Fprintln(out, mnemonic)
			return err
		}),
	}
}

func newWalletImportCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Import a wallet from a recovery phrase read on stdin",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(cmd *cobra.Command, app *app, _ []string) error {
			mnemonic, err := app.approver.Ask(cmd.Context(), "Recovery phrase: ")
			if err != nil {
				return err
			}
			passphrase, err := walletPassphrase(cmd, app)
			if err != nil {
				return err
			}

			identity, err := app.wallet.Import(cmd.Context(), mnemonic, passphrase)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wallet %q imported: %s\n", app.config.Wallet.Name, identity)
			return err
		}),
	}
}

func newWalletAddressCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print the wallet address",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(cmd *cobra.Command, app *app, _ []string) error {
			passphrase, err := walletPassphrase(cmd, app)
			if err != nil {
				return err
			}

			identity, err := app.wallet.Address(cmd.Context(), passphrase)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), identity)
			return err
		}),
	}
}

func newWalletRevokeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "revoke",
		Short: "Forget this app's wallet approval",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(cmd *cobra.Command, app *app, _ []string) error {
			origin := app.config.Wallet.Origin
			err := app.wallet.Revoke(cmd.Context())
			switch {
			case errors.Is(err, domain.ErrTrustNotFound):
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%q was not trusted\n", origin)
				return err
			case err != nil:
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Revoked wallet approval for %q\n", origin)
			return err
		}),
	}
}

func walletPassphrase(cmd *cobra.Command, app *app) (string, error) {
	if app.config.Wallet.Passphrase != "" {
		return app.config.Wallet.Passphrase, nil
	}
	return app.approver.Passphrase(cmd.Context())
}
