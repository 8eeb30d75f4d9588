package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "lp",
		Short:         "Link Portal CLI (lp): a shared list of links on the ledger",
		Long:          "lp connects a wallet, creates the shared link record once, appends links to it and shows who submitted each one.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().BoolVar(&flags.metrics, "metrics", false, "Print ledger request metrics to stderr after the command")

	rootCmd.AddCommand(
		newVersionCmd(),
		newConnectCmd(flags),
		newStatusCmd(flags),
		newInitCmd(flags),
		newSubmitCmd(flags),
		newWalletCmd(flags),
	)

	return rootCmd
}
