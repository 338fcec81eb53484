package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ledgerchat/internal/app"
	"ledgerchat/internal/domain"
)

var (
	cfg     app.Config
	wire    *app.Wire
	verbose bool
)

// Execute builds the root command tree and runs it.
func Execute() error {
	cfg = app.LoadConfig()

	root := &cobra.Command{
		Use:   "ledgerchat",
		Short: "End-to-end encrypted messaging over an append-only ledger",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				cfg.Home = filepath.Join(dir, ".ledgerchat")
			}
			if cfg.Account == "" {
				return fmt.Errorf("account required (--account or LEDGERCHAT_ACCOUNT)")
			}
			if cfg.Passphrase == "" {
				return fmt.Errorf("passphrase required (-p or LEDGERCHAT_PASSPHRASE)")
			}

			logger := zap.NewNop()
			if verbose {
				var err error
				if logger, err = zap.NewDevelopment(); err != nil {
					return err
				}
			}

			var err error
			wire, err = app.NewWire(cfg, logger)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if wire != nil {
				return wire.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfg.Home, "home", cfg.Home, "data dir (default ~/.ledgerchat)")
	root.PersistentFlags().StringVar(&cfg.Account, "account", cfg.Account, "your account address")
	root.PersistentFlags().StringVarP(&cfg.Passphrase, "passphrase", "p", cfg.Passphrase, "passphrase protecting local keys")
	root.PersistentFlags().StringVar(&cfg.LedgerURL, "ledger", cfg.LedgerURL, "ledger gateway base URL")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		connectCmd(),
		sendCmd(),
		historyCmd(),
		watchCmd(),
		contactsCmd(),
		reactCmd(),
		readCmd(),
		editCmd(),
		deleteCmd(),
	)
	return root.Execute()
}

// account returns the signer-provided local address.
func account(cmd *cobra.Command) (domain.Address, error) {
	return wire.Signer.Account(cmd.Context())
}
