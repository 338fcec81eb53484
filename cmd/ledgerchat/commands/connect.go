package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func connectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "connect",
		Short: "Ensure your key pair exists and publish the public key",
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := account(cmd)
			if err != nil {
				return err
			}
			fp, err := wire.Messenger.Connect(cmd.Context(), me)
			if err != nil {
				return err
			}
			fmt.Printf("Connected as %s.\nKey fingerprint: %s\n", me.Short(), fp)
			return nil
		},
	}
}
