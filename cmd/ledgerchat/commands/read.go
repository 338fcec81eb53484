package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"ledgerchat/internal/crypto"
	"ledgerchat/internal/domain"
)

// read <contact> <message-id>: acknowledge receipt and mark read. The
// ledger keeps both records; stale ones are no-ops on replay.
func readCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <contact> <message-id>",
		Short: "Mark a received message as read",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := account(cmd)
			if err != nil {
				return err
			}
			conv := crypto.ConversationID(me, domain.Address(args[0]))
			if err := wire.Messenger.AckDelivered(cmd.Context(), me, conv, args[1]); err != nil {
				return err
			}
			if err := wire.Messenger.MarkRead(cmd.Context(), me, conv, args[1]); err != nil {
				return err
			}
			fmt.Println("read")
			return nil
		},
	}
}
