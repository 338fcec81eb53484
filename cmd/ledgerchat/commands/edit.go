package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"ledgerchat/internal/crypto"
	"ledgerchat/internal/domain"
)

// edit <contact> <message-id> <text>: supersede a sent message with new
// text. Only the original sender's edits are honoured on replay.
func editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <contact> <message-id> <text>",
		Short: "Edit a message you sent",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := account(cmd)
			if err != nil {
				return err
			}
			to := domain.Address(args[0])
			conv := crypto.ConversationID(me, to)
			if err := wire.Messenger.Edit(cmd.Context(), me, to, conv, args[1], args[2]); err != nil {
				return err
			}
			fmt.Println("edited")
			return nil
		},
	}
}

// delete <contact> <message-id>: supersede a sent message with a tombstone.
func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <contact> <message-id>",
		Short: "Delete a message you sent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := account(cmd)
			if err != nil {
				return err
			}
			conv := crypto.ConversationID(me, domain.Address(args[0]))
			if err := wire.Messenger.Delete(cmd.Context(), me, conv, args[1]); err != nil {
				return err
			}
			fmt.Println("deleted")
			return nil
		},
	}
}
