package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"ledgerchat/internal/crypto"
	"ledgerchat/internal/domain"
)

// react <contact> <message-id> <emoji>: attach a reaction.
func reactCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "react <contact> <message-id> <emoji>",
		Short: "React to a message with an emoji",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := account(cmd)
			if err != nil {
				return err
			}
			conv := crypto.ConversationID(me, domain.Address(args[0]))
			if err := wire.Messenger.React(cmd.Context(), me, conv, args[1], args[2]); err != nil {
				return err
			}
			fmt.Println("reacted")
			return nil
		},
	}
}
