package commands

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"ledgerchat/internal/domain"
)

// watch <contact>: follow the conversation until interrupted.
func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <contact>",
		Short: "Follow a conversation, reprinting it on every change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := account(cmd)
			if err != nil {
				return err
			}
			contact := domain.Address(args[0])

			sub, err := wire.Sync.Subscribe(cmd.Context(), me, contact, func(msgs []domain.Message) {
				fmt.Print("\033[2J\033[H") // clear screen between snapshots
				for _, m := range msgs {
					printMessage(me, m)
				}
			})
			if err != nil {
				return err
			}
			defer sub.Cancel()

			// First paint without waiting for an event.
			msgs, err := wire.Sync.LoadConversation(cmd.Context(), me, contact)
			if err != nil {
				return err
			}
			for _, m := range msgs {
				printMessage(me, m)
			}

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt)
			<-stop
			return nil
		},
	}
}
