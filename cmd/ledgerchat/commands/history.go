package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ledgerchat/internal/domain"
)

// history <contact>: print the conversation in ledger insertion order.
func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <contact>",
		Short: "Show the conversation with a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := account(cmd)
			if err != nil {
				return err
			}
			msgs, err := wire.Sync.LoadConversation(cmd.Context(), me, domain.Address(args[0]))
			if err != nil {
				return err
			}
			for _, m := range msgs {
				printMessage(me, m)
			}
			return nil
		},
	}
}

func printMessage(me domain.Address, m domain.Message) {
	who := m.Sender.Short()
	if m.Sender.Equal(me) {
		who = "me"
	}
	ts := time.Unix(m.Timestamp, 0).Format("Jan 2 15:04")

	content := m.Content
	switch {
	case m.Deleted:
		content = "(deleted)"
	case m.Undecryptable:
		content = "(undecryptable)"
	case m.IsFile:
		content = "file: " + m.Content
	}
	if m.Edited && !m.Deleted {
		content += " (edited)"
	}

	line := fmt.Sprintf("[%s] %s [%s]: %s  %s", ts, who, m.ID, content, m.Status)
	for _, r := range m.Reactions {
		line += fmt.Sprintf("  %s(%s)", r.Emoji, r.User.Short())
	}
	fmt.Println(line)
}
