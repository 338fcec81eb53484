package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ledgerchat/internal/domain"
)

// send <contact> <message>: encrypt and append a message for <contact>.
func sendCmd() *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "send <contact> [message]",
		Short: "Encrypt and send a message or file to a contact",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := account(cmd)
			if err != nil {
				return err
			}
			to := domain.Address(args[0])

			var msg domain.Message
			if filePath != "" {
				data, err := os.ReadFile(filePath)
				if err != nil {
					return err
				}
				msg, err = wire.Messenger.SendFile(cmd.Context(), me, to, filepath.Base(filePath), data)
				if err != nil {
					return err
				}
			} else {
				if len(args) < 2 {
					return fmt.Errorf("message text required unless --file is set")
				}
				msg, err = wire.Messenger.Send(cmd.Context(), me, to, args[1])
				if err != nil {
					return err
				}
			}
			fmt.Printf("sent %s\n", msg.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&filePath, "file", "", "send this file as an attachment instead of text")
	return cmd
}
