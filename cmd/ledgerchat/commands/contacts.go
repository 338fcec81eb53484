package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ledgerchat/internal/domain"
)

func contactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "Manage your address book",
	}
	cmd.AddCommand(contactsAddCmd(), contactsListCmd(), contactsBlockCmd(), contactsRemoveCmd())
	return cmd
}

func contactsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <address> <name>",
		Short: "Add a contact, resolving their published key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := account(cmd)
			if err != nil {
				return err
			}
			c, err := wire.Directory.AddContact(cmd.Context(), me, domain.Address(args[0]), args[1])
			if err != nil {
				return err
			}
			if c.PublicKey == "" {
				fmt.Printf("added %s (%s): no published key yet, sends will fail until they connect\n", c.Name, c.Address.Short())
				return nil
			}
			fmt.Printf("added %s (%s)\n", c.Name, c.Address.Short())
			return nil
		},
	}
}

func contactsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List contacts with presence",
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := account(cmd)
			if err != nil {
				return err
			}
			contacts, err := wire.Directory.List(cmd.Context(), me)
			if err != nil {
				return err
			}
			now := time.Now()
			for _, c := range contacts {
				state := "offline"
				if wire.Sync.Online(c, now) {
					state = "online"
				}
				flags := ""
				if c.Blocked {
					flags = " [blocked]"
				}
				fmt.Printf("%-20s %s  %s%s\n", c.Name, c.Address.Short(), state, flags)
			}
			return nil
		},
	}
}

func contactsBlockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "block <address>",
		Short: "Toggle a contact's blocked flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := account(cmd)
			if err != nil {
				return err
			}
			c, err := wire.Directory.ToggleBlock(cmd.Context(), me, domain.Address(args[0]))
			if err != nil {
				return err
			}
			if c.Blocked {
				fmt.Printf("%s blocked\n", c.Address.Short())
			} else {
				fmt.Printf("%s unblocked\n", c.Address.Short())
			}
			return nil
		},
	}
}

func contactsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <address>",
		Short: "Remove a contact from the local list (ledger metadata persists)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := account(cmd)
			if err != nil {
				return err
			}
			if err := wire.Directory.RemoveContact(cmd.Context(), me, domain.Address(args[0])); err != nil {
				return err
			}
			fmt.Println("removed")
			return nil
		},
	}
}
