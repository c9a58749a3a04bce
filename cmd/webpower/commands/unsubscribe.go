package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func unsubscribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unsubscribe [mailinglist-id] [email]",
		Short: "Remove a subscriber from a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, err := parseID(args[0], "mailinglist id")
			if err != nil {
				return err
			}

			status, err := client.Unsubscribe(cmd.Context(), listID, args[1])
			if err != nil {
				return err
			}

			fmt.Println(status)
			return nil
		},
	}
}
