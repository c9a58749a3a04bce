package commands

import (
	"github.com/spf13/cobra"
)

func subscriberCmd() *cobra.Command {
	var columns []string

	cmd := &cobra.Command{
		Use:   "subscriber [mailinglist-id] [email]",
		Short: "Fetch a subscriber's profile by email",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, err := parseID(args[0], "mailinglist id")
			if err != nil {
				return err
			}

			profile, err := client.SubscriberByEmail(cmd.Context(), listID, args[1], columns...)
			if err != nil {
				return err
			}

			return printJSON(profile)
		},
	}

	cmd.Flags().StringArrayVar(&columns, "column", nil,
		"column to fetch, repeatable (default email, firstname, infix, lastname)")

	return cmd
}
