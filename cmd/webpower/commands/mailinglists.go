package commands

import (
	"github.com/spf13/cobra"
)

func mailinglistsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mailinglists",
		Short: "List all mailing lists of the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lists, err := client.MailingLists(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(lists)
		},
	}
}
