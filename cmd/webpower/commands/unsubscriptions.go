package commands

import (
	"time"

	"github.com/spf13/cobra"
)

func unsubscriptionsCmd() *cobra.Command {
	var fromArg, toArg string

	cmd := &cobra.Command{
		Use:   "unsubscriptions [mailinglist-id]",
		Short: "List unsubscriptions on a list within a period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, err := parseID(args[0], "mailinglist id")
			if err != nil {
				return err
			}

			from, err := parseTime(fromArg)
			if err != nil {
				return err
			}

			var to time.Time
			if toArg != "" {
				if to, err = parseTime(toArg); err != nil {
					return err
				}
			}

			unsubscriptions, err := client.Unsubscriptions(cmd.Context(), listID, from, to)
			if err != nil {
				return err
			}

			return printJSON(unsubscriptions)
		},
	}

	cmd.Flags().StringVar(&fromArg, "from", "", "start of the period (RFC 3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&toArg, "to", "", "end of the period, defaults to now")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}
