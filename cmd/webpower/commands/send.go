package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func sendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send [mailing-id] [subscriber-id]...",
		Short: "Send a mailing to a set of subscribers",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mailingID, err := parseID(args[0], "mailing id")
			if err != nil {
				return err
			}

			subscriberIDs := make([]int64, 0, len(args)-1)
			for _, arg := range args[1:] {
				id, err := parseID(arg, "subscriber id")
				if err != nil {
					return err
				}
				subscriberIDs = append(subscriberIDs, id)
			}

			queued, err := client.SendMailingToSubscribers(cmd.Context(), mailingID, subscriberIDs)
			if err != nil {
				return err
			}

			fmt.Printf("queued %d messages\n", queued)
			return nil
		},
	}
}
