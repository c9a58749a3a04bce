package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"webpower-client/internal/webpower"
)

func subscribeCmd() *cobra.Command {
	var firstname, infix, lastname string
	var fields []string

	cmd := &cobra.Command{
		Use:   "subscribe [mailinglist-id] [email]",
		Short: "Add or update a subscriber on a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, err := parseID(args[0], "mailinglist id")
			if err != nil {
				return err
			}

			subscriber := webpower.Subscriber{
				Email:     args[1],
				Firstname: firstname,
				Infix:     infix,
				Lastname:  lastname,
			}

			for _, f := range fields {
				key, value, found := strings.Cut(f, "=")
				if !found {
					return fmt.Errorf("invalid field %q, want key=value", f)
				}
				if subscriber.Fields == nil {
					subscriber.Fields = map[string]any{}
				}
				subscriber.Fields[key] = value
			}

			status, err := client.Subscribe(cmd.Context(), listID, subscriber)
			if err != nil {
				return err
			}

			fmt.Println(status)
			return nil
		},
	}

	cmd.Flags().StringVar(&firstname, "firstname", "", "subscriber first name")
	cmd.Flags().StringVar(&infix, "infix", "", "subscriber name infix (tussenvoegsel)")
	cmd.Flags().StringVar(&lastname, "lastname", "", "subscriber last name")
	cmd.Flags().StringArrayVar(&fields, "field", nil, "additional column as key=value, repeatable")

	return cmd
}
