package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"webpower-client/internal/webpower"
)

func createMailingCmd() *cobra.Command {
	var m webpower.MailingContent
	var htmlFile, textFile string

	cmd := &cobra.Command{
		Use:   "create-mailing [mailinglist-id]",
		Short: "Create a mailing from content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, err := parseID(args[0], "mailinglist id")
			if err != nil {
				return err
			}
			m.MailinglistID = listID

			if htmlFile != "" {
				body, err := os.ReadFile(htmlFile)
				if err != nil {
					return err
				}
				m.HTMLBody = string(body)
			}
			if textFile != "" {
				body, err := os.ReadFile(textFile)
				if err != nil {
					return err
				}
				m.TextBody = string(body)
			}

			id, err := client.CreateMailingFromContent(cmd.Context(), m)
			if err != nil {
				return err
			}

			fmt.Println(id)
			return nil
		},
	}

	cmd.Flags().StringVar(&m.Name, "name", "", "internal name of the mailing")
	cmd.Flags().StringVar(&m.Subject, "subject", "", "subject line")
	cmd.Flags().StringVar(&m.FromName, "from-name", "", "sender display name")
	cmd.Flags().StringVar(&m.FromEmail, "from-email", "", "sender address")
	cmd.Flags().StringVar(&htmlFile, "html", "", "file with the HTML body")
	cmd.Flags().StringVar(&textFile, "text", "", "file with the plain text body")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

func createFromTemplateCmd() *cobra.Command {
	var m webpower.TemplateMailing

	cmd := &cobra.Command{
		Use:   "create-from-template [mailinglist-id] [template-id]",
		Short: "Create a mailing from a stored template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, err := parseID(args[0], "mailinglist id")
			if err != nil {
				return err
			}
			templateID, err := parseID(args[1], "template id")
			if err != nil {
				return err
			}
			m.MailinglistID = listID
			m.TemplateID = templateID

			id, err := client.CreateMailingFromTemplate(cmd.Context(), m)
			if err != nil {
				return err
			}

			fmt.Println(id)
			return nil
		},
	}

	cmd.Flags().StringVar(&m.Name, "name", "", "internal name of the mailing")
	cmd.Flags().StringVar(&m.Subject, "subject", "", "subject line")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
