package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/shipapi/pkg/shipapi"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Inspect users",
		Long:    "Display the authenticated user and its child accounts",
	}

	cmd.AddCommand(newUsersMeCommand())
	cmd.AddCommand(newUsersGetCommand())

	return cmd
}

func newUsersMeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the authenticated user",
		Long:  "Display the user that owns the configured API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			user, err := client.Users().RetrieveMe(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to retrieve user: %w", err)
			}

			return renderUser(cmd, user)
		},
	}
}

func newUsersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get USER_ID",
		Short: "Show a user",
		Long:  "Display a child user of the authenticated account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			user, err := client.Users().Retrieve(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to retrieve user: %w", err)
			}

			return renderUser(cmd, user)
		},
	}
}

func renderUser(cmd *cobra.Command, user *shipapi.User) error {
	return render(cmd.OutOrStdout(), user, func(table *tablewriter.Table) error {
		table.Header("Property", "Value")
		_ = table.Append("ID", user.ID)
		_ = table.Append("Name", user.Name)
		_ = table.Append("Email", user.Email)
		_ = table.Append("Balance", valueOr(user.Balance, NotAvailable))
		_ = table.Append("Recharge Threshold", valueOr(user.RechargeThreshold, NotAvailable))
		_ = table.Append("Children", fmt.Sprint(len(user.Children)))

		return nil
	})
}
