package commands

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/shipapi/internal/constants"
	"github.com/fivetwenty-io/shipapi/pkg/shipapi"
)

// NewBillingCommand creates the billing command group.
func NewBillingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "billing",
		Short: "Manage payment methods and wallet",
		Long:  "View payment methods, fund the wallet, and remove payment methods",
	}

	cmd.AddCommand(newBillingPaymentMethodsCommand())
	cmd.AddCommand(newBillingFundCommand())
	cmd.AddCommand(newBillingDeletePaymentMethodCommand())

	return cmd
}

func newBillingPaymentMethodsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "payment-methods",
		Aliases: []string{"pm"},
		Short:   "List payment methods",
		Long:    "Display the primary and secondary payment methods on file",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			methods, err := client.Billing().RetrievePaymentMethods(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to retrieve payment methods: %w", err)
			}

			return render(cmd.OutOrStdout(), methods, func(table *tablewriter.Table) error {
				table.Header("Priority", "ID", "Type", "Details")

				for _, priority := range []shipapi.Priority{shipapi.PriorityPrimary, shipapi.PrioritySecondary} {
					_ = table.Append(paymentMethodRow(priority, methods.ByPriority(priority))...)
				}

				return nil
			})
		},
	}
}

func paymentMethodRow(priority shipapi.Priority, method *shipapi.PaymentMethod) []interface{} {
	if method == nil || method.ID == "" {
		return []interface{}{string(priority), NotAvailable, NotAvailable, NotAvailable}
	}

	family := shipapi.PaymentMethodFamilyOf(method.ID)

	details := NotAvailable

	switch family {
	case shipapi.PaymentMethodFamilyCard:
		details = fmt.Sprintf("%s ending %s exp %02d/%d", valueOr(method.Brand, "card"), method.Last4, method.ExpMonth, method.ExpYear)
	case shipapi.PaymentMethodFamilyBank:
		details = fmt.Sprintf("%s ending %s", valueOr(method.BankName, "bank"), method.Last4)
	case shipapi.PaymentMethodFamilyUnknown:
	}

	return []interface{}{string(priority), method.ID, family.String(), details}
}

func newBillingFundCommand() *cobra.Command {
	var priority string

	cmd := &cobra.Command{
		Use:   "fund AMOUNT",
		Short: "Fund the wallet",
		Long:  "Charge a stored payment method and add the amount, in cents, to the wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount := strings.TrimSpace(args[0])
			if amount == "" {
				return constants.ErrAmountRequired
			}

			p, err := parsePriority(priority)
			if err != nil {
				return err
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			err = client.Billing().FundWallet(cmd.Context(), amount, p)
			if err != nil {
				return fmt.Errorf("failed to fund wallet: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Funded wallet with %s using the %s payment method\n", amount, p)

			return nil
		},
	}

	cmd.Flags().StringVarP(&priority, "priority", "p", string(shipapi.PriorityPrimary), "payment method to charge (primary, secondary)")

	return cmd
}

func newBillingDeletePaymentMethodCommand() *cobra.Command {
	var priority string

	cmd := &cobra.Command{
		Use:   "delete-payment-method",
		Short: "Delete a payment method",
		Long:  "Remove the primary or secondary payment method from the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePriority(priority)
			if err != nil {
				return err
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			err = client.Billing().DeletePaymentMethod(cmd.Context(), p)
			if err != nil {
				return fmt.Errorf("failed to delete payment method: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted the %s payment method\n", p)

			return nil
		},
	}

	cmd.Flags().StringVarP(&priority, "priority", "p", string(shipapi.PriorityPrimary), "payment method to delete (primary, secondary)")

	return cmd
}
