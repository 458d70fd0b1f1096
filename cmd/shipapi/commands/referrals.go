package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fivetwenty-io/shipapi/internal/constants"
	"github.com/fivetwenty-io/shipapi/pkg/shipapi"
)

// NewReferralsCommand creates the referrals command group.
func NewReferralsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "referrals",
		Aliases: []string{"referral-customers"},
		Short:   "Manage referral customers",
		Long:    "Create, list, and update referral customers and add cards to them. Requires a partner API key.",
	}

	cmd.AddCommand(newReferralsListCommand())
	cmd.AddCommand(newReferralsCreateCommand())
	cmd.AddCommand(newReferralsUpdateEmailCommand())
	cmd.AddCommand(newReferralsAddCardCommand())

	return cmd
}

func newReferralsListCommand() *cobra.Command {
	var (
		pageSize int
		allPages bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List referral customers",
		Long:  "List the referral customers of the partner account, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pageSize <= 0 || pageSize > constants.MaxPageSize {
				pageSize = constants.StandardPageSize
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			users, err := listReferrals(cmd.Context(), client.ReferralCustomers(), pageSize, allPages)
			if err != nil {
				return fmt.Errorf("failed to list referral customers: %w", err)
			}

			return render(cmd.OutOrStdout(), users, func(table *tablewriter.Table) error {
				table.Header("ID", "Name", "Email", "Phone", "Balance")

				for _, user := range users {
					_ = table.Append(user.ID, user.Name, user.Email, valueOr(user.PhoneNumber, NotAvailable), valueOr(user.Balance, NotAvailable))
				}

				return nil
			})
		},
	}

	cmd.Flags().IntVar(&pageSize, "page-size", constants.StandardPageSize, "results per page")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")

	return cmd
}

func listReferrals(ctx context.Context, referrals shipapi.ReferralCustomersClient, pageSize int, allPages bool) ([]shipapi.User, error) {
	if allPages {
		fetch := func(ctx context.Context, params *shipapi.ListParams) (shipapi.Page[shipapi.User], error) {
			return referrals.List(ctx, params)
		}

		return shipapi.CollectAll(ctx, fetch, func(u shipapi.User) string { return u.ID }, pageSize)
	}

	page, err := referrals.List(ctx, shipapi.NewListParams().WithPageSize(pageSize))
	if err != nil {
		return nil, err
	}

	return page.ReferralCustomers, nil
}

func newReferralsCreateCommand() *cobra.Command {
	var request shipapi.UserCreateRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a referral customer",
		Long:  "Create a new referral customer under the partner account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(request.Name) == "" || strings.TrimSpace(request.Email) == "" {
				return constants.ErrReferralFieldRequired
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			user, err := client.ReferralCustomers().Create(cmd.Context(), &request)
			if err != nil {
				return fmt.Errorf("failed to create referral customer: %w", err)
			}

			return render(cmd.OutOrStdout(), user, func(table *tablewriter.Table) error {
				table.Header("Property", "Value")
				_ = table.Append("ID", user.ID)
				_ = table.Append("Name", user.Name)
				_ = table.Append("Email", user.Email)
				_ = table.Append("Phone", valueOr(user.PhoneNumber, NotAvailable))

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&request.Name, "name", "", "customer name (required)")
	cmd.Flags().StringVar(&request.Email, "email", "", "customer email (required)")
	cmd.Flags().StringVar(&request.PhoneNumber, "phone", "", "customer phone number")

	return cmd
}

func newReferralsUpdateEmailCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update-email USER_ID EMAIL",
		Short: "Update a referral customer's email",
		Long:  "Change the email address of an existing referral customer",
		Args:  cobra.ExactArgs(2), //nolint:mnd // id and email
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			err = client.ReferralCustomers().UpdateEmail(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to update referral customer: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated email of %s\n", args[0])

			return nil
		},
	}
}

// unsafeCardFlag warns that flag values end up in shell history and the
// process list.
const unsafeCardFlag = "UNSAFE: visible in shell history and process listings"

func newReferralsAddCardCommand() *cobra.Command {
	var (
		referralKey string
		priority    string
		number      string
		expiration  string
		cvc         string
	)

	cmd := &cobra.Command{
		Use:   "add-card",
		Short: "Add a credit card to a referral customer",
		Long: `Tokenize a credit card with the card processor and attach it to a referral
customer. The card number and CVC are prompted for without echo when not
given as flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(referralKey) == "" {
				return constants.ErrReferralKeyRequired
			}

			p, err := parsePriority(priority)
			if err != nil {
				return err
			}

			prompt := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())

			card, err := readCard(prompt, number, expiration, cvc)
			if err != nil {
				return err
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			method, err := client.ReferralCustomers().AddCreditCard(cmd.Context(), referralKey, card, p)
			if err != nil {
				return fmt.Errorf("failed to add credit card: %w", err)
			}

			return render(cmd.OutOrStdout(), method, func(table *tablewriter.Table) error {
				table.Header("Property", "Value")
				_ = table.Append("ID", method.ID)
				_ = table.Append("Brand", valueOr(method.Brand, NotAvailable))
				_ = table.Append("Last4", valueOr(method.Last4, NotAvailable))
				_ = table.Append("Priority", string(p))

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&referralKey, "referral-api-key", "", "API key of the referral customer (required)")
	cmd.Flags().StringVarP(&priority, "priority", "p", string(shipapi.PriorityPrimary), "slot for the card (primary, secondary)")
	cmd.Flags().StringVar(&number, "number", "", "card number (prompted without echo when omitted); "+unsafeCardFlag)
	cmd.Flags().StringVar(&expiration, "exp", "", "expiration as MM/YYYY (prompted when omitted)")
	cmd.Flags().StringVar(&cvc, "cvc", "", "card CVC (prompted without echo when omitted); "+unsafeCardFlag)

	return cmd
}

// prompter reads answers from a terminal without echo, or line by line from
// any other reader.
type prompter struct {
	lines  *bufio.Reader
	out    io.Writer
	termFD int
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	p := &prompter{lines: bufio.NewReader(in), out: out, termFD: -1}

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.termFD = int(f.Fd())
	}

	return p
}

func (p *prompter) ask(label string, secret bool) (string, error) {
	_, _ = fmt.Fprint(p.out, label+": ")

	if secret && p.termFD >= 0 {
		value, err := term.ReadPassword(p.termFD)

		_, _ = fmt.Fprintln(p.out)

		if err != nil {
			return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
		}

		return strings.TrimSpace(string(value)), nil
	}

	line, err := p.lines.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
	}

	return strings.TrimSpace(line), nil
}

func readCard(prompt *prompter, number, expiration, cvc string) (*shipapi.CreditCardDetails, error) {
	var err error

	if number == "" {
		number, err = prompt.ask("Card number", true)
		if err != nil {
			return nil, err
		}
	}

	number = strings.ReplaceAll(strings.ReplaceAll(number, " ", ""), "-", "")
	if number == "" {
		return nil, constants.ErrCardNumberRequired
	}

	if expiration == "" {
		expiration, err = prompt.ask("Expiration (MM/YYYY)", false)
		if err != nil {
			return nil, err
		}
	}

	month, year, err := parseExpiration(expiration)
	if err != nil {
		return nil, err
	}

	if cvc == "" {
		cvc, err = prompt.ask("CVC", true)
		if err != nil {
			return nil, err
		}
	}

	if strings.TrimSpace(cvc) == "" {
		return nil, constants.ErrCVCRequired
	}

	return &shipapi.CreditCardDetails{
		Number:          number,
		ExpirationMonth: month,
		ExpirationYear:  year,
		CVC:             strings.TrimSpace(cvc),
	}, nil
}
