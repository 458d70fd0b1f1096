// Package shipapi provides types, interfaces, and helpers for working with a
// shipping and logistics REST API.
//
// # Overview
//
// The shipapi package defines the domain types (e.g., User, Parcel,
// PaymentMethods) and the interfaces for resource-oriented clients (e.g.,
// BillingClient, ReferralCustomersClient). A concrete implementation is
// provided by the shipclient package, which wires configuration, transport,
// and authentication.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/shipapi/pkg/shipapi"
//	  "github.com/fivetwenty-io/shipapi/pkg/shipclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := shipclient.New(&shipapi.Config{APIKey: "EZAK..."})
//	  if err != nil { log.Fatal(err) }
//
//	  // Charge the primary payment method on file
//	  err = cli.Billing().FundWallet(ctx, "2000", shipapi.PriorityPrimary)
//	  if err != nil { log.Fatal(err) }
//	}
//
// # Payment methods
//
// An account stores up to two payment methods, selected by Priority. Billing
// calls resolve the selected method on every call: the ID prefix ("card_" or
// "bank_") decides whether the credit card or bank account endpoints are used.
// An unknown priority, an empty slot, or an unrecognized prefix fails with
// ErrInvalidPaymentMethod.
//
// # Adding cards to referral customers
//
// ReferralCustomersClient.AddCreditCard tokenizes raw card details with the
// card processor and attaches the token using the referral customer's own API
// key. Any failure while talking to the processor is reported as
// ErrTokenizationFailed, without the underlying cause.
//
// # Pagination
//
// List endpoints are cursor based. Use GetNextPage for a single step or
// NewPageIterator and CollectAll to walk a whole collection:
//
//	fetch := func(ctx context.Context, p *shipapi.ListParams) (shipapi.Page[shipapi.User], error) {
//	  return cli.ReferralCustomers().List(ctx, p)
//	}
//	all, err := shipapi.CollectAll(ctx, fetch, func(u shipapi.User) string { return u.ID }, 100)
//
// # Errors
//
// Non-2xx responses are returned as *ResponseError. Helpers such as
// IsNotFound, IsUnauthorized, and IsRateLimited branch on common cases.
package shipapi
