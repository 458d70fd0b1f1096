// Package shipclient provides the primary entry point for constructing a
// shipping API client that implements the shipapi.Client interface.
//
// It layers configuration, HTTP transport, and API key handling on top of the
// resource interfaces and types defined in the shipapi package.
//
// Quick start
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
//
//	  // Minimal: just an API key against the production endpoint.
//	  cli, err := shipclient.NewWithAPIKey("EZAK...")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with a full configuration:
//	  cli, err = shipclient.New(&shipapi.Config{
//	    APIKey:      "EZTK...",
//	    APIEndpoint: "api.example.com/v2", // https:// is added when missing
//	    RetryMax:    3,
//	  })
//
//	  me, err := cli.Users().RetrieveMe(ctx)
//	  if err != nil { log.Fatal(err) }
//	  log.Printf("balance: %s", me.Balance)
//	}
//
// The API key can also be read lazily from the environment on every request
// with NewFromEnv, which suits long-running processes whose key is rotated.
package shipclient
