// Package cfv2 provides types, errors, and configuration for working
// with the legacy Cloud Foundry V2 API.
//
// # Overview
//
// The cfv2 package defines the connection Config, the discovery Info
// payload, the v2 resource envelope types, the error taxonomy, and the
// optional response cache backends. A concrete Client implementation is
// provided by the cfclient package, which wires configuration,
// transport, and UAA authentication together. Most consumers should
// import cfclient to construct a client and then issue requests through
// the Client interface exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/cfv2/pkg/cfclient"
//	  "github.com/fivetwenty-io/cfv2/pkg/cfv2"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := cfclient.New(cfv2.NewConfig(cfv2.Options{
//	    Protocol: "https",
//	    Host:     "api.example.com",
//	    Username: "admin",
//	    Password: "secret",
//	  }))
//	  if err != nil { log.Fatal(err) }
//
//	  if err := cli.Connect(ctx); err != nil { log.Fatal(err) }
//
//	  body, err := cli.Request(ctx, "GET", "organizations")
//	  if err != nil { log.Fatal(err) }
//	  _ = body
//	}
//
// # Errors
//
// Client failures carry an ErrorKind (validation, transport, protocol
// status, oauth exchange). Helpers such as IsProtocolStatus and
// StatusCode make it easy to branch on common cases; v2 error bodies
// are parsed into APIError.
//
// # Caching
//
// GET responses can optionally be cached through the Cache interface,
// with in-memory and NATS JetStream KV backends built via
// NewCacheFromConfig or composed with NewCacheChain.
package cfv2
