// Package cfclient constructs cfv2.Client values.
//
// The package validates the configuration, wires the transport and the
// UAA token manager together, and returns the cfv2.Client interface:
//
//	cli, err := cfclient.NewWithPassword("api.bosh-lite.com", "admin", "admin")
//	if err != nil { ... }
//
//	if err := cli.Connect(ctx); err != nil { ... }
//
//	body, err := cli.Request(ctx, "GET", "organizations")
package cfclient
