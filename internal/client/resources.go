package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/cfv2/pkg/cfv2"
)

// Typed conveniences over Request for the most common v2 resources.
// Each returns the first page; pagination URLs are reported as-is.

// Organizations implements cfv2.Client.Organizations.
func (c *Client) Organizations(ctx context.Context) (*cfv2.ListResponse[cfv2.Organization], error) {
	return listResource[cfv2.Organization](ctx, c, "organizations")
}

// Spaces implements cfv2.Client.Spaces.
func (c *Client) Spaces(ctx context.Context) (*cfv2.ListResponse[cfv2.Space], error) {
	return listResource[cfv2.Space](ctx, c, "spaces")
}

// Apps implements cfv2.Client.Apps.
func (c *Client) Apps(ctx context.Context) (*cfv2.ListResponse[cfv2.App], error) {
	return listResource[cfv2.App](ctx, c, "apps")
}

func listResource[T any](ctx context.Context, c *Client, path string) (*cfv2.ListResponse[T], error) {
	body, err := c.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", path, err)
	}

	var list cfv2.ListResponse[T]

	err = json.Unmarshal([]byte(body), &list)
	if err != nil {
		return nil, fmt.Errorf("parsing %s list: %w", path, err)
	}

	return &list, nil
}
