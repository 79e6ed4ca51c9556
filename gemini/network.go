package gemini

import (
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// Network returns the blockchain network a token settles on, from the public
// network endpoint. No credentials required.
func (c *Client) Network(token string) (string, error) {
	addr := c.base + "/v1/network/" + token
	var jobj any
	if err := jwget(c.client, addr, &jobj); err != nil {
		return "", fmt.Errorf("cannot fetch network info for %q: %w", token, err)
	}
	path := "$.network[0]"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("cannot parse network info for %q: %q %w", token, path, err)
	}
	// because jsonpath is never clear about wheter it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	name, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("cannot parse network info for %q: %q not a string: %v", token, path, jval)
	}
	return name, nil
}
