// internal/client/tools.go
package client

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/agrisage/agroserve/internal/logging"
	"github.com/agrisage/agroserve/mcp/tools"
)

// discoverTools fetches the server's catalog and caches it for Tools and
// Tool lookups.
func (c *Client) discoverTools() error {
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.InitTimeoutDuration())
	defer cancel()

	reply, err := c.rpcCall(ctx, "tools/list", nil, rpcMeta{method: "tools/list"})
	if err != nil {
		return err
	}
	if len(reply.Result) == 0 {
		return nil
	}

	var payload struct {
		Tools []tools.Definition `json:"tools"`
	}
	if err := json.Unmarshal(reply.Result, &payload); err != nil {
		return err
	}

	c.toolMu.Lock()
	c.toolDefs = payload.Tools
	c.toolIndex = make(map[string]tools.Definition, len(payload.Tools))
	var names []string
	for _, def := range payload.Tools {
		c.toolIndex[strings.ToLower(def.Name)] = def
		names = append(names, def.Name)
	}
	c.toolMu.Unlock()

	if len(names) > 0 {
		logging.LogEvent("Available tools: %s", strings.Join(names, ", "))
	}
	return nil
}

// Tools returns the discovered catalog in server order.
func (c *Client) Tools() []tools.Definition {
	c.toolMu.Lock()
	defer c.toolMu.Unlock()
	out := make([]tools.Definition, len(c.toolDefs))
	copy(out, c.toolDefs)
	return out
}

// Tool looks up a discovered definition by name, case-insensitively.
func (c *Client) Tool(name string) (tools.Definition, bool) {
	c.toolMu.Lock()
	defer c.toolMu.Unlock()
	def, ok := c.toolIndex[strings.ToLower(name)]
	return def, ok
}

// CallToolContent invokes a tool and returns its raw content parts. Tool
// failures arrive here as text content, not as errors; the error return
// covers transport and protocol problems only.
func (c *Client) CallToolContent(ctx context.Context, name string, args map[string]any) ([]tools.ContentPart, error) {
	if args == nil {
		args = map[string]any{}
	}
	params := map[string]any{
		"name":      name,
		"arguments": args,
	}
	reply, err := c.rpcCall(ctx, "tools/call", params, rpcMeta{method: "tools/call", tool: name})
	if err != nil {
		return nil, err
	}
	if len(reply.Result) == 0 {
		return nil, nil
	}

	var payload struct {
		Content []tools.ContentPart `json:"content"`
	}
	if err := json.Unmarshal(reply.Result, &payload); err != nil {
		return nil, err
	}
	return payload.Content, nil
}

// CallTool invokes a tool and joins the text parts of its result.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	content, err := c.CallToolContent(ctx, name, args)
	if err != nil {
		return "", err
	}
	var parts []string
	for _, part := range content {
		if part.Text != "" {
			parts = append(parts, part.Text)
		}
	}
	return strings.Join(parts, "\n"), nil
}

// Ping checks that the server is still responsive.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.rpcCall(ctx, "ping", nil, rpcMeta{method: "ping"})
	return err
}
