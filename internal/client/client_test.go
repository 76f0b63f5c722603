// internal/client/client_test.go
package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/agrisage/agroserve/internal/appconfig"
	"github.com/agrisage/agroserve/internal/protocol"
)

// testConfig points the server binary at a path that cannot exist so Dial
// falls back to hosting the server in-process.
func testConfig(t *testing.T) *appconfig.Config {
	t.Helper()
	return &appconfig.Config{
		ServerBinary: filepath.Join(t.TempDir(), "missing-server"),
	}
}

func TestDialInProcess(t *testing.T) {
	t.Parallel()

	c, err := Dial(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()

	defs := c.Tools()
	if len(defs) != 3 {
		t.Fatalf("expected 3 tools, got %d", len(defs))
	}
	wantOrder := []string{"get_current_weather", "get_placeholder_posts", "get_pesticide_seed_info"}
	for i, name := range wantOrder {
		if defs[i].Name != name {
			t.Fatalf("tool %d: got %s, want %s", i, defs[i].Name, name)
		}
		if defs[i].InputSchema == nil {
			t.Fatalf("tool %s: missing input schema", name)
		}
	}

	if _, ok := c.Tool("GET_CURRENT_WEATHER"); !ok {
		t.Fatalf("tool lookup should be case-insensitive")
	}
	if _, ok := c.Tool("bogus"); ok {
		t.Fatalf("unexpected lookup hit")
	}

	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestCallToolRoundTrip(t *testing.T) {
	t.Parallel()

	c, err := Dial(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()

	out, err := c.CallTool(context.Background(), "get_pesticide_seed_info", map[string]any{
		"query": "drip irrigation",
	})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if !strings.Contains(out, "Query: drip irrigation") {
		t.Fatalf("query not echoed in output")
	}
}

// Tool failures come back as text output, not as client errors.
func TestCallToolFailuresAreText(t *testing.T) {
	t.Parallel()

	c, err := Dial(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()

	out, err := c.CallTool(context.Background(), "bogus_tool", nil)
	if err != nil {
		t.Fatalf("unexpected client error: %v", err)
	}
	if out != "Unknown tool: bogus_tool" {
		t.Fatalf("unexpected output: %q", out)
	}

	out, err = c.CallTool(context.Background(), "get_current_weather", map[string]any{})
	if err != nil {
		t.Fatalf("unexpected client error: %v", err)
	}
	if out != "Error fetching weather: 'city' argument is required" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestCallToolConcurrent(t *testing.T) {
	t.Parallel()

	c, err := Dial(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			query := fmt.Sprintf("rotation for field %d", i)
			for j := 0; j < 10; j++ {
				out, err := c.CallTool(context.Background(), "get_pesticide_seed_info", map[string]any{
					"query": query,
				})
				if err != nil {
					t.Errorf("call: %v", err)
					return
				}
				if !strings.Contains(out, "Query: "+query+"\n") {
					t.Errorf("unexpected output: %q", out[:80])
					return
				}
			}
		}()
	}
	wg.Wait()
}

// A reply that lands after its caller gave up is discarded; the next call on
// the same stream gets its own reply, not the leftover one.
func TestTimedOutCallDropsLateReply(t *testing.T) {
	t.Parallel()

	clientIn, peerOut := io.Pipe()
	peerIn, clientOut := io.Pipe()
	t.Cleanup(func() {
		_ = clientOut.Close()
		_ = peerOut.Close()
	})

	c := &Client{
		cfg:    &appconfig.Config{},
		stdin:  clientOut,
		reader: bufio.NewReader(clientIn),
		writer: bufio.NewWriter(clientOut),
	}

	textResult := func(text string) map[string]any {
		return map[string]any{
			"content": []map[string]any{{"type": "text", "text": text}},
		}
	}

	release := make(chan struct{})
	go func() {
		r := bufio.NewReader(peerIn)
		w := bufio.NewWriter(peerOut)

		first, err := protocol.ReadRequest(r)
		if err != nil {
			return
		}
		<-release
		_ = protocol.WriteFrame(w, protocol.NewResult(first.ID, textResult("stale")))

		second, err := protocol.ReadRequest(r)
		if err != nil {
			return
		}
		_ = protocol.WriteFrame(w, protocol.NewResult(second.ID, textResult("fresh")))
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if _, err := c.CallTool(ctx, "get_pesticide_seed_info", nil); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}

	// The first reply goes out only now, after its caller has moved on.
	close(release)

	out, err := c.CallTool(context.Background(), "get_pesticide_seed_info", nil)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if out != "fresh" {
		t.Fatalf("second call got %q, want %q", out, "fresh")
	}
}

func TestCallAfterClose(t *testing.T) {
	t.Parallel()

	c, err := Dial(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, err := c.CallTool(context.Background(), "get_pesticide_seed_info", nil); err == nil {
		t.Fatalf("expected error after close")
	}
}
