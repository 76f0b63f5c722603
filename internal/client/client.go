// internal/client/client.go
// Package client drives a tool server over stdio. Dial spawns the configured
// server binary when it exists; otherwise it hosts the server in-process over
// a pipe pair so the CLI works from a bare checkout.
package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/agrisage/agroserve/internal/appconfig"
	"github.com/agrisage/agroserve/internal/logging"
	"github.com/agrisage/agroserve/internal/server"
	"github.com/agrisage/agroserve/mcp/tools"
)

// Client is a connected tool-server session. Calls may overlap: frame writes
// are serialized, and a single dispatcher goroutine matches each reply to its
// caller by request id.
type Client struct {
	cfg    *appconfig.Config
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	reader *bufio.Reader
	writer *bufio.Writer

	seqMu sync.Mutex
	seq   int64

	writeMu sync.Mutex

	pendingMu sync.Mutex
	pending   map[string]pendingCall

	readerOnce sync.Once
	readerDone chan struct{}
	readerErr  error

	serverDone chan error

	toolMu    sync.Mutex
	toolDefs  []tools.Definition
	toolIndex map[string]tools.Definition
}

// Dial connects to the tool server and performs the initialize handshake.
func Dial(ctx context.Context, cfg *appconfig.Config) (*Client, error) {
	if cfg == nil {
		cfg = &appconfig.Config{}
	}

	c := &Client{
		cfg:       cfg,
		pending:   make(map[string]pendingCall),
		toolIndex: make(map[string]tools.Definition),
	}

	binary := cfg.ServerBinaryPath()
	if _, err := os.Stat(binary); err == nil {
		if err := c.startProcess(ctx, binary); err != nil {
			return nil, err
		}
	} else if errors.Is(err, os.ErrNotExist) {
		logging.LogEvent("server binary %q missing; hosting tools in-process", binary)
		c.startInProcess()
	} else {
		logging.LogEvent("server start aborted: binary %q not accessible (%v)", binary, err)
		return nil, fmt.Errorf("server binary %q not accessible: %w", binary, err)
	}

	initCtx, cancel := context.WithTimeout(ctx, cfg.InitTimeoutDuration())
	defer cancel()
	if err := c.initialize(initCtx); err != nil {
		_ = c.Close()
		return nil, err
	}

	if err := c.discoverTools(); err != nil {
		logging.LogEvent("failed to list tools: %v", err)
	}
	return c, nil
}

func (c *Client) startProcess(ctx context.Context, binary string) error {
	cmd := exec.CommandContext(ctx, binary, "--config", c.cfg.ConfigPath)
	cmd.Env = os.Environ()
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("server stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("server stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		logging.LogEvent("server failed to start: %v", err)
		return fmt.Errorf("start server: %w", err)
	}

	c.cmd = cmd
	c.stdin = stdin
	c.reader = bufio.NewReader(stdout)
	c.writer = bufio.NewWriter(stdin)
	logging.LogEvent("server started: binary=%s pid=%d", binary, cmd.Process.Pid)
	return nil
}

// startInProcess wires the client to a server goroutine over a pipe pair.
func (c *Client) startInProcess() {
	toServerR, toServerW := io.Pipe()
	fromServerR, fromServerW := io.Pipe()

	c.stdin = toServerW
	c.reader = bufio.NewReader(fromServerR)
	c.writer = bufio.NewWriter(toServerW)
	c.serverDone = make(chan error, 1)

	go func() {
		err := server.New(c.cfg).Run(toServerR, fromServerW)
		_ = fromServerW.Close()
		c.serverDone <- err
	}()
}

func (c *Client) initialize(ctx context.Context) error {
	params := map[string]any{
		"clientInfo": map[string]any{
			"name":    "agroserve-cli",
			"version": "dev",
		},
	}
	if _, err := c.rpcCall(ctx, "initialize", params, rpcMeta{method: "initialize"}); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	return nil
}

// Close ends the session, killing a spawned server that does not exit within
// two seconds of its stdin closing.
func (c *Client) Close() error {
	var firstErr error

	if c.stdin != nil {
		_ = c.stdin.Close()
	}

	if c.cmd != nil {
		done := make(chan error, 1)
		go func() {
			done <- c.cmd.Wait()
		}()
		select {
		case err := <-done:
			if err != nil {
				firstErr = err
			}
		case <-time.After(2 * time.Second):
			_ = c.cmd.Process.Kill()
			if err := <-done; err != nil && firstErr == nil {
				firstErr = err
			}
		}
		c.cmd = nil
	}

	if c.serverDone != nil {
		select {
		case err := <-c.serverDone:
			if err != nil && firstErr == nil {
				firstErr = err
			}
		case <-time.After(2 * time.Second):
		}
		c.serverDone = nil
	}

	return firstErr
}
