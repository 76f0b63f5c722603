// internal/server/server.go
// Package server runs the stdio tool-calling loop: JSON-RPC 2.0 requests in,
// Content-Length framed responses out. Tool failures never surface as
// protocol errors; they come back as ordinary text results so a session
// survives any single bad call.
package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/agrisage/agroserve/internal/appconfig"
	"github.com/agrisage/agroserve/internal/logging"
	"github.com/agrisage/agroserve/internal/metrics"
	"github.com/agrisage/agroserve/internal/protocol"
	"github.com/agrisage/agroserve/mcp/tools"
)

const (
	serverName      = "agricultural-server"
	serverVersion   = "0.1.0"
	protocolVersion = "2024-11-05"
)

// Server owns the tool catalog and dispatch state for one stdio session.
type Server struct {
	cfg      *appconfig.Config
	registry *tools.Registry
	stats    *metrics.Aggregator
}

// New builds a Server from the given configuration. Metrics collection is
// active only when the config enables it.
func New(cfg *appconfig.Config) *Server {
	if cfg == nil {
		cfg = &appconfig.Config{}
	}
	s := &Server{
		cfg:      cfg,
		registry: tools.NewRegistry(cfg),
	}
	if cfg.Metrics {
		s.stats = metrics.NewAggregator(cfg.MetricsSnapshotPath())
	}
	return s
}

// Run processes framed requests from r until EOF, writing responses to w.
// Requests are handled sequentially in arrival order. The caller's w must be
// reserved for protocol frames; all diagnostics go through the logging
// package.
func (s *Server) Run(r io.Reader, w io.Writer) error {
	reader := bufio.NewReader(r)
	writer := bufio.NewWriter(w)
	defer s.closeStats()

	for {
		req, err := protocol.ReadRequest(reader)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			// Best-effort error frame without an id to keep the stream sane.
			_ = protocol.WriteFrame(writer, protocol.NewError(nil, protocol.CodeServerError, err.Error()))
			return err
		}

		logging.LogRequest("recv", req.Method, "", req.Params)
		if req.IsNotification() || strings.HasPrefix(req.Method, "notifications/") {
			continue
		}
		if err := protocol.WriteFrame(writer, s.handleRequest(req)); err != nil {
			return err
		}
	}
}

func (s *Server) handleRequest(req *protocol.Request) protocol.Response {
	switch req.Method {
	case "initialize":
		result := map[string]any{
			"protocolVersion": protocolVersion,
			"serverInfo":      map[string]any{"name": serverName, "version": serverVersion},
			"capabilities":    map[string]any{"tools": map[string]any{"list": true, "call": true}},
		}
		return protocol.NewResult(req.ID, result)

	case "ping":
		return protocol.NewResult(req.ID, map[string]any{})

	case "tools/list":
		return protocol.NewResult(req.ID, map[string]any{"tools": s.registry.Definitions()})

	case "tools/call":
		var p protocol.CallParams
		if len(req.Params) > 0 {
			if err := json.Unmarshal(req.Params, &p); err != nil {
				return protocol.NewError(req.ID, protocol.CodeInvalidParams, "Invalid params")
			}
		}
		if p.Arguments == nil {
			p.Arguments = map[string]any{}
		}
		content := s.runTool(p.Name, p.Arguments)
		return protocol.NewResult(req.ID, map[string]any{"content": content})
	}

	return protocol.NewError(req.ID, protocol.CodeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method))
}

// runTool dispatches one call. Every failure path, including an unknown tool
// name, a strict-mode schema rejection, a handler error, and a handler panic,
// resolves to a text result.
func (s *Server) runTool(name string, args map[string]any) []tools.ContentPart {
	handler, ok := s.registry.Handler(name)
	if !ok {
		logging.LogEvent("tools/call for unknown tool %q", name)
		return tools.Text(fmt.Sprintf("Unknown tool: %s", name))
	}

	if s.cfg.StrictArgs {
		if def, ok := s.registry.Definition(name); ok {
			if err := tools.ValidateArguments(def, args); err != nil {
				logging.LogEvent("tool %s rejected: %v", name, err)
				return tools.Text(err.Error())
			}
		}
	}

	start := time.Now()
	content, err := invoke(handler, args)
	s.record(name, time.Since(start), err != nil)
	if err != nil {
		logging.LogEvent("tool %s failed: %v", name, err)
		return tools.Text(err.Error())
	}
	return content
}

// invoke runs a handler, converting a panic into an ordinary error so one
// broken tool cannot end the session.
func invoke(handler tools.Handler, args map[string]any) (content []tools.ContentPart, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool panicked: %v", r)
		}
	}()
	return handler(args)
}

func (s *Server) record(tool string, duration time.Duration, failed bool) {
	if s.stats == nil {
		return
	}
	s.stats.Record(tool, duration, failed)
}

func (s *Server) closeStats() {
	if s.stats == nil {
		return
	}
	if err := s.stats.Close(); err != nil {
		logging.LogEvent("failed to save metrics: %v", err)
	}
}
