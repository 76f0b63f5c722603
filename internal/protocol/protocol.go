// internal/protocol/protocol.go
// Package protocol implements the JSON-RPC 2.0 message types and the
// Content-Length framing both ends of a stdio session share.
package protocol

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Version is the JSON-RPC protocol version stamped on every message.
const Version = "2.0"

// Error codes returned to clients.
const (
	CodeServerError    = -32000
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
)

// Request is an incoming JSON-RPC request or notification.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// IsNotification reports whether the request carries no id and therefore
// must not receive a response.
func (r *Request) IsNotification() bool {
	return r.ID == nil
}

// Error is the error object attached to a failed response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Response is the server-side response envelope.
type Response struct {
	JSONRPC string `json:"jsonrpc"`
	ID      any    `json:"id,omitempty"`
	Result  any    `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

// Reply is the client-side view of a response, with the result left raw for
// the caller to decode.
type Reply struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// CallParams are the parameters of a tools/call request.
type CallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// NewResult builds a successful response for the given request id.
func NewResult(id any, result any) Response {
	return Response{JSONRPC: Version, ID: id, Result: result}
}

// NewError builds an error response for the given request id.
func NewError(id any, code int, msg string) Response {
	return Response{JSONRPC: Version, ID: id, Error: &Error{Code: code, Message: msg}}
}

// WriteFrame marshals v and writes it as a Content-Length framed message.
func WriteFrame(w *bufio.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return WriteRawFrame(w, data)
}

// WriteRawFrame writes pre-marshaled JSON as a Content-Length framed message.
func WriteRawFrame(w *bufio.Writer, data []byte) error {
	if _, err := fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	return w.Flush()
}

// ReadFrame reads one framed message body. Header names are matched
// case-insensitively and LF-only header lines are tolerated.
func ReadFrame(r *bufio.Reader) ([]byte, error) {
	headers := map[string]string{}
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, err
		}
		if line == "\r\n" || line == "\n" {
			break
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		if i := strings.IndexByte(line, ':'); i >= 0 {
			key := strings.ToLower(strings.TrimSpace(line[:i]))
			headers[key] = strings.TrimSpace(line[i+1:])
		}
	}

	clStr, ok := headers["content-length"]
	if !ok {
		return nil, fmt.Errorf("missing Content-Length")
	}
	var length int
	if _, err := fmt.Sscanf(clStr, "%d", &length); err != nil {
		return nil, fmt.Errorf("invalid Content-Length: %v", err)
	}
	if length < 0 {
		return nil, fmt.Errorf("invalid Content-Length: %d", length)
	}
	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}
	return body, nil
}

// ReadRequest reads and decodes one framed request.
func ReadRequest(r *bufio.Reader) (*Request, error) {
	body, err := ReadFrame(r)
	if err != nil {
		return nil, err
	}
	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// ReadReply reads and decodes one framed response, returning the raw body
// alongside so callers can log it.
func ReadReply(r *bufio.Reader) (Reply, []byte, error) {
	body, err := ReadFrame(r)
	if err != nil {
		return Reply{}, nil, err
	}
	var reply Reply
	if err := json.Unmarshal(body, &reply); err != nil {
		return Reply{}, body, err
	}
	return reply, body, nil
}

// NormalizeID renders a raw response id as a plain string for correlation.
func NormalizeID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return ""
	}
	if trimmed[0] == '"' {
		if unquoted, err := strconv.Unquote(trimmed); err == nil {
			return unquoted
		}
		trimmed = strings.Trim(trimmed, "\"")
	}
	return trimmed
}
