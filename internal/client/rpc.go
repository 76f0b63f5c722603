// internal/client/rpc.go
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/agrisage/agroserve/internal/logging"
	"github.com/agrisage/agroserve/internal/protocol"
)

// rpcMeta labels a pending request so the reply can be logged against the
// method and tool that produced it.
type rpcMeta struct {
	method string
	tool   string
}

// pendingCall is one request awaiting its reply. The channel is buffered so
// the dispatcher never blocks on a caller that already gave up.
type pendingCall struct {
	meta rpcMeta
	ch   chan replyEnvelope
}

type replyEnvelope struct {
	reply protocol.Reply
	raw   []byte
}

func (c *Client) addPending(id string, call pendingCall) {
	c.pendingMu.Lock()
	if c.pending == nil {
		c.pending = make(map[string]pendingCall)
	}
	c.pending[id] = call
	c.pendingMu.Unlock()
}

func (c *Client) popPending(id string) (pendingCall, bool) {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	call, ok := c.pending[id]
	if ok {
		delete(c.pending, id)
	}
	return call, ok
}

func (c *Client) nextID() int64 {
	c.seqMu.Lock()
	defer c.seqMu.Unlock()
	c.seq++
	return c.seq
}

// startReader launches the reply dispatcher on first use. One goroutine owns
// the read side of the stream for the life of the session and routes each
// reply to its pending call by id. A reply whose caller already timed out has
// no pending entry left and is dropped instead of reaching the next caller.
func (c *Client) startReader() {
	c.readerOnce.Do(func() {
		done := make(chan struct{})
		c.readerDone = done
		go func() {
			defer close(done)
			for {
				reply, raw, err := protocol.ReadReply(c.reader)
				if err != nil {
					c.readerErr = err
					return
				}
				id := protocol.NormalizeID(reply.ID)
				call, ok := c.popPending(id)
				if !ok {
					logging.LogEvent("dropping reply with no pending call (id=%q)", id)
					continue
				}
				call.ch <- replyEnvelope{reply: reply, raw: raw}
			}
		}()
	})
}

// rpcCall issues one request and waits for its reply. A server-side error
// object comes back as an ordinary error carrying the server's message.
func (c *Client) rpcCall(ctx context.Context, method string, params map[string]any, meta rpcMeta) (protocol.Reply, error) {
	if meta.method == "" {
		meta.method = method
	}

	id := c.nextID()
	payload := map[string]any{
		"jsonrpc": protocol.Version,
		"id":      id,
		"method":  method,
	}
	if params != nil {
		payload["params"] = params
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return protocol.Reply{}, err
	}

	call := pendingCall{meta: meta, ch: make(chan replyEnvelope, 1)}
	idKey := fmt.Sprintf("%d", id)
	c.addPending(idKey, call)
	defer c.popPending(idKey)

	c.startReader()

	logging.LogRequest("send", meta.method, meta.tool, data)
	c.writeMu.Lock()
	err = protocol.WriteRawFrame(c.writer, data)
	c.writeMu.Unlock()
	if err != nil {
		return protocol.Reply{}, err
	}

	select {
	case env := <-call.ch:
		return finishCall(meta, env)
	case <-ctx.Done():
		return protocol.Reply{}, ctx.Err()
	case <-c.readerDone:
		// The dispatcher may have delivered the reply just before exiting.
		select {
		case env := <-call.ch:
			return finishCall(meta, env)
		default:
		}
		if err := c.readerErr; err != nil {
			return protocol.Reply{}, err
		}
		return protocol.Reply{}, io.EOF
	}
}

// finishCall logs the received frame and unwraps a protocol-level error.
func finishCall(meta rpcMeta, env replyEnvelope) (protocol.Reply, error) {
	payloadIn := env.raw
	if len(payloadIn) == 0 {
		if data, err := json.Marshal(env.reply); err == nil {
			payloadIn = data
		}
	}
	logging.LogRequest("recv", meta.method, meta.tool, payloadIn)

	if env.reply.Error != nil {
		return protocol.Reply{}, fmt.Errorf("%s", env.reply.Error.Message)
	}
	return env.reply, nil
}
