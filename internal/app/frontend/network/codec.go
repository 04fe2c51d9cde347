package network

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"net/rpc"
	"sync"
)

// frameCodec implements rpc.ServerCodec over a length-prefixed JSON
// wire format: each frame is a 4-byte big-endian length followed by a
// JSON-encoded envelope. This avoids the newline-delimited framing of
// net/rpc/jsonrpc, which does not tolerate JSON values containing
// embedded newlines from arbitrary string/record data.
type frameCodec struct {
	conn io.ReadWriteCloser

	mu         sync.Mutex
	pending    map[uint64]string
	lastParams json.RawMessage
}

type requestEnvelope struct {
	Method string          `json:"method"`
	Seq    uint64          `json:"seq"`
	Params json.RawMessage `json:"params"`
}

type responseEnvelope struct {
	Seq    uint64          `json:"seq"`
	Error  string          `json:"error,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
}

func newFrameCodec(conn io.ReadWriteCloser) *frameCodec {
	return &frameCodec{conn: conn, pending: make(map[uint64]string)}
}

func readFrame(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func writeFrame(w io.Writer, payload []byte) error {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

func (c *frameCodec) ReadRequestHeader(r *rpc.Request) error {
	frame, err := readFrame(c.conn)
	if err != nil {
		return err
	}

	var env requestEnvelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return fmt.Errorf("decoding request envelope: %w", err)
	}

	c.mu.Lock()
	c.pending[env.Seq] = env.Method
	c.mu.Unlock()

	r.ServiceMethod = env.Method
	r.Seq = env.Seq
	c.lastParams = env.Params
	return nil
}

func (c *frameCodec) ReadRequestBody(body any) error {
	if body == nil {
		return nil
	}
	if len(c.lastParams) == 0 {
		return nil
	}
	return json.Unmarshal(c.lastParams, body)
}

func (c *frameCodec) WriteResponse(r *rpc.Response, body any) error {
	c.mu.Lock()
	delete(c.pending, r.Seq)
	c.mu.Unlock()

	env := responseEnvelope{Seq: r.Seq, Error: r.Error}
	if r.Error == "" {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding response body: %w", err)
		}
		env.Result = payload
	}

	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encoding response envelope: %w", err)
	}
	return writeFrame(c.conn, data)
}

func (c *frameCodec) Close() error {
	return c.conn.Close()
}
