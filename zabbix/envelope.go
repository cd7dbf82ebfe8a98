package zabbix

import (
	"encoding/json"
	"sync/atomic"

	"github.com/cockroachdb/errors"
)

// Request is a JSON-RPC 2.0 request in the Zabbix dialect.
// Authentication is carried in the Authorization header, not in the
// body, per the token-auth mode of Zabbix 6.4 and later.
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	ID      uint64 `json:"id"`
}

// Response is a JSON-RPC 2.0 response. Exactly one of Result and Error
// is set by the server.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *APIError       `json:"error,omitempty"`
	ID      uint64          `json:"id"`
}

// RequestBuilder constructs well-formed requests with IDs unique within
// the process. The zero value is ready to use.
type RequestBuilder struct {
	counter atomic.Uint64
}

// Build returns a request for the named Zabbix method, such as
// "host.get". Params are passed through opaquely; semantic validation
// is Zabbix's responsibility. Nil params become an empty object so the
// body never carries "params":null.
func (b *RequestBuilder) Build(method string, params any) (*Request, error) {
	if method == "" {
		return nil, errors.New("method must not be empty")
	}
	if params == nil {
		params = map[string]any{}
	}
	return &Request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      b.counter.Add(1),
	}, nil
}
