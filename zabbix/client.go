package zabbix

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/zabbixbridge", "zabbix")

const (
	contentType = "application/json-rpc"

	// DefaultTimeout bounds a single round trip; an unbounded call
	// risks hanging the agent's turn indefinitely.
	DefaultTimeout = 30 * time.Second

	maxBodySnippet = 512
)

// Client performs single-shot JSON-RPC calls against a Zabbix server.
// It holds no session state: authentication is a Bearer token on every
// request, and each call is independent.
type Client struct {
	cfg        *Config
	httpClient *http.Client
	builder    RequestBuilder
}

// NewClient validates the configuration and returns a client with a
// bounded default timeout.
func NewClient(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}, nil
}

// WithHTTPClient replaces the underlying HTTP client, typically with an
// httptest server client in tests.
func (c *Client) WithHTTPClient(client *http.Client) *Client {
	c.httpClient = client
	return c
}

// Config returns the immutable configuration the client was built with.
func (c *Client) Config() *Config {
	return c.cfg
}

// Call sends one request for the named method and returns the raw
// result. Params pass through unchanged. Failures are typed:
// *TransportError for network or HTTP-status failures, *ProtocolError
// for bodies that are not valid JSON-RPC, *APIError for errors reported
// by Zabbix itself. There is no retry; the caller decides.
func (c *Client) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	req, err := c.builder.Build(method, params)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, &ProtocolError{Body: "unserializable params", Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Cause: err}
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)

	logger.ContextKV(ctx, xlog.DEBUG,
		"method", method,
		"id", req.ID,
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.ContextKV(ctx, xlog.ERROR,
			"method", method,
			"err", err.Error(),
		)
		return nil, &TransportError{Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Cause: err}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &TransportError{StatusCode: resp.StatusCode, Body: snippet(raw)}
	}

	var rpcResp Response
	if err := json.Unmarshal(raw, &rpcResp); err != nil {
		return nil, &ProtocolError{Body: snippet(raw), Cause: err}
	}
	if rpcResp.Error != nil {
		logger.ContextKV(ctx, xlog.ERROR,
			"method", method,
			"code", rpcResp.Error.Code,
			"err", rpcResp.Error.Message,
		)
		return nil, rpcResp.Error
	}
	if rpcResp.Result == nil {
		return nil, &ProtocolError{Body: snippet(raw)}
	}
	return rpcResp.Result, nil
}

func snippet(raw []byte) string {
	if len(raw) > maxBodySnippet {
		raw = raw[:maxBodySnippet]
	}
	return string(raw)
}
