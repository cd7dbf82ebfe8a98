// Package zabbixtool exposes Zabbix monitoring queries as LLM agent
// tools. Each tool is one synchronous round trip: build the JSON-RPC
// envelope, post it, bound the result to the configured length, and
// return the text to the agent.
package zabbixtool

import (
	"context"
	"net/http"
	"strings"

	"github.com/bububa/ljson"
	"github.com/effective-security/xlog"
	"github.com/effective-security/zabbixbridge/llmutils"
	"github.com/effective-security/zabbixbridge/tools"
	"github.com/effective-security/zabbixbridge/zabbix"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/zabbixbridge", "zabbixtool")

// Result is the shaped payload returned to the agent.
type Result struct {
	Content   string `json:"Content" yaml:"Content"`
	Truncated bool   `json:"Truncated,omitempty" yaml:"Truncated,omitempty"`
}

func (r *Result) String() string {
	return r.Content
}

// Toolset builds the Zabbix tools over one shared client and one
// immutable configuration. It holds no other state; every call is
// independent.
type Toolset struct {
	client *zabbix.Client
	maxLen int
}

// New validates the configuration and returns a Toolset.
func New(cfg *zabbix.Config) (*Toolset, error) {
	client, err := zabbix.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &Toolset{
		client: client,
		maxLen: cfg.MaxLen(),
	}, nil
}

// WithHTTPClient replaces the underlying HTTP client, typically with an
// httptest server client in tests.
func (ts *Toolset) WithHTTPClient(client *http.Client) *Toolset {
	ts.client.WithHTTPClient(client)
	return ts
}

// Tools returns all tools in the set.
func (ts *Toolset) Tools() []tools.ITool {
	return []tools.ITool{
		ts.HostList(),
		ts.ProblemList(),
		ts.TriggerList(),
		ts.ItemList(),
		ts.ItemValue(),
		ts.ItemHistory(),
		ts.APICall(),
	}
}

// call runs one RPC and bounds the serialized result. Transport,
// protocol and Zabbix errors propagate to the caller unchanged.
func (ts *Toolset) call(ctx context.Context, method string, params any) (*Result, error) {
	raw, err := ts.client.Call(ctx, method, params)
	if err != nil {
		return nil, err
	}
	content, truncated := llmutils.Shape(raw, ts.maxLen)
	if truncated {
		logger.ContextKV(ctx, xlog.DEBUG,
			"method", method,
			"len", len(raw),
			"max", ts.maxLen,
		)
	}
	return &Result{Content: content, Truncated: truncated}, nil
}

// shape bounds an already rendered payload.
func (ts *Toolset) shape(s string) (string, bool) {
	return llmutils.Shape(s, ts.maxLen)
}

// decodeInput parses LLM-provided tool input leniently: surrounding
// prose is stripped and minor JSON defects are repaired. Empty input is
// treated as no arguments.
func decodeInput(input string, req any) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	bs := llmutils.CleanJSON([]byte(input))
	if len(bs) == 0 || (bs[0] != '{' && bs[0] != '[') {
		return tools.ErrFailedUnmarshalInput
	}
	if err := ljson.Unmarshal(bs, req); err != nil {
		return tools.ErrFailedUnmarshalInput
	}
	return nil
}
