package zabbixtool

import (
	"context"
	"reflect"
	"regexp"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/zabbixbridge/schema"
	"github.com/effective-security/zabbixbridge/tools"
)

const APICallToolName = "ZabbixAPICall"

// Zabbix method names are namespaced, e.g. host.get or
// user.checkAuthentication.
var reMethod = regexp.MustCompile(`^[a-z][a-zA-Z]*\.[a-z][a-zA-Z]*$`)

// APICallRequest invokes an arbitrary Zabbix method. Params are passed
// through opaquely; their semantics are validated by the server.
type APICallRequest struct {
	Method string         `json:"Method" yaml:"Method" jsonschema:"title=Method,description=Zabbix API method name such as hostgroup.get."`
	Params map[string]any `json:"Params,omitempty" yaml:"Params,omitempty" jsonschema:"title=Params,description=Optional parameters object as documented by the Zabbix API for the method."`
}

// APICallTool is the escape hatch for Zabbix methods without a
// dedicated tool.
type APICallTool struct {
	ts          *Toolset
	name        string
	description string
}

var _ tools.Tool[APICallRequest, Result] = (*APICallTool)(nil)

func (ts *Toolset) APICall() *APICallTool {
	return &APICallTool{
		ts:          ts,
		name:        APICallToolName,
		description: "Calls any documented Zabbix API method with raw parameters. Prefer the dedicated tools; use this one for entities they do not cover.",
	}
}

func (t *APICallTool) Name() string {
	return t.name
}

func (t *APICallTool) Description() string {
	return t.description
}

func (t *APICallTool) Parameters() any {
	sc, _ := schema.New(reflect.TypeOf(APICallRequest{}))
	return sc.Parameters
}

func (t *APICallTool) Run(ctx context.Context, req *APICallRequest) (*Result, error) {
	if !reMethod.MatchString(req.Method) {
		return nil, errors.Errorf("invalid method name: %q", req.Method)
	}
	return t.ts.call(ctx, req.Method, req.Params)
}

func (t *APICallTool) Call(ctx context.Context, input string) (string, error) {
	var req APICallRequest
	if err := decodeInput(input, &req); err != nil {
		return "", err
	}
	out, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return out.Content, nil
}
