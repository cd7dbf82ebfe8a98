package zabbixtool

import (
	"context"
	"reflect"

	"github.com/effective-security/zabbixbridge/schema"
	"github.com/effective-security/zabbixbridge/tools"
)

const HostListToolName = "ZabbixHostList"

// HostListRequest filters the host.get method. All fields are optional;
// with no filters the full host list is requested.
type HostListRequest struct {
	GroupIDs []string `json:"GroupIDs,omitempty" yaml:"GroupIDs,omitempty" jsonschema:"title=GroupIDs,description=Optional host group IDs to filter by."`
	Search   string   `json:"Search,omitempty" yaml:"Search,omitempty" jsonschema:"title=Search,description=Optional substring to match against the technical host name."`
	Output   []string `json:"Output,omitempty" yaml:"Output,omitempty" jsonschema:"title=Output,description=Optional host properties to return such as host and status; all properties when empty."`
}

// HostListTool lists the hosts monitored by Zabbix.
type HostListTool struct {
	ts          *Toolset
	name        string
	description string
}

var _ tools.Tool[HostListRequest, Result] = (*HostListTool)(nil)

func (ts *Toolset) HostList() *HostListTool {
	return &HostListTool{
		ts:          ts,
		name:        HostListToolName,
		description: "Lists the hosts monitored by Zabbix. A host is a device, such as a desktop or a virtual machine. Use it as a starting point for further exploration.",
	}
}

func (t *HostListTool) Name() string {
	return t.name
}

func (t *HostListTool) Description() string {
	return t.description
}

func (t *HostListTool) Parameters() any {
	sc, _ := schema.New(reflect.TypeOf(HostListRequest{}))
	return sc.Parameters
}

func (t *HostListTool) Run(ctx context.Context, req *HostListRequest) (*Result, error) {
	params := map[string]any{}
	if len(req.GroupIDs) > 0 {
		params["groupids"] = req.GroupIDs
	}
	if req.Search != "" {
		params["search"] = map[string]any{"host": req.Search}
	}
	if len(req.Output) > 0 {
		params["output"] = req.Output
	}
	return t.ts.call(ctx, "host.get", params)
}

func (t *HostListTool) Call(ctx context.Context, input string) (string, error) {
	var req HostListRequest
	if err := decodeInput(input, &req); err != nil {
		return "", err
	}
	out, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return out.Content, nil
}
