package zabbixtool

import (
	"context"
	"reflect"

	"github.com/effective-security/zabbixbridge/schema"
	"github.com/effective-security/zabbixbridge/tools"
)

const TriggerListToolName = "ZabbixTriggerList"

// TriggerListRequest filters the trigger.get method.
type TriggerListRequest struct {
	HostIDs     []string `json:"HostIDs,omitempty" yaml:"HostIDs,omitempty" jsonschema:"title=HostIDs,description=Optional host IDs to filter by."`
	GroupIDs    []string `json:"GroupIDs,omitempty" yaml:"GroupIDs,omitempty" jsonschema:"title=GroupIDs,description=Optional host group IDs to filter by."`
	MinSeverity int      `json:"MinSeverity,omitempty" yaml:"MinSeverity,omitempty" jsonschema:"title=MinSeverity,description=Optional minimum severity from 0 (not classified) to 5 (disaster)."`
	OnlyActive  bool     `json:"OnlyActive,omitempty" yaml:"OnlyActive,omitempty" jsonschema:"title=OnlyActive,description=Return only triggers currently in the problem state."`
	Output      []string `json:"Output,omitempty" yaml:"Output,omitempty" jsonschema:"title=Output,description=Optional trigger properties to return such as description and priority; all properties when empty."`
}

// TriggerListTool lists the triggers configured in Zabbix.
type TriggerListTool struct {
	ts          *Toolset
	name        string
	description string
}

var _ tools.Tool[TriggerListRequest, Result] = (*TriggerListTool)(nil)

func (ts *Toolset) TriggerList() *TriggerListTool {
	return &TriggerListTool{
		ts:          ts,
		name:        TriggerListToolName,
		description: "Lists the triggers configured in Zabbix. A trigger defines the condition under which a problem is raised, such as CPU utilization above a threshold.",
	}
}

func (t *TriggerListTool) Name() string {
	return t.name
}

func (t *TriggerListTool) Description() string {
	return t.description
}

func (t *TriggerListTool) Parameters() any {
	sc, _ := schema.New(reflect.TypeOf(TriggerListRequest{}))
	return sc.Parameters
}

func (t *TriggerListTool) Run(ctx context.Context, req *TriggerListRequest) (*Result, error) {
	params := map[string]any{}
	if len(req.HostIDs) > 0 {
		params["hostids"] = req.HostIDs
	}
	if len(req.GroupIDs) > 0 {
		params["groupids"] = req.GroupIDs
	}
	if req.MinSeverity > 0 {
		params["min_severity"] = req.MinSeverity
	}
	if req.OnlyActive {
		params["only_true"] = 1
		params["monitored"] = 1
	}
	if len(req.Output) > 0 {
		params["output"] = req.Output
	}
	return t.ts.call(ctx, "trigger.get", params)
}

func (t *TriggerListTool) Call(ctx context.Context, input string) (string, error) {
	var req TriggerListRequest
	if err := decodeInput(input, &req); err != nil {
		return "", err
	}
	out, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return out.Content, nil
}
