package zabbixtool

import (
	"context"
	"reflect"

	"github.com/effective-security/zabbixbridge/schema"
	"github.com/effective-security/zabbixbridge/tools"
)

const ProblemListToolName = "ZabbixProblemList"

// severityMax is the highest Zabbix severity, "Disaster".
const severityMax = 5

// ProblemListRequest filters the problem.get method.
type ProblemListRequest struct {
	HostIDs     []string `json:"HostIDs,omitempty" yaml:"HostIDs,omitempty" jsonschema:"title=HostIDs,description=Optional host IDs to filter by."`
	MinSeverity int      `json:"MinSeverity,omitempty" yaml:"MinSeverity,omitempty" jsonschema:"title=MinSeverity,description=Optional minimum severity from 0 (not classified) to 5 (disaster)."`
	TimeFrom    int64    `json:"TimeFrom,omitempty" yaml:"TimeFrom,omitempty" jsonschema:"title=TimeFrom,description=Optional unix timestamp; only problems created after it are returned."`
	TimeTill    int64    `json:"TimeTill,omitempty" yaml:"TimeTill,omitempty" jsonschema:"title=TimeTill,description=Optional unix timestamp; only problems created before it are returned."`
	Output      []string `json:"Output,omitempty" yaml:"Output,omitempty" jsonschema:"title=Output,description=Optional problem properties to return such as name and severity; all properties when empty."`
}

// ProblemListTool lists the problems currently detected by Zabbix.
type ProblemListTool struct {
	ts          *Toolset
	name        string
	description string
}

var _ tools.Tool[ProblemListRequest, Result] = (*ProblemListTool)(nil)

func (ts *Toolset) ProblemList() *ProblemListTool {
	return &ProblemListTool{
		ts:          ts,
		name:        ProblemListToolName,
		description: "Lists the current problems detected by Zabbix. A problem is a potential issue, such as high CPU utilization or an unavailable SSH service.",
	}
}

func (t *ProblemListTool) Name() string {
	return t.name
}

func (t *ProblemListTool) Description() string {
	return t.description
}

func (t *ProblemListTool) Parameters() any {
	sc, _ := schema.New(reflect.TypeOf(ProblemListRequest{}))
	return sc.Parameters
}

func (t *ProblemListTool) Run(ctx context.Context, req *ProblemListRequest) (*Result, error) {
	params := map[string]any{}
	if len(req.HostIDs) > 0 {
		params["hostids"] = req.HostIDs
	}
	if req.MinSeverity > 0 {
		sevs := make([]int, 0, severityMax)
		for s := min(req.MinSeverity, severityMax); s <= severityMax; s++ {
			sevs = append(sevs, s)
		}
		params["severities"] = sevs
	}
	if req.TimeFrom > 0 {
		params["time_from"] = req.TimeFrom
	}
	if req.TimeTill > 0 {
		params["time_till"] = req.TimeTill
	}
	if len(req.Output) > 0 {
		params["output"] = req.Output
	}
	return t.ts.call(ctx, "problem.get", params)
}

func (t *ProblemListTool) Call(ctx context.Context, input string) (string, error) {
	var req ProblemListRequest
	if err := decodeInput(input, &req); err != nil {
		return "", err
	}
	out, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return out.Content, nil
}
