package zabbixtool

import (
	"context"
	"reflect"

	"github.com/effective-security/zabbixbridge/schema"
	"github.com/effective-security/zabbixbridge/tools"
)

const (
	ItemListToolName  = "ZabbixItemList"
	ItemValueToolName = "ZabbixItemValue"
)

// msgItemNotMonitored is returned instead of an empty result so the
// agent gets an actionable sentence rather than "[]".
const msgItemNotMonitored = "The requested item is not monitored on the selected host."

// ItemListRequest filters the item.get method.
type ItemListRequest struct {
	Host   string   `json:"Host,omitempty" yaml:"Host,omitempty" jsonschema:"title=Host,description=Optional technical host name; items of all hosts when empty."`
	Search string   `json:"Search,omitempty" yaml:"Search,omitempty" jsonschema:"title=Search,description=Optional substring to match against the item name."`
	Output []string `json:"Output,omitempty" yaml:"Output,omitempty" jsonschema:"title=Output,description=Optional item properties to return such as name and description; all properties when empty."`
}

// ItemListTool lists the items monitored by Zabbix.
type ItemListTool struct {
	ts          *Toolset
	name        string
	description string
}

var _ tools.Tool[ItemListRequest, Result] = (*ItemListTool)(nil)

func (ts *Toolset) ItemList() *ItemListTool {
	return &ItemListTool{
		ts:          ts,
		name:        ItemListToolName,
		description: "Lists the items monitored by Zabbix, optionally for a single host. An item is a monitored metric, such as CPU utilization or SSH response time.",
	}
}

func (t *ItemListTool) Name() string {
	return t.name
}

func (t *ItemListTool) Description() string {
	return t.description
}

func (t *ItemListTool) Parameters() any {
	sc, _ := schema.New(reflect.TypeOf(ItemListRequest{}))
	return sc.Parameters
}

func (t *ItemListTool) Run(ctx context.Context, req *ItemListRequest) (*Result, error) {
	params := map[string]any{}
	if req.Host != "" {
		params["host"] = req.Host
	}
	if req.Search != "" {
		params["search"] = map[string]any{"name": req.Search}
	}
	if len(req.Output) > 0 {
		params["output"] = req.Output
	}
	return t.ts.call(ctx, "item.get", params)
}

func (t *ItemListTool) Call(ctx context.Context, input string) (string, error) {
	var req ItemListRequest
	if err := decodeInput(input, &req); err != nil {
		return "", err
	}
	out, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return out.Content, nil
}

// ItemValueRequest selects a single item on a single host.
type ItemValueRequest struct {
	Host string `json:"Host" yaml:"Host" jsonschema:"title=Host,description=Technical host name; must be a value from the retrieved host list."`
	Item string `json:"Item" yaml:"Item" jsonschema:"title=Item,description=Item name; must be a value from the retrieved item list."`
}

// ItemValueTool retrieves the last value of one item on one host.
type ItemValueTool struct {
	ts          *Toolset
	name        string
	description string
}

var _ tools.Tool[ItemValueRequest, Result] = (*ItemValueTool)(nil)

func (ts *Toolset) ItemValue() *ItemValueTool {
	return &ItemValueTool{
		ts:          ts,
		name:        ItemValueToolName,
		description: "Retrieves the current value of an item on a selected host. Retrieve the host and item lists first to learn valid names.",
	}
}

func (t *ItemValueTool) Name() string {
	return t.name
}

func (t *ItemValueTool) Description() string {
	return t.description
}

func (t *ItemValueTool) Parameters() any {
	sc, _ := schema.New(reflect.TypeOf(ItemValueRequest{}))
	return sc.Parameters
}

func (t *ItemValueTool) Run(ctx context.Context, req *ItemValueRequest) (*Result, error) {
	if req.Host == "" || req.Item == "" {
		return nil, tools.ErrFailedUnmarshalInput
	}
	params := map[string]any{
		"host":   req.Host,
		"search": map[string]any{"name": req.Item},
		"output": []string{"name", "lastvalue", "units"},
	}
	res, err := t.ts.call(ctx, "item.get", params)
	if err != nil {
		return nil, err
	}
	if res.Content == "[]" {
		return &Result{Content: msgItemNotMonitored}, nil
	}
	return res, nil
}

func (t *ItemValueTool) Call(ctx context.Context, input string) (string, error) {
	var req ItemValueRequest
	if err := decodeInput(input, &req); err != nil {
		return "", err
	}
	out, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return out.Content, nil
}
