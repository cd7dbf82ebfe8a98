package zabbixtool

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/effective-security/zabbixbridge/schema"
	"github.com/effective-security/zabbixbridge/tools"
	"github.com/tidwall/gjson"
)

const ItemHistoryToolName = "ZabbixItemHistory"

// defaultHistoryWindow is how far back history is fetched when the
// request does not say.
const defaultHistoryWindow = 3600

// historyTypeUnsigned is the Zabbix history table for numeric unsigned
// values.
const historyTypeUnsigned = 3

// ItemHistoryRequest selects a single item on a single host and a time
// window ending now.
type ItemHistoryRequest struct {
	Host          string `json:"Host" yaml:"Host" jsonschema:"title=Host,description=Technical host name; must be a value from the retrieved host list."`
	Item          string `json:"Item" yaml:"Item" jsonschema:"title=Item,description=Item name; must be a value from the retrieved item list."`
	WindowSeconds int64  `json:"WindowSeconds,omitempty" yaml:"WindowSeconds,omitempty" jsonschema:"title=WindowSeconds,description=Optional history window in seconds ending now; one hour when empty."`
}

// ItemHistoryTool retrieves past values of one item on one host. It is
// the only two-step operation: item.get resolves the item ID and value
// type, then history.get fetches the values.
type ItemHistoryTool struct {
	ts          *Toolset
	name        string
	description string
	// now is stubbed in tests to pin the history window.
	now func() time.Time
}

var _ tools.Tool[ItemHistoryRequest, Result] = (*ItemHistoryTool)(nil)

func (ts *Toolset) ItemHistory() *ItemHistoryTool {
	return &ItemHistoryTool{
		ts:          ts,
		name:        ItemHistoryToolName,
		description: "Retrieves the history of item values on a selected host, most recent hour by default. Use it when interested in past events. Retrieve the host and item lists first to learn valid names.",
		now:         time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (t *ItemHistoryTool) WithClock(now func() time.Time) *ItemHistoryTool {
	t.now = now
	return t
}

func (t *ItemHistoryTool) Name() string {
	return t.name
}

func (t *ItemHistoryTool) Description() string {
	return t.description
}

func (t *ItemHistoryTool) Parameters() any {
	sc, _ := schema.New(reflect.TypeOf(ItemHistoryRequest{}))
	return sc.Parameters
}

func (t *ItemHistoryTool) Run(ctx context.Context, req *ItemHistoryRequest) (*Result, error) {
	if req.Host == "" || req.Item == "" {
		return nil, tools.ErrFailedUnmarshalInput
	}

	itemRaw, err := t.ts.client.Call(ctx, "item.get", map[string]any{
		"host":   req.Host,
		"search": map[string]any{"name": req.Item},
		"output": []string{"name", "type", "lastvalue", "units"},
	})
	if err != nil {
		return nil, err
	}
	item := gjson.ParseBytes(itemRaw).Get("0")
	if !item.Exists() {
		return &Result{Content: msgItemNotMonitored}, nil
	}

	historyType := item.Get("type").Int()
	if isDigits(item.Get("lastvalue").String()) {
		historyType = historyTypeUnsigned
	}

	window := req.WindowSeconds
	if window <= 0 {
		window = defaultHistoryWindow
	}

	histRaw, err := t.ts.client.Call(ctx, "history.get", map[string]any{
		"itemids":   item.Get("itemid").String(),
		"history":   historyType,
		"time_from": t.now().Unix() - window,
		"output":    []string{"clock", "value"},
	})
	if err != nil {
		return nil, err
	}

	values := gjson.ParseBytes(histRaw).Array()
	if len(values) == 0 {
		return &Result{Content: msgItemNotMonitored}, nil
	}

	var b strings.Builder
	for _, v := range values {
		clock := time.Unix(v.Get("clock").Int(), 0)
		fmt.Fprintf(&b, "%s: %s\n", clock.Format("02. January 2006, 15:04"), v.Get("value").String())
	}
	content, truncated := t.ts.shape(b.String())
	return &Result{Content: content, Truncated: truncated}, nil
}

func (t *ItemHistoryTool) Call(ctx context.Context, input string) (string, error) {
	var req ItemHistoryRequest
	if err := decodeInput(input, &req); err != nil {
		return "", err
	}
	out, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return out.Content, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
