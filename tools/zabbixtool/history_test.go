package zabbixtool_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/effective-security/zabbixbridge/zabbix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ItemHistory(t *testing.T) {
	now := time.Unix(1700003600, 0)

	ts := newToolset(t, 0, func(w http.ResponseWriter, r *http.Request) {
		var req zabbix.Request
		err := json.NewDecoder(r.Body).Decode(&req)
		assert.NoError(t, err)

		params, ok := req.Params.(map[string]any)
		assert.True(t, ok)

		switch req.Method {
		case "item.get":
			assert.Equal(t, "srv1", params["host"])
			assert.Equal(t, map[string]any{"name": "CPU utilization"}, params["search"])
			respond(t, w, req.ID, `[{"itemid":"10","name":"CPU utilization","type":"0","lastvalue":"42","units":"%"}]`)
		case "history.get":
			assert.Equal(t, "10", params["itemids"])
			// lastvalue is all digits, so numeric unsigned history is requested
			assert.EqualValues(t, 3, params["history"])
			assert.EqualValues(t, 1700000000, params["time_from"])
			assert.Equal(t, []any{"clock", "value"}, params["output"])
			respond(t, w, req.ID, `[{"clock":"1700000000","value":"41"},{"clock":"1700001800","value":"42"}]`)
		default:
			t.Errorf("unexpected method %q", req.Method)
		}
	})

	tool := ts.ItemHistory().WithClock(func() time.Time { return now })

	out, err := tool.Call(context.Background(), `{"Host":"srv1","Item":"CPU utilization"}`)
	require.NoError(t, err)

	exp := fmt.Sprintf("%s: 41\n%s: 42\n",
		time.Unix(1700000000, 0).Format("02. January 2006, 15:04"),
		time.Unix(1700001800, 0).Format("02. January 2006, 15:04"))
	assert.Equal(t, exp, out)
}

func Test_ItemHistory_NotMonitored(t *testing.T) {
	ts := newToolset(t, 0, func(w http.ResponseWriter, r *http.Request) {
		var req zabbix.Request
		err := json.NewDecoder(r.Body).Decode(&req)
		assert.NoError(t, err)
		assert.Equal(t, "item.get", req.Method)
		respond(t, w, req.ID, `[]`)
	})

	out, err := ts.ItemHistory().Call(context.Background(), `{"Host":"srv1","Item":"No such item"}`)
	require.NoError(t, err)
	assert.Equal(t, "The requested item is not monitored on the selected host.", out)
}

func Test_ItemHistory_TextValueType(t *testing.T) {
	ts := newToolset(t, 0, func(w http.ResponseWriter, r *http.Request) {
		var req zabbix.Request
		err := json.NewDecoder(r.Body).Decode(&req)
		assert.NoError(t, err)

		params, ok := req.Params.(map[string]any)
		assert.True(t, ok)

		switch req.Method {
		case "item.get":
			respond(t, w, req.ID, `[{"itemid":"11","name":"OS version","type":"4","lastvalue":"Ubuntu 24.04","units":""}]`)
		case "history.get":
			// non-numeric lastvalue keeps the item's own type
			assert.EqualValues(t, 4, params["history"])
			respond(t, w, req.ID, `[{"clock":"1700000100","value":"Ubuntu 24.04"}]`)
		default:
			t.Errorf("unexpected method %q", req.Method)
		}
	})

	out, err := ts.ItemHistory().Call(context.Background(), `{"Host":"srv1","Item":"OS version"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "Ubuntu 24.04")
}
