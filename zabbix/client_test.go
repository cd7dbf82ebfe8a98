package zabbix_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/zabbixbridge/zabbix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *zabbix.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &zabbix.Config{
		APIURL:   server.URL,
		APIToken: "tok123",
	}
	client, err := zabbix.NewClient(cfg)
	require.NoError(t, err)
	return client.WithHTTPClient(server.Client())
}

func Test_Client_Call(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json-rpc", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))

		var req zabbix.Request
		err := json.NewDecoder(r.Body).Decode(&req)
		assert.NoError(t, err)
		assert.Equal(t, "2.0", req.JSONRPC)
		assert.Equal(t, "host.get", req.Method)

		_ = json.NewEncoder(w).Encode(zabbix.Response{
			JSONRPC: "2.0",
			Result:  json.RawMessage(`[{"hostid":"1","host":"srv1"}]`),
			ID:      req.ID,
		})
	})

	ctx := context.Background()
	raw, err := client.Call(ctx, "host.get", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"hostid":"1","host":"srv1"}]`, string(raw))

	// identical call, identical result: the bridge holds no state
	raw2, err := client.Call(ctx, "host.get", nil)
	require.NoError(t, err)
	assert.Equal(t, string(raw), string(raw2))
}

func Test_Client_Call_HTTPStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})

	_, err := client.Call(context.Background(), "host.get", nil)
	require.Error(t, err)

	var terr *zabbix.TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, http.StatusInternalServerError, terr.StatusCode)
	assert.Contains(t, terr.Body, "internal error")
}

func Test_Client_Call_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	cfg := &zabbix.Config{APIURL: server.URL, APIToken: "tok123"}
	client, err := zabbix.NewClient(cfg)
	require.NoError(t, err)
	server.Close()

	_, err = client.Call(context.Background(), "host.get", nil)
	require.Error(t, err)

	var terr *zabbix.TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, 0, terr.StatusCode)
	assert.Error(t, terr.Cause)
}

func Test_Client_Call_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	_, err := client.Call(context.Background(), "host.get", nil)
	require.Error(t, err)

	var perr *zabbix.ProtocolError
	require.True(t, errors.As(err, &perr))
	assert.Contains(t, perr.Body, "<html>")
}

func Test_Client_Call_MissingResult(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1}`))
	})

	_, err := client.Call(context.Background(), "host.get", nil)
	require.Error(t, err)

	var perr *zabbix.ProtocolError
	require.True(t, errors.As(err, &perr))
}

func Test_Client_Call_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"jsonrpc": "2.0",
			"error": {"code": -32602, "message": "Invalid params.", "data": "Incorrect API \"hosts\"."},
			"id": 1
		}`))
	})

	_, err := client.Call(context.Background(), "hosts.get", nil)
	require.Error(t, err)

	var aerr *zabbix.APIError
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, int64(-32602), aerr.Code)
	assert.Equal(t, "Invalid params.", aerr.Message)
	assert.Equal(t, `Incorrect API "hosts".`, aerr.Data)
	assert.EqualError(t, err, `zabbix error -32602: Invalid params. Incorrect API "hosts".`)
}

func Test_Client_InvalidConfig(t *testing.T) {
	_, err := zabbix.NewClient(&zabbix.Config{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, zabbix.ErrInvalidConfig))

	_, err = zabbix.NewClient(&zabbix.Config{APIURL: "not-a-url", APIToken: "tok"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, zabbix.ErrInvalidConfig))
}
