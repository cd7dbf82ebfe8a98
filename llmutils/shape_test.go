package llmutils_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/effective-security/zabbixbridge/llmutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Truncate(t *testing.T) {
	marker := llmutils.TruncationMarker

	tcases := []struct {
		name  string
		in    string
		limit int
		exp   string
	}{
		{"fits exactly", "abc", 3, "abc"},
		{"fits under", "abc", 100, "abc"},
		{"empty", "", 0, ""},
		{"truncated", strings.Repeat("x", 50), 30, strings.Repeat("x", 30-len(marker)) + marker},
		{"limit equals marker", strings.Repeat("x", 50), len(marker), marker},
		{"limit below marker", strings.Repeat("x", 50), 5, marker[:5]},
		{"limit zero", strings.Repeat("x", 50), 0, ""},
		{"negative limit", "abc", -1, ""},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			got := llmutils.Truncate(tc.in, tc.limit)
			assert.Equal(t, tc.exp, got)
			if tc.limit >= 0 {
				assert.LessOrEqual(t, len(got), tc.limit)
			}
		})
	}
}

// For any input and any limit the result never exceeds the limit, and
// inputs within the limit pass through byte for byte.
func Test_Truncate_Laws(t *testing.T) {
	inputs := []string{"", "a", strings.Repeat("host", 100), `{"result":[{"hostid":"1"}]}`}
	for _, in := range inputs {
		for limit := 0; limit <= 64; limit++ {
			got := llmutils.Truncate(in, limit)
			require.LessOrEqual(t, len(got), limit, "input %q limit %d", in, limit)
			if len(in) <= limit {
				require.Equal(t, in, got)
			} else {
				require.Len(t, got, limit)
			}
		}
	}
}

func Test_Shape(t *testing.T) {
	val := []map[string]string{{"hostid": "1", "host": "srv1"}}

	s, truncated := llmutils.Shape(val, 1000)
	assert.False(t, truncated)
	assert.Equal(t, `[{"host":"srv1","hostid":"1"}]`, s)

	s, truncated = llmutils.Shape(val, 20)
	assert.True(t, truncated)
	assert.Len(t, s, 20)
	assert.True(t, strings.HasSuffix(s, llmutils.TruncationMarker))

	// raw JSON passes through without re-encoding
	raw := json.RawMessage(`[{"hostid":"1"}]`)
	s, truncated = llmutils.Shape(raw, 1000)
	assert.False(t, truncated)
	assert.Equal(t, `[{"hostid":"1"}]`, s)

	s, truncated = llmutils.Shape("plain", 1000)
	assert.False(t, truncated)
	assert.Equal(t, "plain", s)
}
