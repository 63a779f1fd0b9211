package ai

import (
	"testing"

	"github.com/pareeksourabh/today-in-emojis-cloud/internal/config"
	"github.com/stretchr/testify/require"
)

// Test_cleanJSONResponse — снятие ограждений и прозы вокруг JSON.
func Test_cleanJSONResponse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain_object", `{"a": 1}`, `{"a": 1}`},
		{"plain_array", `[1, 2]`, `[1, 2]`},
		{"fenced_json", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fenced_bare", "```\n[1]\n```", `[1]`},
		{"prose_prefix_object", `Here is the result: {"a": 1}`, `{"a": 1}`},
		{"prose_prefix_array", "answer: [1, 2]", "[1, 2]"},
		{"whitespace", "  {\"a\": 1}\n", `{"a": 1}`},
		{"no_json_at_all", "no structured data", "no structured data"},
		{"empty", "", ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, cleanJSONResponse(c.in))
		})
	}
}

// Test_New_RequiresAPIKey — без ключа клиент не создаётся.
func Test_New_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := New(config.AIConfig{Model: "gpt-4o-mini"})
	require.Error(t, err)

	c, err := New(config.AIConfig{APIKey: "key", Model: "gpt-4o-mini"})
	require.NoError(t, err)
	require.NotNil(t, c)
}
