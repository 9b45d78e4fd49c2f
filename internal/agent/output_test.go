package agent

import "testing"

func TestStripCodeFence(t *testing.T) {
	tcs := []struct {
		name string
		in   string
		want string
	}{
		{"plain", ` {"route":"news"} `, `{"route":"news"}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"upper tag", "```JSON\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"single line", "```{\"a\":1}```", `{"a":1}`},
		{"body starting with json", "```\njsonrpc: 2\n```", "jsonrpc: 2"},
		{"json-like word on the fence line", "```jsonrpc\n{}\n```", "jsonrpc\n{}"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripCodeFence(tc.in); got != tc.want {
				t.Errorf("StripCodeFence(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
