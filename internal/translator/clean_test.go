package translator

import "testing"

func TestClean(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Hello world.", "Hello world."},
		{"thinking block", "<think>es to en</think>Hello world.", "Hello world."},
		{"truncated thinking", "Hello world.<think>and then", "Hello world."},
		{"echo", "Here is the translation: Hello world.", "Hello world."},
		{"echo certainly", "Certainly, here's the translation: Hello.", "Hello."},
		{"double quotes", `"Hello world."`, "Hello world."},
		{"guillemets", "«Hola mundo.»", "Hola mundo."},
		{"unmatched quote kept", `"Hello world.`, `"Hello world.`},
		{"whitespace", "  Hello.  \n", "Hello."},
		{"short", "a", "a"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clean(tc.in); got != tc.want {
				t.Errorf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
