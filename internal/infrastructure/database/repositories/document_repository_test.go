package repositories

import "testing"

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"plain.txt":    "plain.txt",
		"100%":         `100\%`,
		"my_file":      `my\_file`,
		`back\slash`:   `back\\slash`,
		`mix_%\a`:      `mix\_\%\\a`,
		"":             "",
		"wild%card_s_": `wild\%card\_s\_`,
	}
	for input, want := range cases {
		if got := escapeLike(input); got != want {
			t.Errorf("escapeLike(%q) = %q, want %q", input, got, want)
		}
	}
}
