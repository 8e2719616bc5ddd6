package slug

import "testing"

func TestMake(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Fat Burn":      "fat-burn",
		" Out of Range": "out-of-range",
		"Peak!!":        "peak",
		"   ":           "none",
	}
	for in, want := range cases {
		if got := Make(in, "none"); got != want {
			t.Fatalf("Make(%q) = %q, want %q", in, got, want)
		}
	}
}
