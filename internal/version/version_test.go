package version

import (
	"strings"
	"testing"
)

func TestCurrent_Defaults(t *testing.T) {
	b := Current()
	if b.Version == "" || b.Commit == "" || b.Date == "" {
		t.Fatalf("build info must never be empty: %+v", b)
	}
}

func TestBuild_String(t *testing.T) {
	s := Build{Version: "v1.0.0", Commit: "abc", Date: "2024-05-01"}.String()
	for _, part := range []string{"version=v1.0.0", "commit=abc", "date=2024-05-01"} {
		if !strings.Contains(s, part) {
			t.Errorf("String() = %q, want it to contain %q", s, part)
		}
	}
}

func TestBuild_Short(t *testing.T) {
	cases := []struct {
		build Build
		want  string
	}{
		{build: Build{Version: "dev", Commit: "unknown"}, want: "dev"},
		{build: Build{Version: "v1.2.0", Commit: "0123456789abcdef"}, want: "v1.2.0+0123456"},
		{build: Build{Version: "v1.2.0", Commit: "abc"}, want: "v1.2.0+abc"},
	}
	for _, tc := range cases {
		if got := tc.build.Short(); got != tc.want {
			t.Errorf("Short() = %q, want %q", got, tc.want)
		}
	}
}
