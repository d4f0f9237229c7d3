package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	t.Setenv(dsnEnv, "")

	testCases := []struct {
		name    string
		args    []string
		env     string
		want    options
		wantErr string
	}{
		{
			name: "defaults with dsn flag",
			args: []string{"-dsn", "postgres://localhost/purchasing"},
			want: options{direction: "up", dsn: "postgres://localhost/purchasing"},
		},
		{
			name: "dsn from environment",
			args: []string{"-direction", "DOWN", "-steps", "2"},
			env:  "postgres://env/purchasing",
			want: options{direction: "down", steps: 2, dsn: "postgres://env/purchasing"},
		},
		{
			name:    "missing dsn",
			args:    []string{"-direction", "status"},
			wantErr: "is required",
		},
		{
			name:    "bad direction",
			args:    []string{"-direction", "sideways", "-dsn", "x"},
			wantErr: "unsupported direction",
		},
		{
			name:    "unknown flag",
			args:    []string{"-force"},
			wantErr: "flag provided but not defined",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(dsnEnv, tc.env)

			got, err := parseFlags(tc.args)
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestRun_UpDownStatus(t *testing.T) {
	dsn := strings.TrimSpace(os.Getenv("PURCHASING_POSTGRES_TEST_DSN"))
	if dsn == "" {
		t.Skip("PURCHASING_POSTGRES_TEST_DSN is not set")
	}

	var out bytes.Buffer
	require.NoError(t, run([]string{"-dsn", dsn, "-direction", "up"}, &out))
	require.Contains(t, out.String(), "pending=0")

	out.Reset()
	require.NoError(t, run([]string{"-dsn", dsn, "-direction", "down", "-steps", "1"}, &out))
	require.Contains(t, out.String(), "pending=1")

	out.Reset()
	require.NoError(t, run([]string{"-dsn", dsn, "-direction", "up"}, &out))
	require.Contains(t, out.String(), "migrate up ok")
}
