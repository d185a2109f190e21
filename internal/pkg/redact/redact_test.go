package redact

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "alice@example.com", want: "al***@example.com"},
		{in: "ab@example.com", want: "***@example.com"},
		{in: "a@example.com", want: "***@example.com"},
		{in: "not-an-email", want: "***"},
		{in: "a@b@c", want: "***"},
		{in: "", want: "***"},
	}

	for _, tc := range tests {
		require.Equal(t, tc.want, Email(tc.in), "input %q", tc.in)
	}
}

func TestTokenAndPassword(t *testing.T) {
	t.Parallel()

	require.Equal(t, "[REDACTED_TOKEN]", Token())
	require.Equal(t, "[REDACTED_PASSWORD]", Password())
}
