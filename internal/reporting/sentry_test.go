package reporting

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		error string
		want  string
	}{
		{
			name:  "connection reset by peer",
			error: `failed to send request: Post "https://uplift.example.com/graphql": read tcp [dead:beef:feb1:d745::c001]:64079->[dead:beef::6811:112a]:443: read: connection reset by peer`,
			want:  `failed to send request: Post "https://uplift.example.com/graphql": read tcp <host>-><host>: read: connection reset by peer`,
		},
		{
			name:  "ipv4 dial",
			error: `failed to send request: Post "https://uplift.example.com/graphql": dial tcp 10.12.0.7:443: connect: connection refused`,
			want:  `failed to send request: Post "https://uplift.example.com/graphql": dial tcp <host>: connect: connection refused`,
		},
		{
			name:  "context deadline",
			error: `failed to send request: Post "https://uplift.example.com/graphql": context deadline exceeded (Client.Timeout exceeded while awaiting headers)`,
			want:  `failed to send request: Post "https://uplift.example.com/graphql": context deadline exceeded (Client.Timeout exceeded while awaiting headers)`,
		},
		{
			name:  "gym id",
			error: `dropped invalid interval for facility 3f2b1c4e-9a7d-4e21-8c55-0d1e2f3a4b5c: invalid interval`,
			want:  `dropped invalid interval for facility <uuid>: invalid interval`,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, c.want, sanitizeError(c.error))
		})
	}

	t.Run("misc ipv6", func(t *testing.T) {
		t.Parallel()

		for _, ip := range []string{`1:2:3:4:5:6:7:8`, `1::`, `1::8`, `1:2:3::8`, `::2:3:4:5:6:7:8`, `::8`, `::`} {
			t.Run(ip, func(t *testing.T) {
				t.Parallel()
				require.Equal(t, "<host>", sanitizeError(fmt.Sprintf("[%s]:1234", ip)))
			})
		}
	})
}
