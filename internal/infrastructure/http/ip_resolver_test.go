package httpinfra

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsbench/opsctl/internal/core/domain"
)

func TestIPResolver_PublicIP(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("203.0.113.7\n"))
	}))
	defer server.Close()

	ip, err := NewIPResolver(server.URL, time.Second).PublicIP(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "203.0.113.7", ip)
	assert.Equal(t, "Mozilla/5.0", gotUA)
}

func TestIPResolver_Errors(t *testing.T) {
	tests := []struct {
		name        string
		handler     http.HandlerFunc
		endpoint    string
		wantErr     error
		wantMessage string
	}{
		{
			name:        "DisallowedScheme",
			endpoint:    "file:///etc/passwd",
			wantMessage: "disallowed scheme: file",
		},
		{
			name: "BadStatus",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			wantErr: domain.ErrSourceUnreachable,
		},
		{
			name: "NotAnIP",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>hello</html>"))
			},
			wantMessage: "not an IP address",
		},
		{
			name: "Timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(time.Second):
				}
			},
			wantErr: domain.ErrSourceUnreachable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoint := tt.endpoint
			if tt.handler != nil {
				server := httptest.NewServer(tt.handler)
				defer server.Close()
				endpoint = server.URL
			}

			_, err := NewIPResolver(endpoint, 50*time.Millisecond).PublicIP(context.Background())

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}
			if tt.wantMessage != "" {
				assert.Contains(t, err.Error(), tt.wantMessage)
			}
		})
	}
}
