package httpinfra

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/opsbench/opsctl/internal/core/domain"
)

const (
	defaultUserAgent = "Mozilla/5.0"
	maxBodySize      = 256
)

// IPResolver implements ports.PublicIPResolver against a plain-text echo
// service such as https://4.ident.me
type IPResolver struct {
	endpoint  string
	userAgent string
	client    *http.Client
}

// NewIPResolver creates a resolver with the given request timeout
func NewIPResolver(endpoint string, timeout time.Duration) *IPResolver {
	return &IPResolver{
		endpoint:  endpoint,
		userAgent: defaultUserAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// PublicIP fetches the caller's address. Only http and https endpoints are
// accepted.
func (r *IPResolver) PublicIP(ctx context.Context) (string, error) {
	u, err := url.Parse(r.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", r.endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("disallowed scheme: %s", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrSourceUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %w", domain.ErrSourceUnreachable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status %d", domain.ErrSourceUnreachable, resp.StatusCode)
	}

	ip := strings.TrimSpace(string(body))
	if net.ParseIP(ip) == nil {
		return "", errors.New("response is not an IP address: " + ip)
	}
	return ip, nil
}
