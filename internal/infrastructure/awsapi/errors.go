package awsapi

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/smithy-go"

	"github.com/opsbench/opsctl/internal/core/domain"
)

var (
	permissionCodes = map[string]bool{
		"AccessDenied":          true,
		"AccessDeniedException": true,
		"UnauthorizedOperation": true,
		"UnauthorizedException": true,
		"Forbidden":             true,
	}
	authCodes = map[string]bool{
		"ExpiredToken":                true,
		"ExpiredTokenException":       true,
		"InvalidClientTokenId":        true,
		"UnrecognizedClientException": true,
		"SignatureDoesNotMatch":       true,
		"InvalidAccessKeyId":          true,
		"InvalidToken":                true,
	}
	notFoundCodes = map[string]bool{
		"ResourceNotFoundException": true,
		"NotFound":                  true,
		"NoSuchBucket":              true,
	}
)

// classify wraps an SDK error with the domain category it belongs to. The
// original error stays in the chain for errors.As.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if category := category(err); category != nil {
		return fmt.Errorf("%s: %w: %w", op, category, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func category(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		switch {
		case permissionCodes[code]:
			return domain.ErrPermissionDenied
		case authCodes[code]:
			return domain.ErrUnauthenticated
		case notFoundCodes[code]:
			return domain.ErrNotFound
		}
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		switch respErr.HTTPStatusCode() {
		case http.StatusUnauthorized:
			return domain.ErrUnauthenticated
		case http.StatusForbidden:
			return domain.ErrPermissionDenied
		case http.StatusNotFound:
			return domain.ErrNotFound
		}
	}

	var netErr net.Error
	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) || errors.As(err, &opErr) || errors.As(err, &netErr) {
		return domain.ErrSourceUnreachable
	}

	// The credential chain reports an exhausted provider list as a plain
	// wrapped error with no exported type.
	if strings.Contains(err.Error(), "failed to retrieve credentials") ||
		strings.Contains(err.Error(), "no valid providers in chain") {
		return domain.ErrUnauthenticated
	}

	return nil
}
