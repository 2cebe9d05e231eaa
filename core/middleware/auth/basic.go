package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrMissing means the request carried no Authorization header.
	ErrMissing = errors.New("authorization header missing")
	// ErrDecode means the Authorization header could not be decoded into a user:password pair.
	ErrDecode = errors.New("malformed basic authorization header")
	// ErrMismatch means the credentials were well formed but not accepted.
	ErrMismatch = errors.New("invalid credentials")
)

// ParseBasic extracts the username and password from a Basic Authorization header value.
// Decode errors never include the decoded text.
func ParseBasic(header string) (username, password string, err error) {
	if header == "" {
		return "", "", ErrMissing
	}

	scheme, payload, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Basic") {
		return "", "", fmt.Errorf("%w: unsupported scheme", ErrDecode)
	}

	payload = strings.TrimSpace(payload)
	if payload == "" {
		return "", "", fmt.Errorf("%w: empty payload", ErrDecode)
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid base64", ErrDecode)
	}
	if !utf8.Valid(raw) {
		return "", "", fmt.Errorf("%w: payload is not valid UTF-8", ErrDecode)
	}

	username, password, ok = strings.Cut(string(raw), ":")
	if !ok {
		return "", "", fmt.Errorf("%w: missing ':' separator", ErrDecode)
	}

	return username, password, nil
}
