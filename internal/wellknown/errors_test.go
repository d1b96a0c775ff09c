package wellknown

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindNetwork, "Network Error"},
		{KindBadURL, "Bad URL"},
		{KindWellKnown, "Discovery Error"},
		{KindHomeserver, "Homeserver Error"},
		{KindIdentityServer, "Identity Server Error"},
		{Kind(99), "Kind(99)"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("Kind(%d).String() = %q, expected %q", tt.kind, got, tt.expected)
		}
	}
}

func TestDiscoveryErrorError(t *testing.T) {
	withCause := &DiscoveryError{Kind: KindNetwork, Err: errors.New("connection refused")}
	if !strings.Contains(withCause.Error(), "connection refused") {
		t.Errorf("Error() should include the cause, got %q", withCause.Error())
	}

	withMessage := &DiscoveryError{Kind: KindHomeserver, TranslatedMessage: msgNotAHomeserver}
	if !strings.Contains(withMessage.Error(), msgNotAHomeserver) {
		t.Errorf("Error() should include the translated message, got %q", withMessage.Error())
	}

	bare := &DiscoveryError{Kind: KindBadURL}
	if bare.Error() != "Bad URL" {
		t.Errorf("Error() = %q, expected kind name only", bare.Error())
	}
}

func TestDiscoveryErrorUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := &DiscoveryError{Kind: KindNetwork, Err: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the wrapped cause")
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "translated message wins",
			err:      &DiscoveryError{Kind: KindHomeserver, TranslatedMessage: msgNotAHomeserver},
			expected: msgNotAHomeserver,
		},
		{
			name:     "network error without message falls back",
			err:      &DiscoveryError{Kind: KindNetwork, Err: errors.New("connection refused")},
			expected: FallbackMessage,
		},
		{
			name:     "wrapped discovery error is still found",
			err:      fmt.Errorf("validate: %w", &DiscoveryError{Kind: KindBadURL, TranslatedMessage: msgInvalidHomeserverURL}),
			expected: msgInvalidHomeserverURL,
		},
		{
			name:     "plain error falls back",
			err:      errors.New("something else"),
			expected: FallbackMessage,
		},
		{
			name:     "nil error falls back",
			err:      nil,
			expected: FallbackMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &DiscoveryError{Kind: KindIdentityServer})

	if !IsKind(err, KindIdentityServer) {
		t.Error("IsKind should match through wrapping")
	}
	if IsKind(err, KindNetwork) {
		t.Error("IsKind should not match a different kind")
	}
	if IsKind(errors.New("plain"), KindNetwork) {
		t.Error("IsKind should not match a plain error")
	}
}
