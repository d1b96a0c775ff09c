package wellknown

import (
	"errors"
	"fmt"
)

// Error kinds for autodiscovery validation

// Kind represents the category of validation failure that occurred
type Kind int

const (
	// KindNetwork indicates a network-level error (connection refused, timeout, etc.)
	KindNetwork Kind = iota
	// KindBadURL indicates the entered URL could not be parsed as a server URL
	KindBadURL
	// KindWellKnown indicates the server's discovery document was malformed
	KindWellKnown
	// KindHomeserver indicates the URL does not point at a usable homeserver
	KindHomeserver
	// KindIdentityServer indicates the URL does not point at a usable identity server
	KindIdentityServer
)

// String returns a human-readable name for the error kind
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "Network Error"
	case KindBadURL:
		return "Bad URL"
	case KindWellKnown:
		return "Discovery Error"
	case KindHomeserver:
		return "Homeserver Error"
	case KindIdentityServer:
		return "Identity Server Error"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// FallbackMessage is shown to the user when a validation failure carries no
// message of its own.
const FallbackMessage = "Unable to validate homeserver/identity server"

// User-facing messages attached to specific failure kinds. These are the
// strings the form displays verbatim, so they are pre-translated here rather
// than derived from the raw error chain.
const (
	msgInvalidHomeserverURL = "Invalid homeserver URL"
	msgInvalidIdentityURL   = "Invalid identity server URL"
	msgInvalidWellKnown     = "Invalid homeserver discovery response"
	msgNotAHomeserver       = "Homeserver URL does not appear to be a valid Matrix homeserver"
	msgNotAnIdentityServer  = "Identity server URL does not appear to be a valid identity server"
)

// DiscoveryError represents a validation failure from the autodiscovery
// client. TranslatedMessage, when non-empty, is user-facing text ready for
// display; Err carries the raw cause for diagnostics.
type DiscoveryError struct {
	Kind              Kind
	TranslatedMessage string
	Err               error
}

// Error implements the error interface
func (e *DiscoveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	if e.TranslatedMessage != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.TranslatedMessage)
	}
	return e.Kind.String()
}

// Unwrap returns the underlying error for error chain inspection
func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// UserMessage returns the text to display for a validation failure: the
// error's own translated message when it carries one, otherwise the generic
// fallback. Safe to call with any error.
func UserMessage(err error) string {
	var discErr *DiscoveryError
	if errors.As(err, &discErr) && discErr.TranslatedMessage != "" {
		return discErr.TranslatedMessage
	}
	return FallbackMessage
}

// IsKind reports whether err is a DiscoveryError of the given kind
func IsKind(err error, kind Kind) bool {
	var discErr *DiscoveryError
	return errors.As(err, &discErr) && discErr.Kind == kind
}
