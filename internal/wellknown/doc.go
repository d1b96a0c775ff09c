// Package wellknown implements client autodiscovery for Matrix servers.
//
// Given the homeserver and identity server URLs a user typed, the package
// resolves the homeserver's /.well-known/matrix/client discovery document
// (honoring any advertised base_url overrides), verifies the resulting base
// URL by fetching /_matrix/client/versions, and checks the identity server's
// status endpoint (/_matrix/identity/v2, with a legacy v1 fallback). The
// outcome is either a validated, immutable config.ServerConfig or a
// *DiscoveryError.
//
// A missing well-known document is not a failure: per the autodiscovery
// protocol the entered URL is then treated as the base URL directly. This is
// what lets users type "https://matrix.example.com" rather than their
// server's advertised domain.
//
// Discovery documents in the wild are served with wrong content types and
// occasional trailing garbage, so responses are parsed leniently with gjson
// rather than strict JSON decoding.
//
// # Error reporting
//
// Failures carry an optional pre-translated user-facing message. Display
// code should never dig through the error chain itself:
//
//	cfg, err := client.Validate(ctx, hsURL, isURL)
//	if err != nil {
//	    errorText := wellknown.UserMessage(err) // translated or generic fallback
//	}
package wellknown
