package config

// Built-in default endpoints. These are the servers the wizard offers before
// the user enters anything custom, and the values the default-config fast
// path compares against.
const (
	// DefaultHomeserverURL is the built-in default homeserver.
	DefaultHomeserverURL = "https://matrix.org"

	// DefaultIdentityServerURL is the built-in default identity server.
	DefaultIdentityServerURL = "https://vector.im"

	// DefaultHomeserverName is the display name of the default homeserver.
	DefaultHomeserverName = "matrix.org"
)

// DefaultConfig returns the process-wide default server configuration.
// The returned value is a copy; the default itself is read-only.
func DefaultConfig() ServerConfig {
	return ServerConfig{
		HomeserverURL:     DefaultHomeserverURL,
		HomeserverName:    DefaultHomeserverName,
		IdentityServerURL: DefaultIdentityServerURL,
	}
}

// IsDefault reports whether the given pair of URLs is exactly the built-in
// default pair. Equality is checked on both fields simultaneously.
func IsDefault(hsURL, isURL string) bool {
	return hsURL == DefaultHomeserverURL && isURL == DefaultIdentityServerURL
}
