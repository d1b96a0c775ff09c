package config

import "time"

// ServerConfig is a validated server configuration. It is produced either by
// the autodiscovery collaborator or taken verbatim from the built-in default,
// and is treated as immutable once produced. The raw strings a user is still
// typing live in the wizard's edit state, never here.
type ServerConfig struct {
	// HomeserverURL is the base URL clients should talk to. When discovery
	// found a well-known override this is the advertised base_url, which may
	// differ from what the user typed.
	HomeserverURL string `yaml:"homeserver_url" json:"homeserver_url"`

	// HomeserverName is the hostname portion of the homeserver URL, kept for
	// display ("connected to matrix.org").
	HomeserverName string `yaml:"homeserver_name,omitempty" json:"homeserver_name,omitempty"`

	// IdentityServerURL is the validated identity server base URL. Empty when
	// the user configured no identity server.
	IdentityServerURL string `yaml:"identity_server_url,omitempty" json:"identity_server_url,omitempty"`

	// Versions lists the client-server API versions the homeserver advertised
	// during validation.
	Versions []string `yaml:"versions,omitempty" json:"versions,omitempty"`

	// ValidatedAt records when this configuration last passed validation.
	ValidatedAt time.Time `yaml:"validated_at,omitempty" json:"validated_at,omitempty"`
}

// SameEndpoints reports whether this configuration points at exactly the
// given homeserver and identity server URLs. Comparison is explicit string
// equality on both fields simultaneously - two configs are only "the same"
// when both URLs match.
func (c *ServerConfig) SameEndpoints(hsURL, isURL string) bool {
	return c.HomeserverURL == hsURL && c.IdentityServerURL == isURL
}

// Registry represents the entire user configuration file.
// This stores the confirmed server configuration and application preferences.
type Registry struct {
	Version     int           `yaml:"version"`
	Server      *ServerConfig `yaml:"server,omitempty"` // Last confirmed configuration
	Preferences *Preferences  `yaml:"preferences,omitempty"`
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	// DebounceMs is how long the wizard waits after a field loses focus
	// before validating it, in milliseconds. 0 validates immediately.
	DebounceMs int `yaml:"debounce_ms"`

	// RequestTimeout is the per-validation HTTP timeout in seconds.
	RequestTimeout int `yaml:"request_timeout"`
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Preferences: &Preferences{
			DebounceMs:     0,
			RequestTimeout: 10,
		},
	}
}

// SetServer records a confirmed server configuration in the registry.
func (r *Registry) SetServer(cfg ServerConfig) {
	stored := cfg
	r.Server = &stored
}

// CurrentServer returns the confirmed server configuration, falling back to
// the built-in default when none has been saved yet.
func (r *Registry) CurrentServer() ServerConfig {
	if r.Server != nil {
		return *r.Server
	}
	return DefaultConfig()
}
