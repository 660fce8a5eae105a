package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// EntryLimit caps the entries returned by a detailed comparison.
	EntryLimit int `mapstructure:"entry_limit" default:"1000"`
}

// MaxEntryLimit is the largest entry limit a request may ask for.
const MaxEntryLimit = 100000

// Address returns the listen address.
func (c Config) Address() string {
	return ":" + c.Port
}

// Limit clamps a requested entry limit. Zero or negative requests use EntryLimit.
func (c Config) Limit(requested int) int {
	limit := requested
	if limit <= 0 {
		limit = c.EntryLimit
	}
	if limit <= 0 || limit > MaxEntryLimit {
		limit = MaxEntryLimit
	}
	return limit
}
