package server

import "net"

// Config holds configuration for the HTTP server used by the serve command.
type Config struct {
	// Host is the interface to bind.
	Host string `mapstructure:"host" default:"0.0.0.0"`
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
}

// Address returns the listen address in host:port form.
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// AuthEnabled reports whether requests must carry the API key.
func (c Config) AuthEnabled() bool {
	return c.ApiKey != ""
}
