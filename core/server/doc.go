// Package server holds the HTTP server configuration used by the serve command.
//
// The server exposes the follower history (accounts, events, current
// followers), a run trigger and the integrity checks. The Config struct
// defines the bind address and the API key protecting those endpoints.
package server
