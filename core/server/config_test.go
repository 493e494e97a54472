package server_test

import (
	"testing"

	"follower-tracker/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Address(t *testing.T) {
	tests := []struct {
		name string
		cfg  server.Config
		want string
	}{
		{"All interfaces", server.Config{Host: "0.0.0.0", Port: "8080"}, "0.0.0.0:8080"},
		{"Empty host", server.Config{Port: "9000"}, ":9000"},
		{"IPv6", server.Config{Host: "::1", Port: "80"}, "[::1]:80"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Address())
		})
	}
}

func TestConfig_AuthEnabled(t *testing.T) {
	assert.False(t, server.Config{}.AuthEnabled())
	assert.True(t, server.Config{ApiKey: "secret"}.AuthEnabled())
}
