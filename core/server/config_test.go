package server_test

import (
	"testing"

	"tablediff/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Address(t *testing.T) {
	assert.Equal(t, ":8080", server.Config{Port: "8080"}.Address())
}

func TestConfig_Limit(t *testing.T) {
	tests := []struct {
		name      string
		cfg       server.Config
		requested int
		want      int
	}{
		{"Default", server.Config{EntryLimit: 1000}, 0, 1000},
		{"Negative", server.Config{EntryLimit: 1000}, -5, 1000},
		{"Requested", server.Config{EntryLimit: 1000}, 25, 25},
		{"Capped", server.Config{EntryLimit: 1000}, server.MaxEntryLimit + 1, server.MaxEntryLimit},
		{"Unset default", server.Config{}, 0, server.MaxEntryLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Limit(tt.requested))
		})
	}
}
