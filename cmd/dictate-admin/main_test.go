package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMigrateFlags(t *testing.T) {
	opts, err := parseMigrateFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, defaultMigrationTimeout, opts.Timeout)

	opts, err = parseMigrateFlags([]string{"--timeout", "30s"})
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, opts.Timeout)

	_, err = parseMigrateFlags([]string{"--timeout", "0s"})
	require.Error(t, err)
}

func TestParseDBResetFlags(t *testing.T) {
	opts, err := parseDBResetFlags([]string{"--yes", "--seed"})
	require.NoError(t, err)
	assert.True(t, opts.Yes)
	assert.True(t, opts.Seed)
	assert.False(t, opts.AllowRemote)
}

func TestIsLikelyRemoteHost(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"localhost", false},
		{"127.0.0.1", false},
		{"::1", false},
		{"dev-db.local", false},
		{"", false},
		{"10.0.0.5", true},
		{"db.example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.want, isLikelyRemoteHost(tt.host))
		})
	}
}

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, `"dictate"`, quoteIdentifier("dictate"))
	assert.Equal(t, `"we""ird"`, quoteIdentifier(`we"ird`))
}

func TestCommandsCoverUsage(t *testing.T) {
	cmds := commands()
	for name, c := range cmds {
		assert.Equal(t, name, c.name)
		assert.NotEmpty(t, c.description)
		assert.NotNil(t, c.run)
	}
}
