package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMigrateArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected migrateCommand
	}{
		{"up", []string{"up"}, migrateCommand{action: "up"}},
		{"status", []string{"status"}, migrateCommand{action: "status"}},
		{"down defaults to one step", []string{"down"}, migrateCommand{action: "down", steps: 1}},
		{"down with steps", []string{"down", "3"}, migrateCommand{action: "down", steps: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := parseMigrateArgs(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cmd)
		})
	}
}

func TestParseMigrateArgs_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"unknown command", []string{"sideways"}},
		{"zero steps", []string{"down", "0"}},
		{"negative steps", []string{"down", "-2"}},
		{"non numeric steps", []string{"down", "all"}},
		{"extra argument to up", []string{"up", "now"}},
		{"extra argument to down", []string{"down", "1", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseMigrateArgs(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestParseMigrateArgs_UsageListsCommands(t *testing.T) {
	_, err := parseMigrateArgs(nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "tourney migrate <command>")
	assert.Contains(t, err.Error(), "status")
}
