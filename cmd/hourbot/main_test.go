package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Flags(t *testing.T) {
	cmd := newRootCommand()

	config := cmd.Flags().Lookup("config")
	require.NotNil(t, config)
	assert.Equal(t, "c", config.Shorthand)
	assert.Equal(t, "config.yaml", config.DefValue)

	debug := cmd.Flags().Lookup("debug")
	require.NotNil(t, debug)
	assert.Equal(t, "false", debug.DefValue)
}

func TestRootCommand_RejectsUnknownFlag(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"--verbose"})
	assert.Error(t, cmd.Execute())
}
