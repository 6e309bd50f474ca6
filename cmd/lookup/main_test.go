package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_RequiresTicker(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"zacks", "pretty", "timeout"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)

	require.NoError(t, writeJSON(cmd, map[string]string{"error": "x", "symbol": "Y"}, true))
	assert.Equal(t, "{\n  \"error\": \"x\",\n  \"symbol\": \"Y\"\n}\n", buf.String())
}
