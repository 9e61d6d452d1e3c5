package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"catalog"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	var tiles []map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &tiles))
	require.Len(t, tiles, 7)
	assert.Equal(t, "Listening Comprehension", tiles[6]["title"])
	assert.Equal(t, "ear", tiles[6]["icon"])
}

func TestCommandsRegistered(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"serve", "migrate", "export-events", "catalog", "purge-sessions"} {
		assert.Contains(t, names, want)
	}
}
