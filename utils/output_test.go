package utils

import (
	"bytes"
	"testing"

	"github.com/meysamhadeli/solid/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type outputItem struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, config.OutputJSON, []outputItem{{ID: 1, Name: "Repair"}}, Table{}))
	assert.JSONEq(t, `[{"id": 1, "name": "Repair"}]`, buf.String())
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, config.OutputYAML, []outputItem{{ID: 1, Name: "Repair"}}, Table{}))
	assert.Equal(t, "- id: 1\n  name: Repair\n", buf.String())
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	table := Table{Header: []string{"ID", "NAME"}, Rows: [][]string{{"1", "Repair"}}}

	require.NoError(t, Render(&buf, config.OutputTable, nil, table))
	assert.Contains(t, buf.String(), "Repair")
	assert.Contains(t, buf.String(), "NAME")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", ParseLevel("debug").String())
	assert.Equal(t, "WARN", ParseLevel("Warning").String())
	assert.Equal(t, "INFO", ParseLevel("bogus").String())
}
