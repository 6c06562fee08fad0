package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/moviedb-backend/internal/app"
)

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, app.BuildVersion()+"\n", out.String())
}

func TestVersionCmd_JSON(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"version", "--json"})

	require.NoError(t, root.Execute())

	var got app.BuildInfo
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, app.CurrentBuild(), got)
}

func TestCatalogImport_RequiresID(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"catalog", "import"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"id"`)
}

func TestServe_RejectsArgs(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"serve", "extra"})

	assert.Error(t, root.Execute())
}
