// Copyright 2021 Jonathan Amsterdam.

package commander

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopLevelUsageEpilog(t *testing.T) {
	var out bytes.Buffer
	app := New("shipit", "ships the project").
		SetOutput(&out).
		Epilog("See https://example.com/shipit for the full manual.").
		Bind("do_build", nopHandler, "build the project")

	err := app.Run(context.Background(), nil)
	require.True(t, errors.Is(err, flag.ErrHelp), "got %v, want flag.ErrHelp", err)

	help := out.String()
	u := strings.Index(help, "Usage:")
	c := strings.Index(help, "build")
	e := strings.Index(help, "See https://example.com/shipit")
	require.True(t, u >= 0 && c >= 0 && e >= 0, "help output incomplete:\n%s", help)
	assert.Less(t, u, c)
	assert.Less(t, c, e, "epilog must follow the command listing")
}

func TestEpilogOnlyAtTopLevel(t *testing.T) {
	var out bytes.Buffer
	app := New("shipit", "").Depth(1).
		SetOutput(&out).
		Epilog("the epilog").
		Bind("do_deploy_prod", nopHandler, "deploy to prod")

	require.NoError(t, app.Run(context.Background(), []string{"deploy"}))
	assert.NotContains(t, out.String(), "the epilog")
}

func TestUsageMetavar(t *testing.T) {
	var out bytes.Buffer
	app := New("shipit", "").SetOutput(&out).
		Bind("do_build", nopHandler, "build the project",
			Opt("-o", "--out").Metavar("DIR").Help("output directory"),
			Opt("src").Metavar("SRCDIR").Help("source directory"))

	err := app.Run(context.Background(), []string{"build", "-h"})
	require.True(t, errors.Is(err, flag.ErrHelp), "got %v, want flag.ErrHelp", err)

	help := out.String()
	assert.Contains(t, help, "-o, --out DIR", "flag metavar not rendered:\n%s", help)
	assert.Contains(t, help, "SRCDIR", "positional metavar not rendered:\n%s", help)
	assert.Contains(t, help, "shipit build [flags] SRCDIR")
}

func TestUsageMetavarDefaultsToUpperName(t *testing.T) {
	var out bytes.Buffer
	app := New("shipit", "").SetOutput(&out).
		Bind("do_build", nopHandler, "build the project",
			Opt("--limit").OfKind(Int).Help("max artifacts"))

	err := app.Run(context.Background(), []string{"build", "--help"})
	require.True(t, errors.Is(err, flag.ErrHelp), "got %v, want flag.ErrHelp", err)
	assert.Contains(t, out.String(), "--limit LIMIT")
}
