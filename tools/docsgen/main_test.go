// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestGenerate(t *testing.T) {
	t.Setenv("CSVDELTA_CFG_FILE", filepath.Join(t.TempDir(), "none.yaml"))
	docs := t.TempDir()

	require.NoError(t, generate(docs, "1.2.3"))

	md, err := os.ReadFile(filepath.Join(docs, "commands", "diff.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "# csvdelta diff")
	assert.Contains(t, string(md), "`--key, -k`")
	assert.Contains(t, string(md), "csvdelta 1.2.3")

	man, err := os.ReadFile(filepath.Join(docs, "man", "share", "man1", "csvdelta-cols.1"))
	require.NoError(t, err)
	assert.Contains(t, string(man), ".TH CSVDELTA-COLS 1")
}

func TestDescribeFlags(t *testing.T) {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "zeta", Usage: "last"},
		&cli.BoolFlag{Name: "alpha", Aliases: []string{"a"}, Usage: "first"},
		&cli.BoolFlag{Name: "hidden", Hidden: true},
	}

	got := describeFlags(flags)
	require.Len(t, got, 2)
	assert.Equal(t, "alpha", got[0].ID)
	assert.Equal(t, "--alpha, -a", got[0].Syntax)
	assert.Equal(t, "first", got[0].Description)
	assert.Equal(t, "zeta", got[1].ID)
}
