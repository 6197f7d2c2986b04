// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetail(t *testing.T) {
	old := mkTable("old.csv", []string{"URL", "Title", "H1"},
		[]string{"u1", "Home", "Welcome"},
		[]string{"u2", "About", "Us"},
		[]string{"gone", "Gone", "Bye"},
	)
	cur := mkTable("new.csv", []string{"URL", "Title", "H1", "Canonical"},
		[]string{"u1", "Home page", "Welcome", "https://u1/"},
		[]string{"u2", "About", "Us"},
		[]string{"fresh", "Fresh", "Hi"},
	)

	t.Run("modified", func(t *testing.T) {
		d, err := Detail(old, cur, "URL", "u1", nil, false)
		require.NoError(t, err)
		assert.Equal(t, StatusModified, d.Status)
		assert.Contains(t, d.Text, "Home page")
		assert.Contains(t, d.Text, "Canonical")
		assert.NotContains(t, d.Text, "\x1b[")
	})

	t.Run("restricted fields", func(t *testing.T) {
		d, err := Detail(old, cur, "URL", "u1", []string{"H1"}, false)
		require.NoError(t, err)
		assert.Equal(t, Status(""), d.Status)
		assert.Equal(t, "The records are identical.", d.Text)
	})

	t.Run("identical", func(t *testing.T) {
		d, err := Detail(old, cur, "URL", "u2", []string{"Title", "H1"}, false)
		require.NoError(t, err)
		assert.Equal(t, Status(""), d.Status)
		assert.Equal(t, "u2", d.Key)
	})

	t.Run("added", func(t *testing.T) {
		d, err := Detail(old, cur, "URL", "fresh", nil, false)
		require.NoError(t, err)
		assert.Equal(t, StatusAdded, d.Status)
		assert.Contains(t, d.Text, "Fresh")
	})

	t.Run("removed", func(t *testing.T) {
		d, err := Detail(old, cur, "URL", "gone", nil, true)
		require.NoError(t, err)
		assert.Equal(t, StatusRemoved, d.Status)
		assert.Contains(t, d.Text, "Gone")
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := Detail(old, cur, "URL", "nope", nil, false)
		var iie *InvalidInputError
		require.True(t, errors.As(err, &iie))
		assert.Contains(t, err.Error(), "not found in either table")
	})

	t.Run("missing key field", func(t *testing.T) {
		_, err := Detail(old, cur, "Address", "u1", nil, false)
		var iie *InvalidInputError
		require.True(t, errors.As(err, &iie))
	})
}

func TestUnionFields(t *testing.T) {
	a := mkTable("a", []string{"Title", "URL", "H1"})
	b := mkTable("b", []string{"URL", "Canonical", "H1", "Title"})

	assert.Equal(t, []string{"Title", "H1", "Canonical"}, unionFields(a, b, "URL"))
}
