// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csvdelta/csvdelta/internal/differ"
	"github.com/csvdelta/csvdelta/internal/table"
)

const (
	oldCSV = "URL,Title,H1\n" +
		"https://x/,Home,Welcome\n" +
		"https://x/old,Old,Bye\n"
	newCSV = "URL,Title,H1\n" +
		"https://x/,Home page,Welcome\n" +
		"https://x/new,New,Hi\n"

	wantCSV = "Status,URL,Old Title,New Title,Old H1,New H1\n" +
		"Added,https://x/new,,New,,Hi\n" +
		"Removed,https://x/old,Old,,Bye,\n" +
		"Modified,https://x/,Home,Home page,Welcome,\n"
)

// setup writes the old and new snapshots to a temp dir and points the config
// loader at the command testdata file.
func setup(t *testing.T) (dir, oldPath, newPath string) {
	t.Helper()

	cfg, err := filepath.Abs(filepath.Join("testdata", "csvdelta.yaml"))
	require.NoError(t, err)
	t.Setenv("CSVDELTA_CFG_FILE", cfg)
	for _, env := range []string{"CSVDELTA_KEY", "CSVDELTA_SAVE"} {
		t.Setenv(env, "")
		require.NoError(t, os.Unsetenv(env))
	}

	dir = t.TempDir()
	oldPath = filepath.Join(dir, "old.csv")
	newPath = filepath.Join(dir, "new.csv")
	require.NoError(t, os.WriteFile(oldPath, []byte(oldCSV), 0o644))
	require.NoError(t, os.WriteFile(newPath, []byte(newCSV), 0o644))
	return
}

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	full := append([]string{"csvdelta"}, args...)
	app, err := InitApp(context.Background(), full)
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &errOut
	err = app.Run(context.Background(), full)
	return out.String(), errOut.String(), err
}

func TestDiff_CSVOutputAndSave(t *testing.T) {
	dir, oldPath, newPath := setup(t)
	logPath := filepath.Join(dir, "changes.csv")

	out, errOut, err := runApp(t, "diff", "--fields", "Title,H1", "--output", "csv", "--save", logPath, oldPath, newPath)
	require.NoError(t, err)
	assert.Equal(t, wantCSV, out)
	assert.Contains(t, errOut, "Changes saved to "+logPath)

	saved, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Equal(t, wantCSV, string(saved))
}

func TestDiff_DefaultChangeLog(t *testing.T) {
	dir, oldPath, newPath := setup(t)
	t.Chdir(dir)

	_, _, err := runApp(t, "diff", "--fields", "Title,H1", "old.csv", "new.csv")
	require.NoError(t, err)

	saved, err := os.ReadFile(filepath.Join(dir, "changeLog.csv"))
	require.NoError(t, err)
	assert.Equal(t, wantCSV, string(saved))

	require.NoError(t, os.Remove(filepath.Join(dir, "changeLog.csv")))
	_, _, err = runApp(t, "diff", "--fields", "Title", "--save", "", oldPath, newPath)
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "changeLog.csv"))
}

func TestDiff_FieldSources(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantHeader string
	}{
		{
			name:       "explicit order kept",
			args:       []string{"--fields", "H1, Title"},
			wantHeader: "Status,URL,Old H1,New H1,Old Title,New Title\n",
		},
		{
			name:       "all candidates",
			args:       []string{"--all"},
			wantHeader: "Status,URL,Old Title,New Title,Old H1,New H1\n",
		},
		{
			name:       "configured fields",
			args:       nil,
			wantHeader: "Status,URL,Old Title,New Title\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, oldPath, newPath := setup(t)

			args := append([]string{"diff", "--save", "", "--output", "csv"}, tt.args...)
			args = append(args, oldPath, newPath)
			out, _, err := runApp(t, args...)
			require.NoError(t, err)

			lines := bytes.SplitAfter([]byte(out), []byte("\n"))
			assert.Equal(t, tt.wantHeader, string(lines[0]))
		})
	}
}

func TestDiff_Interactive(t *testing.T) {
	_, oldPath, newPath := setup(t)

	origTerm, origSelect := isTerminal, selectFields
	t.Cleanup(func() { isTerminal, selectFields = origTerm, origSelect })

	isTerminal = func() bool { return false }
	_, _, err := runApp(t, "diff", "--interactive", "--save", "", oldPath, newPath)
	assert.ErrorContains(t, err, "needs a terminal")

	var gotCandidates, gotPreselected []string
	isTerminal = func() bool { return true }
	selectFields = func(candidates, preselected []string) ([]string, error) {
		gotCandidates, gotPreselected = candidates, preselected
		return []string{"H1"}, nil
	}
	out, _, err := runApp(t, "diff", "-i", "--save", "", "-o", "csv", oldPath, newPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"Title", "H1"}, gotCandidates)
	assert.Equal(t, []string{"Title"}, gotPreselected)
	assert.Contains(t, out, "Status,URL,Old H1,New H1\n")

	selectFields = func(_, _ []string) ([]string, error) {
		return nil, differ.ErrSelectionAborted
	}
	_, _, err = runApp(t, "diff", "-i", "--save", "", oldPath, newPath)
	assert.ErrorIs(t, err, differ.ErrSelectionAborted)
}

func TestDiff_Errors(t *testing.T) {
	dir, oldPath, newPath := setup(t)

	t.Run("missing key", func(t *testing.T) {
		_, _, err := runApp(t, "diff", "--key", "Address", "--fields", "Title", "--save", "", oldPath, newPath)
		var iie *differ.InvalidInputError
		require.True(t, errors.As(err, &iie), "got %v", err)
	})

	t.Run("key as field", func(t *testing.T) {
		_, _, err := runApp(t, "diff", "--fields", "URL", "--save", "", oldPath, newPath)
		var iie *differ.InvalidInputError
		require.True(t, errors.As(err, &iie), "got %v", err)
	})

	t.Run("malformed table", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.csv")
		require.NoError(t, os.WriteFile(bad, []byte("URL,Title,Title\nu,a,b\n"), 0o644))
		_, _, err := runApp(t, "diff", "--fields", "Title", "--save", "", bad, newPath)
		var mte *table.MalformedTableError
		require.True(t, errors.As(err, &mte), "got %v", err)
		assert.Equal(t, 1, mte.Line)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := runApp(t, "diff", "--fields", "Title", "--save", "", filepath.Join(dir, "nope.csv"), newPath)
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("one argument", func(t *testing.T) {
		_, _, err := runApp(t, "diff", "--fields", "Title", "--save", "", oldPath)
		assert.ErrorContains(t, err, "expected OLD and NEW")
	})

	t.Run("both stdin", func(t *testing.T) {
		_, _, err := runApp(t, "diff", "--fields", "Title", "--save", "", "-", "-")
		assert.ErrorContains(t, err, "stdin")
	})

	t.Run("save failure", func(t *testing.T) {
		_, _, err := runApp(t, "diff", "--fields", "Title", "--save", filepath.Join(dir, "no", "log.csv"), oldPath, newPath)
		assert.Error(t, err)
	})
}

func TestDiff_NoChanges(t *testing.T) {
	dir, oldPath, _ := setup(t)
	logPath := filepath.Join(dir, "changeLog.csv")

	out, errOut, err := runApp(t, "diff", "--fields", "Title", "--save", logPath, oldPath, oldPath)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "No changes found.")

	saved, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Equal(t, "Status,URL,Old Title,New Title\n", string(saved))
}

func TestDiff_TextFilterAndNumeric(t *testing.T) {
	dir, _, _ := setup(t)
	oldPath := filepath.Join(dir, "old.tsv")
	newPath := filepath.Join(dir, "new.tsv")
	require.NoError(t, os.WriteFile(oldPath, []byte("URL\tSize\nu1\t1\nu2\t2\n"), 0o644))
	require.NoError(t, os.WriteFile(newPath, []byte("URL\tSize\nu1\t1.0\nu2\t3\n"), 0o644))

	out, _, err := runApp(t, "diff", "--fields", "Size", "--save", "", "-o", "csv", oldPath, newPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Modified,u1,1,1.0\n")

	out, _, err = runApp(t, "diff", "--fields", "Size", "--numeric", "--save", "", "-o", "csv", oldPath, newPath)
	require.NoError(t, err)
	assert.NotContains(t, out, "u1")
	assert.Contains(t, out, "Modified,u2,2,3\n")

	out, _, err = runApp(t, "diff", "--fields", "Size", "--save", "", "--filter", "New Size>2", "--summary", oldPath, newPath)
	require.NoError(t, err)
	assert.Contains(t, out, "u2")
	assert.NotContains(t, out, "u1")
	assert.Contains(t, out, "2 old rows, 2 new rows: 0 added, 0 removed, 2 modified")
}

func TestDiff_DescendingSort(t *testing.T) {
	_, oldPath, newPath := setup(t)

	out, _, err := runApp(t, "diff", "--fields", "Title", "--save", "", "-o", "csv", "--sort=-URL", oldPath, newPath)
	require.NoError(t, err)
	assert.Equal(t, "Status,URL,Old Title,New Title\n"+
		"Removed,https://x/old,Old,\n"+
		"Added,https://x/new,,New\n"+
		"Modified,https://x/,Home,Home page\n", out)

	out, _, err = runApp(t, "diff", "--fields", "Title", "--save", "", "-o", "csv", "-s=-Status", oldPath, newPath)
	require.NoError(t, err)
	lines := bytes.Split([]byte(out), []byte("\n"))
	assert.Equal(t, "Removed,https://x/old,Old,", string(lines[1]))
	assert.Equal(t, "Modified,https://x/,Home,Home page", string(lines[2]))
	assert.Equal(t, "Added,https://x/new,,New", string(lines[3]))
}

func TestDiff_NumericFromConfig(t *testing.T) {
	dir, _, _ := setup(t)
	oldPath := filepath.Join(dir, "old.csv")
	newPath := filepath.Join(dir, "new.csv")
	require.NoError(t, os.WriteFile(oldPath, []byte("URL,Size\nu1,1\nu2,2\n"), 0o644))
	require.NoError(t, os.WriteFile(newPath, []byte("URL,Size\nu1,1.0\nu2,3\n"), 0o644))

	cfg := filepath.Join(dir, "numeric.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("diff:\n  numeric: true\n"), 0o644))
	t.Setenv("CSVDELTA_CFG_FILE", cfg)

	out, _, err := runApp(t, "diff", "--fields", "Size", "--save", "", "-o", "csv", oldPath, newPath)
	require.NoError(t, err)
	assert.Equal(t, "Status,URL,Old Size,New Size\nModified,u2,2,3\n", out)

	out, _, err = runApp(t, "diff", "--fields", "Size", "--numeric=false", "--save", "", "-o", "csv", oldPath, newPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Modified,u1,1,1.0\n")

	require.NoError(t, os.WriteFile(cfg, []byte("diff:\n  numeric: sometimes\n"), 0o644))
	out, _, err = runApp(t, "diff", "--fields", "Size", "--save", "", "-o", "csv", oldPath, newPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Modified,u1,1,1.0\n")
}

func TestDiff_BadFlagValues(t *testing.T) {
	_, oldPath, newPath := setup(t)

	_, _, err := runApp(t, "diff", "--fields", "Title", "--save", "", "--output", "xml", oldPath, newPath)
	assert.Error(t, err)

	_, _, err = runApp(t, "diff", "--fields", "Title", "--save", "", "--format", "xls", oldPath, newPath)
	assert.Error(t, err)
}

func TestCols(t *testing.T) {
	_, oldPath, _ := setup(t)

	out, _, err := runApp(t, "cols", oldPath)
	require.NoError(t, err)
	assert.Equal(t, "Title\nH1\n", out)

	out, _, err = runApp(t, "cols", "--key", "Title", "--titles", oldPath)
	require.NoError(t, err)
	assert.Contains(t, out, "2 rows, key Title (key present)")
	assert.Contains(t, out, "URL\nH1\n")

	_, _, err = runApp(t, "cols")
	assert.Error(t, err)
}

func TestShow(t *testing.T) {
	_, oldPath, newPath := setup(t)

	out, _, err := runApp(t, "show", oldPath, newPath, "https://x/")
	require.NoError(t, err)
	assert.Contains(t, out, "Modified https://x/")
	assert.Contains(t, out, "Home page")

	out, _, err = runApp(t, "show", "--fields", "H1", oldPath, newPath, "https://x/")
	require.NoError(t, err)
	assert.Contains(t, out, "The records are identical.")

	_, _, err = runApp(t, "show", oldPath, newPath, "https://x/missing")
	var iie *differ.InvalidInputError
	assert.True(t, errors.As(err, &iie))

	_, _, err = runApp(t, "show", oldPath, newPath)
	assert.Error(t, err)
}

func TestCompletion(t *testing.T) {
	out, _, err := runApp(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -o filenames -F _csvdelta csvdelta")

	out, _, err = runApp(t, "completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, out, "#compdef csvdelta")
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Title", "Meta Description", "H1"}, SplitList(" Title,Meta Description ,,H1"))
	assert.Nil(t, SplitList(""))
}

func TestOutputValidator(t *testing.T) {
	for _, v := range []string{"text", "json", "yaml", "csv"} {
		assert.NoError(t, OutputValidator(v))
	}
	assert.Error(t, OutputValidator("raw"))
}

func TestPaddingValidator(t *testing.T) {
	assert.NoError(t, PaddingValidator(0))
	assert.Error(t, PaddingValidator(-1))
	assert.Error(t, PaddingValidator("2"))
}
