// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/csvdelta/csvdelta/internal/command"
)

// Flag is the rendered view of one command flag.
type Flag struct {
	ID          string
	Syntax      string
	Description string
	Default     string
}

// TemplateData feeds a page template for one subcommand.
type TemplateData struct {
	ID      string
	IDUpper string
	Short   string
	Usage   string
	Flags   []Flag
	Date    string
	Version string
}

type Outputs struct {
	Template string
	Folder   string
	Prefix   string
	Suffix   string
}

const markdownTemplate = `# csvdelta {{.ID}}

{{.Short}}

    {{.Usage}}

## Flags
{{range .Flags}}
- ` + "`{{.Syntax}}`" + `: {{.Description}}{{if .Default}} (default {{.Default}}){{end}}{{end}}

_Generated {{.Date}} for csvdelta {{.Version}}._
`

const manTemplate = `.TH CSVDELTA-{{.IDUpper}} 1 "{{.Date}}" "csvdelta {{.Version}}"
.SH NAME
csvdelta-{{.ID}} \- {{.Short}}
.SH SYNOPSIS
{{.Usage}}
.SH OPTIONS
{{range .Flags}}.TP
\fB{{.Syntax}}\fR
{{.Description}}{{if .Default}} (default {{.Default}}){{end}}
{{end}}`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen DOCS_DIR")
		os.Exit(1)
	}

	if err := generate(os.Args[1], getVersion()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// generate writes a markdown page and a man page per subcommand under docs.
func generate(docs string, version string) error {
	app, err := command.InitApp(context.Background(), []string{"csvdelta"})
	if err != nil {
		return err
	}

	types := []Outputs{
		{Template: markdownTemplate, Folder: filepath.Join(docs, "commands"), Suffix: ".md"},
		{Template: manTemplate, Folder: filepath.Join(docs, "man", "share", "man1"), Prefix: "csvdelta-", Suffix: ".1"},
	}

	for _, sub := range app.Commands {
		metadata := TemplateData{
			ID:      sub.Name,
			IDUpper: strings.ToUpper(sub.Name),
			Short:   sub.Usage,
			Usage:   sub.UsageText,
			Flags:   describeFlags(sub.Flags),
			Date:    time.Now().Format("January 2, 2006"),
			Version: version,
		}

		for _, t := range types {
			if err := os.MkdirAll(t.Folder, 0o755); err != nil {
				return err
			}

			path := filepath.Join(t.Folder, t.Prefix+sub.Name+t.Suffix)
			fmt.Println("Generating", path)
			tmpl, err := template.New(sub.Name).Parse(t.Template)
			if err != nil {
				return err
			}

			file, err := os.Create(path)
			if err != nil {
				return err
			}
			if err := tmpl.Execute(file, metadata); err != nil {
				file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return err
			}
		}
	}
	return nil
}

// describeFlags renders flags sorted by primary name, skipping hidden ones.
func describeFlags(flags []cli.Flag) []Flag {
	var out []Flag
	for _, f := range flags {
		if vf, ok := f.(cli.VisibleFlag); ok && !vf.IsVisible() {
			continue
		}

		names := f.Names()
		var syntax []string
		for _, n := range names {
			if len(n) == 1 {
				syntax = append(syntax, "-"+n)
			} else {
				syntax = append(syntax, "--"+n)
			}
		}

		flag := Flag{ID: names[0], Syntax: strings.Join(syntax, ", ")}
		if df, ok := f.(cli.DocGenerationFlag); ok {
			flag.Description = df.GetUsage()
			flag.Default = df.GetDefaultText()
		}
		out = append(out, flag)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
