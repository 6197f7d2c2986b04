// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/csvdelta/csvdelta/internal/report"
)

// DefaultKeyField is the identifier column used when nothing else names one.
const DefaultKeyField = "URL"

// NewFieldsFlag constructs the "fields" flag.
func NewFieldsFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "fields",
		Aliases: []string{"f"},
		Usage:   "comma-separated list of fields to compare, in report order",
	}
}

// NewNumericFlag constructs the "numeric" flag.
func NewNumericFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "numeric",
		Usage:       "treat values that parse to the same number as equal",
		HideDefault: true,
	}
}

// NewGlobalFlags returns the presentation flags shared by report producing
// commands. params[0] is the command namespace and params[1] the config file,
// both optional.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	color := &cli.BoolFlag{
		Name:    "color",
		Aliases: []string{"c"},
		Usage:   "enable colored text output",
		Value:   false,
	}
	padding := &cli.IntFlag{
		Name:  "padding",
		Usage: "spaces between text output columns",
		Value: 2,
		Validator: func(value int) error {
			return FlagValidators(value, PaddingValidator)
		},
	}
	titles := &cli.BoolFlag{
		Name:    "titles",
		Aliases: []string{"t"},
		Usage:   "show titles with text output",
		Value:   true,
	}

	if len(params) == 2 && params[1] != "" {
		color.Sources = NameSpacedValueChainFromConfigFile(params[0], params[1], color.Name)
		padding.Sources = NameSpacedValueChainFromConfigFile(params[0], params[1], padding.Name)
		titles.Sources = NameSpacedValueChainFromConfigFile(params[0], params[1], titles.Name)
	}

	flags = []cli.Flag{
		color,
		&cli.StringFlag{
			Name:  "filter",
			Usage: "comma-separated list of filters to apply to report rows",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, json, yaml, csv)",
			Value:   report.OutputText,
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		padding,
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated report columns to sort rows by, \"-\" prefix for descending (--sort=-col)",
		},
		&cli.BoolFlag{
			Name:        "summary",
			Usage:       "append a one line summary to text output",
			HideDefault: true,
		},
		titles,
	}

	return
}

// NewTableFlags returns the flags that control how input tables are read.
func NewTableFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "delimiter",
			Aliases: []string{"d"},
			Usage:   "field separator for csv/tsv input (single character or tab)",
			Validator: func(value string) error {
				return FlagValidators(value, DelimiterValidator)
			},
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "input table format (auto, csv, tsv, json)",
			Value: "auto",
			Validator: func(value string) error {
				return FlagValidators(value, FormatValidator)
			},
		},
	}
}

// NewKeyFlag constructs a cli.StringFlag for the "key" flag, optionally
// namespaced to a command and config file. params[1] is the config file.
func NewKeyFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:    "key",
		Aliases: []string{"k"},
		Usage:   "identifier field used to match rows between tables",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("CSVDELTA_KEY"),
		),
		Value: DefaultKeyField,
	}

	if len(params) == 2 && params[1] != "" {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewSaveFlag constructs the "save" flag naming the change log file. An
// empty value disables saving.
func NewSaveFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:    "save",
		Aliases: []string{"O"},
		Usage:   `change log file to write ("" to skip)`,
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("CSVDELTA_SAVE"),
		),
		Value: report.DefaultFileName,
	}

	if len(params) == 2 && params[1] != "" {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	chain := NameSpacedValueChainFromConfigFile(ns, path, flag.Name)
	flag.Sources.Chain = append(flag.Sources.Chain, chain.Chain...)
	return flag
}

// NameSpacedValueChainFromConfigFile builds a source chain that looks up
// ns.name and then name in the config file at path.
func NameSpacedValueChainFromConfigFile(ns string, path string, name string) cli.ValueSourceChain {
	var chain cli.ValueSourceChain
	if ns != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)))
	}
	chain.Chain = append(chain.Chain, yaml.YAML(name, altsrc.StringSourcer(path)))
	return chain
}
