// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/csvdelta/csvdelta/internal/meta"
)

const bashCompletionScript = `# bash completion for csvdelta
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_csvdelta()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "diff cols show completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local table="--delimiter -d --format --key -k"

    case "$cmd" in
        diff)
            local opts="$table --all --color -c --fields -f --filter --interactive -i --numeric --output -o --padding --save -O --sort -s --summary --titles -t"
            ;;
        cols)
            local opts="$table --titles -t"
            ;;
        show)
            local opts="$table --color -c --fields -f"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$table"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml csv" -- "$cur") )
            return 0
            ;;
        --format)
            COMPREPLY=( $(compgen -W "auto csv tsv json" -- "$cur") )
            return 0
            ;;
        --save|-O)
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Table paths
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -o filenames -F _csvdelta csvdelta
`

const zshCompletionScript = `#compdef csvdelta

_csvdelta() {
  local -a cmds
  cmds=(
    'diff:compare two snapshots and report changes per key'
    'cols:list the fields of a table that can be compared'
    'show:show how one record changed between snapshots'
    'completion:generate shell completion script'
  )

  local -a table
  table=(
  '(-d --delimiter)'{-d,--delimiter}'[field separator]:delimiter'
  '--format[input table format]:format:(auto csv tsv json)'
  '(-k --key)'{-k,--key}'[identifier field]:key'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'csvdelta commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    diff)
      _arguments -C \
        $table \
        '--all[compare every field]' \
        '(-c --color)'{-c,--color}'[enable colored text]' \
        '(-f --fields)'{-f,--fields}'[fields to compare]:fields' \
        '--filter[filters to apply]:filters' \
        '(-i --interactive)'{-i,--interactive}'[pick fields interactively]' \
        '--numeric[compare numbers by value]' \
        '(-o --output)'{-o,--output}'[output format]:format:(text json yaml csv)' \
        '--padding[column padding]:padding' \
        '(-O --save)'{-O,--save}'[change log file]:file:_files' \
        '(-s --sort)'{-s,--sort}'[sort columns]:columns' \
        '--summary[append summary line]' \
        '(-t --titles)'{-t,--titles}'[show titles]' \
        '1:OLD:_files' \
        '2:NEW:_files'
      ;;
    cols)
      _arguments -C \
        $table \
        '(-t --titles)'{-t,--titles}'[show heading]' \
        '1:FILE:_files'
      ;;
    show)
      _arguments -C \
        $table \
        '(-c --color)'{-c,--color}'[enable colored text]' \
        '(-f --fields)'{-f,--fields}'[fields to show]:fields' \
        '1:OLD:_files' \
        '2:NEW:_files' \
        '3:KEY:'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $table '*:file:_files'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _csvdelta csvdelta
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	w := stdout(cmd)
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(w, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(w, bashCompletionScript)
		default:
			fmt.Fprintln(stderr(cmd), "usage: csvdelta completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "csvdelta completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
