// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/csvdelta/csvdelta/internal/command"
	"github.com/csvdelta/csvdelta/internal/config"
	"github.com/csvdelta/csvdelta/internal/differ"
	"github.com/csvdelta/csvdelta/internal/log"
	"github.com/csvdelta/csvdelta/internal/table"
	"github.com/csvdelta/csvdelta/internal/version"
)

var ctx = context.Background()

// boolFlags never take a separate value argument, so the token after them is
// positional.
var boolFlags = map[string]bool{
	"--all":         true,
	"--color":       true,
	"-c":            true,
	"--help":        true,
	"-h":            true,
	"--interactive": true,
	"-i":            true,
	"--numeric":     true,
	"--summary":     true,
	"--titles":      true,
	"-t":            true,
}

// valueFlags always own the next token, even one that starts with "-" such as
// a descending sort column.
var valueFlags = map[string]bool{
	"--delimiter": true,
	"-d":          true,
	"--fields":    true,
	"-f":          true,
	"--filter":    true,
	"--format":    true,
	"--key":       true,
	"-k":          true,
	"--output":    true,
	"-o":          true,
	"--padding":   true,
	"--save":      true,
	"-O":          true,
	"--sort":      true,
	"-s":          true,
}

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	switch {
	case len(args) > 1 && args[1] == "completion":
		// Short-circuit completion: pass args directly.
		return args
	default:
		args = processSetOnly(args)
		log.Debugf("args after set processing: args=%v", args)
		return deduplicateFlags(args)
	}
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, userMessage(err))
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

// userMessage keeps input problems to the one line a user can act on.
func userMessage(err error) string {
	var iie *differ.InvalidInputError
	if errors.As(err, &iie) {
		return iie.Error()
	}
	var mte *table.MalformedTableError
	if errors.As(err, &mte) {
		return mte.Error()
	}
	if errors.Is(err, differ.ErrSelectionAborted) {
		return "field selection aborted"
	}
	return err.Error()
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly handles the @set logic for all commands, expanding set
// arguments from config key <command>.<set> at the @set position.
func processSetOnly(args []string) []string {
	if len(args) < 3 {
		return args
	}

	// Look for an explicit @set argument starting from index 2.
	idx := 2
	set := "defaults"
	removeIdx := -1
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") {
			set = a[1:]
			removeIdx = idx + i
			break
		}
	}
	if removeIdx != -1 {
		// Remove the @set argument.
		args = append(args[:removeIdx], args[removeIdx+1:]...)
		// Expand the set arguments at the removeIdx position.
		setArgs, err := config.GetStringSlice(args[1] + "." + set)
		if err != nil {
			log.Warnf("config set %s.%s not usable: %v", args[1], set, err)
		}
		for _, arg := range setArgs {
			parts := strings.Fields(arg)
			args = append(args[:removeIdx], append(parts, args[removeIdx:]...)...)
			removeIdx += len(parts)
		}
	}
	return args
}

// deduplicateFlags collapses repeated flags so that the last occurrence wins.
// This lets a flag typed on the command line override the same flag spliced
// in from an @set. A flag owns the following token as its value unless it is
// a known boolean, uses --name=value, or the next token is itself a flag. A
// known value flag always owns the next token, and a value that looks like a
// flag is rejoined as --name=value so the parser keeps it, and an empty
// --name= becomes an explicit empty value. Everything after "--" is left
// alone.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type group struct {
		name   string
		tokens []string
	}

	var groups []group
	rest := args[2:]
	for i := 0; i < len(rest); i++ {
		a := rest[i]
		if a == "--" {
			groups = append(groups, group{tokens: rest[i:]})
			break
		}
		if !strings.HasPrefix(a, "-") || a == "-" {
			groups = append(groups, group{tokens: []string{a}})
			continue
		}

		name, value, hasValue := strings.Cut(a, "=")
		g := group{name: name, tokens: []string{a}}
		if hasValue && value == "" && !boolFlags[name] {
			// The parser treats "--save=" as a missing value and takes the
			// next token, so pass the empty value explicitly.
			g.tokens = []string{name, ""}
		}
		if !hasValue && !boolFlags[name] && i+1 < len(rest) {
			next := rest[i+1]
			switch {
			case !strings.HasPrefix(next, "-") || next == "-":
				g.tokens = append(g.tokens, next)
				i++
			case valueFlags[name] && next != "--":
				g.tokens = []string{name + "=" + next}
				i++
			}
		}
		groups = append(groups, g)
	}

	last := make(map[string]int)
	for i, g := range groups {
		if g.name != "" {
			last[g.name] = i
		}
	}

	out := append([]string{}, args[:2]...)
	for i, g := range groups {
		if g.name != "" && last[g.name] != i {
			continue
		}
		out = append(out, g.tokens...)
	}
	return out
}
