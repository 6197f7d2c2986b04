// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for csvdelta's user
// configuration. The configuration is expected to be a YAML document located
// in the user's configuration directory, typically:
//   - Linux/macOS: $XDG_CONFIG_HOME/csvdelta.yaml or $HOME/.config/csvdelta.yaml
//   - Windows: %APPDATA%/csvdelta.yaml
//
// CSVDELTA_CFG_FILE overrides the lookup with an explicit path. Keys are dotted
// paths ("diff.key", "colors.added"); when a Namespace is set, the namespaced
// key is tried before the global one.
package config
