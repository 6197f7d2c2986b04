// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package report renders a change report for people and programs. The same
// header and rows back the terminal table, the json and yaml emitters, and
// the saved CSV change log.
package report
