// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package table loads delimited (CSV/TSV) and JSON exports into an in-memory
// Table of Records keyed by field name. A field a record does not carry reads
// as the empty string.
package table
