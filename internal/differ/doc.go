// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ compares two snapshots of a keyed table and builds the change
// report: which keys were added, which were removed and which had at least one
// compared field change. It also renders a per-key field view and hosts the
// interactive field picker.
package differ
