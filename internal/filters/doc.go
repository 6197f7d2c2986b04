// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters narrows a rendered change report to the rows of interest.
//
// Filters are key-operator-target expressions joined by a delimiter (default
// comma, overridden by CSVDELTA_FILTER_DELIM). Keys are report column titles
// such as "Status", "URL" or "New Title".
//
// Operators:
//
//   - = : exact match, numeric when both sides are numbers (negate with !=)
//   - ~ : case-insensitive match (negate with !~)
//   - ^ : prefix match (negate with !^)
//   - @ : contains substring (negate with !@)
//   - / : regular expression match (negate with !/)
//   - < : less than, numeric when both sides are numbers
//   - > : greater than, numeric when both sides are numbers
//
// Examples:
//
//   - "Status=Modified" : only modified keys
//   - "URL^https://shop." : keys under the shop host
//   - "New Title!@draft" : rows whose new title does not mention draft
//   - "Old Status Code>299" : rows that previously returned an error code
//
// Malformed expressions are logged and skipped, and a filter naming an unknown
// column is reported once and ignored, so a partial filter set still applies.
package filters
