// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/csvdelta/csvdelta/internal/differ"
)

// Summary describes the report in one line, e.g.
// "1,204 old rows, 1,250 new rows: 52 added, 6 removed, 130 modified".
func Summary(rep *differ.ChangeReport, oldRows, newRows int) string {
	c := rep.Counts()
	if c.Total() == 0 {
		return fmt.Sprintf("%s old rows, %s new rows: no changes",
			humanize.Comma(int64(oldRows)), humanize.Comma(int64(newRows)))
	}
	return fmt.Sprintf("%s old rows, %s new rows: %s added, %s removed, %s modified",
		humanize.Comma(int64(oldRows)),
		humanize.Comma(int64(newRows)),
		humanize.Comma(int64(c.Added)),
		humanize.Comma(int64(c.Removed)),
		humanize.Comma(int64(c.Modified)))
}
