//
// tabulate.go
//
// Copyright (c) 2018-2021 Markku Rossi
//
// All rights reserved.
//

package readline

import (
	"io"
	"strings"
)

// Tabulate prints items in tab-aligned columns fitting in width
// characters. Rows end with CR LF so that the output works in the raw
// terminal mode.
func Tabulate(items []string, width int, out io.Writer) {
	var longest int
	for _, item := range items {
		if len(item) > longest {
			longest = len(item)
		}
	}
	colWidth := tabStop(longest)
	perRow := width / colWidth
	if perRow < 1 {
		perRow = 1
	}

	var row strings.Builder
	for idx, item := range items {
		row.WriteString(item)
		if idx%perRow == perRow-1 || idx == len(items)-1 {
			row.WriteString("\r\n")
			io.WriteString(out, row.String())
			row.Reset()
			continue
		}
		for col := tabStop(len(item)); ; col += 8 {
			row.WriteByte('\t')
			if col >= colWidth {
				break
			}
		}
	}
}

// tabStop returns the column of the next tab stop after n characters.
func tabStop(n int) int {
	return (n/8 + 1) * 8
}
