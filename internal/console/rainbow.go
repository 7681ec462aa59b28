package console

import (
	"fmt"
	"strings"
)

var palette = [][3]int{
	{210, 15, 57},
	{254, 100, 11},
	{223, 142, 29},
	{64, 160, 43},
	{4, 165, 229},
	{30, 102, 245},
	{136, 57, 239},
}

// Rainbow 以 24-bit ANSI 色碼逐字上色，顏色依序循環
func Rainbow(s string) string {
	var b strings.Builder
	i := 0
	for _, r := range s {
		c := palette[i%len(palette)]
		fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm%c\x1b[0m", c[0], c[1], c[2], r)
		i++
	}
	return b.String()
}
