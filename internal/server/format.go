package server

import (
	"fmt"
	"html/template"
	"math"

	"github.com/dustin/go-humanize"
)

var templateFuncs = template.FuncMap{
	"dollars": dollars,
	"comma":   func(n int64) string { return humanize.Comma(n) },
	"percent": func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
}

func dollars(v float64) string {
	if v < 0 {
		return "-$" + humanize.Comma(int64(math.Round(-v)))
	}
	return "$" + humanize.Comma(int64(math.Round(v)))
}
